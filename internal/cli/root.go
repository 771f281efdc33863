package cli

import (
	"bitsteg/internal/logging"
	"bitsteg/pkg/config"

	"github.com/spf13/cobra"
)

type rootOpts struct {
	logLevel      string
	cpuProfile    string
	memProfileDir string
}

func RootCommand() *cobra.Command {
	opts := rootOpts{}

	rootCmd := &cobra.Command{
		Use:          "bitsteg",
		Short:        "Steganography in the least significant bits of bitmap images",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.SetLevel(opts.logLevel); err != nil {
				return err
			}
			if opts.cpuProfile != "" {
				if err := StartCPUProfiler(opts.cpuProfile); err != nil {
					return err
				}
			}
			if opts.memProfileDir != "" {
				StartMemoryProfiler(opts.memProfileDir)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			StopProfilers()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "Log level, one of debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&opts.cpuProfile, "cpu-profile", "", "Dump CPU profile into the supplied file")
	rootCmd.PersistentFlags().StringVar(&opts.memProfileDir, "mem-profile-dir", "", "Dump memory profiles into the supplied directory")

	rootCmd.AddCommand(BMPCommands(), ServeAppCommand())
	return rootCmd
}

// StopProfilers flushes any profile still being recorded
func StopProfilers() {
	StopCPUProfiler()
	StopMemoryProfiler()
}
