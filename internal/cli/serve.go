package cli

import (
	"bitsteg/internal/logging"
	"bitsteg/internal/server"
	"bitsteg/pkg/config"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "BITSTEG"

func ServeAppCommand() *cobra.Command {
	var configFile string
	v := viper.New()

	command := &cobra.Command{
		Use:     "serve",
		Short:   "Serve an API to hide and show data in bitmaps over the web",
		Example: "bitsteg serve --port 8888",
		RunE: func(cmd *cobra.Command, args []string) error {
			sConfig, err := loadServerConfig(cmd, v, configFile)
			if err != nil {
				return err
			}
			if err = logging.SetLevel(sConfig.LogLevel); err != nil {
				return err
			}

			logging.BuildLogger().Info("Starting server", "port", sConfig.Port, "max_body_bytes", sConfig.MaxBodyBytes)
			return server.StartServer(sConfig)
		},
	}

	command.Flags().Int("port", config.DefaultPort, "Port on which to start the server")
	command.Flags().Int64("max-body-bytes", config.DefaultMaxBodyBytes, "Largest request body accepted")
	command.Flags().StringVar(&configFile, "config", "", "YAML file with the server configuration")

	return command
}

// loadServerConfig layers flags over BITSTEG_* environment variables over the config file
func loadServerConfig(cmd *cobra.Command, v *viper.Viper, configFile string) (config.ServerConfig, error) {
	var sConfig config.ServerConfig

	v.SetFs(fs)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"port":           "port",
		"max_body_bytes": "max-body-bytes",
		"log_level":      "log-level",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return sConfig, err
			}
		}
	}
	for _, key := range []string{"encode.chunk_size", "decode.max_payload_size"} {
		if err := v.BindEnv(key); err != nil {
			return sConfig, err
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return sConfig, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&sConfig); err != nil {
		return sConfig, fmt.Errorf("failed to parse config: %w", err)
	}
	sConfig.PopulateUnsetConfigVars()
	return sConfig, nil
}
