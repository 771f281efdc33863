package cli

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// stdio stands for stdin or stdout in path flags
const stdio = "-"

// fs is swapped for an in memory filesystem in tests
var fs = afero.NewOsFs()

func MarkFlagsRequired(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
}

// NewSpinner builds a progress spinner on stderr, so it never mixes with images written to stdout
func NewSpinner(cmd *cobra.Command) *spinner.Spinner {
	return spinner.New(spinner.CharSets[4], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == stdio {
		return io.ReadAll(cmd.InOrStdin())
	}
	return afero.ReadFile(fs, path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

func createOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == stdio {
		return nopWriteCloser{Writer: cmd.OutOrStdout()}, nil
	}
	return fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0664)
}
