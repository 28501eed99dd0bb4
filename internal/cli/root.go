// Package cli implements the jpegli-encode command tree. The tree is
// built by the NewRootCommand constructor, in the style of
// jpfielding-dicos.go's NewRoot(ctx, version); there is no package-level
// root command and no Execute function. The persistent --log-level and
// --log-file flags are bound to package-level variables.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-jpegli/jpegli/internal/logging"
)

var (
	logLevel string
	logFile  string
)

// NewRootCommand builds the jpegli-encode command tree. version is
// embedded in the --version output.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:     "jpegli-encode",
		Short:   "Encode images to perceptually-tuned baseline/progressive JPEG",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return err
			}
			out := io.Writer(os.Stderr)
			if logFile != "" {
				out = logging.NewRotating(logFile, 50, 3, 28)
			}
			slog.SetDefault(logging.New(out, false, level))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "rotate structured logs to this file instead of stderr")
	root.AddCommand(newEncodeCommand())
	return root
}
