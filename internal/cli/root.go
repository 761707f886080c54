// Package cli contains the commands of the envelopes binary.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

// Output formats of the summary command.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. Without a subcommand, it
// starts the server.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "envelopes",
		Short: "Envelope budgeting",
		Long:  "Keeps the envelopes of one owner in sync with the remote service and serves them over HTTP.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr())
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewSummaryCommand())

	return cmd
}

// setupLogging configures gin and the global logger from the environment.
func setupLogging(out io.Writer) {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := out
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: out}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

func validateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return fmt.Errorf("invalid format %q: must be one of %v", format, ValidFormats)
	}
	return nil
}
