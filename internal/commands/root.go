package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/txaudit/internal/buildinfo"
)

// NewRootCommand creates the txaudit command tree. Diagnostic logging is
// configured once here and shared by every subcommand.
func NewRootCommand() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "txaudit",
		Short: "Report on transactions and flag suspicious activity",
		Long: `txaudit runs analysis passes over a list of transactions. Each pass visits
every transaction once and prints a summary: "report" totals the list and
"suspicious" flags transactions above the configured thresholds.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.SetVersionTemplate("txaudit {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "diagnostic log level (debug, info, warn, error, disabled)")

	rootCmd.AddCommand(
		newInitCommand(),
		newRunCommand(&logLevel),
	)

	return rootCmd
}
