package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/txaudit/internal/audit"
	"github.com/cleared-dev/txaudit/internal/config"
	"github.com/cleared-dev/txaudit/internal/ledger"
	"github.com/cleared-dev/txaudit/internal/logger"
	"github.com/cleared-dev/txaudit/internal/model"
	"github.com/cleared-dev/txaudit/internal/runner"
)

type runOptions struct {
	configPath string
	file       string
	visitors   []string
	flagsOut   string
}

func newRunCommand(logLevel *string) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run analysis passes over a transaction list",
		Long: `Run each selected visitor over the transactions in turn and print its summary.
Without --file the built-in sample transactions are used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, opts, *logLevel)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default ./"+config.FileName+" if present)")
	cmd.Flags().StringVar(&opts.file, "file", "", "transactions CSV file")
	cmd.Flags().StringSliceVar(&opts.visitors, "visitor", nil, "visitors to run, in order (report, suspicious)")
	cmd.Flags().StringVar(&opts.flagsOut, "flags-out", "", "append flagged transactions to this CSV file")

	return cmd
}

func runRun(cmd *cobra.Command, opts runOptions, logLevel string) error {
	log, err := logger.New(logLevel)
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	log = log.With().Str("run_id", runID).Logger()
	ctx := logger.WithContext(cmd.Context(), log)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.file != "" {
		cfg.Source.File = opts.file
	}
	if len(opts.visitors) > 0 {
		cfg.Visitors = opts.visitors
	}
	if opts.flagsOut != "" {
		cfg.Output.FlagLog = opts.flagsOut
	}

	var txns []model.Transaction
	if cfg.Source.File != "" {
		txns, err = ledger.Load(cfg.Source.File)
		if err != nil {
			return err
		}
		log.Info().Str("file", cfg.Source.File).Int("transactions", len(txns)).Msg("loaded transactions")
	} else {
		txns = ledger.Sample()
		log.Info().Int("transactions", len(txns)).Msg("using sample transactions")
	}

	analyses, err := runner.DefaultRegistry().Build(cfg.Visitors, runner.Env{
		Out:    cmd.OutOrStdout(),
		Policy: cfg.Thresholds.Policy(),
	})
	if err != nil {
		return err
	}

	if err := runner.Run(ctx, cmd.OutOrStdout(), txns, analyses...); err != nil {
		return err
	}

	if cfg.Output.FlagLog == "" {
		return nil
	}
	for _, a := range analyses {
		v, ok := a.(*audit.Visitor)
		if !ok {
			continue
		}
		if err := audit.AppendFlags(cfg.Output.FlagLog, runID, v.Flags()); err != nil {
			return fmt.Errorf("writing flag log: %w", err)
		}
		log.Info().Str("path", cfg.Output.FlagLog).Int("flags", v.Count()).Msg("wrote flag log")
		return nil
	}
	log.Warn().Msg("flag log requested but suspicious visitor not selected")
	return nil
}

// loadConfig reads path, or ./txaudit.yaml when path is empty and the file
// exists, or falls back to defaults. File paths inside a loaded config are
// relative to the config's directory.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(config.FileName); err != nil {
			return config.Default(), nil
		}
		path = config.FileName
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ResolvePaths(filepath.Dir(path))
	return cfg, nil
}
