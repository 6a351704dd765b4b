package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevin07696/dispute-evidence/internal/config"
	"github.com/kevin07696/dispute-evidence/internal/domain"
	evidencesvc "github.com/kevin07696/dispute-evidence/internal/services/evidence"
	"github.com/kevin07696/dispute-evidence/internal/services/ports"
	"github.com/kevin07696/dispute-evidence/pkg/observability"
)

// app holds the dependencies shared by every subcommand
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	service  ports.EvidenceService

	configPath string
	now        string
	pretty     bool
}

// newRootCmd builds the command tree. Run it through execute so the app is closed
// on every path.
func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "evidence",
		Short:         "Chargeback evidence enrichment and dispute strength scoring",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file (defaults to $EVIDENCE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&a.now, "now", "", "Pin the clock (RFC3339 or YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVar(&a.pretty, "pretty", false, "Indent JSON output")

	rootCmd.AddCommand(enrichCmd(a))
	rootCmd.AddCommand(checklistCmd(a))
	rootCmd.AddCommand(verifyFormCmd(a))
	rootCmd.AddCommand(autofillCmd(a))
	rootCmd.AddCommand(reasonCodeCmd(a))

	return rootCmd, a
}

// execute runs the command and then closes the app, also when the command failed.
// A close failure after a command failure is logged; the command error is returned.
func execute(cmd *cobra.Command, a *app) error {
	runErr := cmd.Execute()
	closeErr := a.close()
	if runErr == nil {
		return closeErr
	}
	if closeErr != nil && a.logger != nil {
		a.logger.Error("Failed to close after command error", zap.Error(closeErr))
	}
	return runErr
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.now != "" {
		cfg.Evidence.FixedNow = a.now
	}
	clock, err := cfg.Evidence.Clock()
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	var recorder ports.EvidenceRecorder
	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		recorder = observability.NewEvidenceMetrics(a.registry, cfg.Metrics.Namespace)
	}

	a.cfg = cfg
	a.logger = logger
	a.service = evidencesvc.NewEvidenceService(recorder, clock, logger)
	return nil
}

// close flushes the logger and, when configured, writes the metrics textfile
func (a *app) close() error {
	if a.logger != nil {
		defer a.logger.Sync()
	}
	if a.registry == nil || a.cfg == nil || a.cfg.Metrics.TextfilePath == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.cfg.Metrics.TextfilePath, a.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	a.logger.Debug("Metrics written", zap.String("path", a.cfg.Metrics.TextfilePath))
	return nil
}

func initLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	if !cfg.Development {
		zapCfg := zap.NewProductionConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(level)
		return zapCfg.Build()
	}

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

// parseDisputeType validates the --type flag; empty means "infer"
func parseDisputeType(value string) (domain.DisputeType, error) {
	if value == "" {
		return "", nil
	}
	return domain.ParseDisputeType(value)
}

// readInput decodes JSON from the file named by args[0], or stdin when absent or "-"
func readInput(cmd *cobra.Command, args []string, v any) error {
	var r io.Reader = cmd.InOrStdin()
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode input: %w", err)
	}
	return nil
}

func (a *app) writeOutput(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if a.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
