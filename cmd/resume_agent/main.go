// Package main provides the resume_agent CLI: an ATS scoring HTTP API and
// offline score and enhance commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-agent/internal/config"
	"github.com/jonathan/resume-agent/internal/logger"
)

// configEnvVar names a config file when --config is not given.
const configEnvVar = config.EnvPrefix + "CONFIG"

// app holds state shared by all subcommands once flags are parsed.
type app struct {
	configPath string
	debug      bool
	logJSON    bool

	cfg config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "resume_agent",
		Short: "Résumé ATS scoring and enhancement",
		Long: "resume_agent scores résumés against job descriptions the way an applicant tracking " +
			"system would, and applies deterministic text enhancements. It runs as an HTTP API " +
			"or as one-shot commands over JSON résumé files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a JSON or YAML config file (env "+configEnvVar+")")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "Emit logs as JSON")

	rootCmd.AddCommand(newServeCmd(a), newScoreCmd(a), newEnhanceCmd(a))
	return rootCmd
}

// setup resolves configuration from defaults, the config file, environment
// and flags, in increasing order of precedence, then builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()

	path := a.configPath
	if path == "" {
		path = os.Getenv(configEnvVar)
	}
	if path != "" {
		fileCfg, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = fileCfg.MergeWithDefaults(config.Default())
	}

	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	if cmd.Flags().Changed("log-json") {
		cfg.LogJSON = a.logJSON
	}
	if a.debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.NewWithLevel(cfg.LogJSON, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.log = log
	a.log.Debug("configuration loaded",
		zap.String("config_path", path),
		zap.Int("port", cfg.Port),
		zap.Bool("strict_schema", cfg.StrictSchema),
	)
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
