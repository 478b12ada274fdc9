package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aqasim81/schema/internal/config"
)

// AppConfig holds the loaded configuration, set during PersistentPreRunE.
var AppConfig *config.Config //nolint:gochecknoglobals // standard Cobra pattern for shared config

// rootCmd is the base command for the schema CLI.
var rootCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:     "schema",
	Version: Version().String(),
	Short:   "Prepare a PostgreSQL database to track schema changes",
	Long: `schema bootstraps migration tracking in a PostgreSQL database.

The setup command creates a dedicated namespace (db_state) and a change
table inside it (db_state.changes) in a single transaction: either both
objects exist afterwards or neither does. Running setup again against an
initialized database reports it and exits successfully.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	registerGlobalFlags(rootCmd.PersistentFlags())
}

// registerGlobalFlags defines the flags shared by every subcommand.
func registerGlobalFlags(fs *pflag.FlagSet) {
	fs.String("config", config.DefaultConfigPath, "path to configuration file (YAML, or TOML with a .toml extension)")
	fs.StringP("database", "d", "", "database connection URI (overrides "+config.EnvDatabaseURI+")")
	fs.BoolP("verbose", "v", false, "enable debug logging on stderr")
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(report(os.Stderr, err))
	}
}

// loadConfig loads configuration with precedence: flag > env > file.
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	allowMissing := !cmd.Flags().Changed("config")

	cfg, err := config.Load(configPath, allowMissing)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	config.MergeEnv(cfg)
	mergeFlags(cmd, cfg)

	AppConfig = cfg

	return nil
}

// mergeFlags overrides config with explicitly-set CLI flags.
func mergeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("database") {
		cfg.DatabaseURI, _ = cmd.Flags().GetString("database")
	}
}

// newLogger returns a text logger on w. Only warnings and errors are shown
// unless verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
