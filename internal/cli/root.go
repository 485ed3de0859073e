// Package cli implements tinysql's command-line interface: the root
// command starts a REPL against a snapshot file; "exec" runs one statement
// and exits.
package cli

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/arjunc/tinysql/pkg/config"
)

var (
	flagDBPath   string
	flagLogLevel string
	flagConfig   string
)

var rootCmd = &cobra.Command{
	Use:   "tinysql",
	Short: "A restricted-SQL, in-memory relational engine with file snapshots",
	Long: `tinysql is a small relational database engine: a restricted SQL
front end, an in-memory catalog of typed tables, and a whole-database
snapshot codec to a single file.

With no subcommand, it starts an interactive SQL REPL. Use "exec" to run a
single statement non-interactively.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "snapshot file path (default db.pesapal)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "tinysql.toml", "path to a TOML config file")
	rootCmd.AddCommand(execCmd)
}

// loadConfig resolves a config.Config from the flags bound above.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig, flagDBPath, flagLogLevel)
	if err != nil {
		charmlog.Warn("config load failed, using defaults", "err", err)
		cfg = config.Default()
	}
	setLogLevel(cfg.LogLevel)
	return cfg
}

func setLogLevel(level string) {
	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		lvl = charmlog.InfoLevel
	}
	charmlog.SetLevel(lvl)
	charmlog.SetOutput(os.Stderr)
}
