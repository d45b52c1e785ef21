package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/levelcheck/internal/config"
	"github.com/abhisek/levelcheck/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "levelcheck",
	Short: "Adaptive placement check for grades 2-8",
	Long: "levelcheck runs a short adaptive diagnostic in the terminal: ten math items, " +
		"then ten English items, scoped to the learner's grade, followed by a report.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/levelcheck/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEVELCHECK_DB env var)")

	rootCmd.AddCommand(plainCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(rotationCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the file named by --config, or the default path.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LEVELCHECK_DB or the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}

// openStore loads the config and opens the database it points at.
func openStore(cmd *cobra.Command) (*store.Store, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, cfg, err
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, cfg, err
	}
	return s, cfg, nil
}
