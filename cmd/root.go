package cmd

import (
	"github.com/spf13/cobra"

	"github.com/btced/btced/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "btced",
	Short: "Bilingual Bitcoin education server",
	Long:  "BTCed is a gamified Bitcoin literacy backend for El Salvador: lessons, quiz, stories, wallet simulator and an AI tutor, served as a JSON API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BTCED_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then BTCED_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
