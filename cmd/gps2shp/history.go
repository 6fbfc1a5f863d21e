// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/gps2shp/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversion outcomes",
	Long: `History lists past conversion outcomes from the ledger database. The
ledger is populated during conversion runs when history_db is set in the
configuration (or GPS2SHP_HISTORY_DB in the environment).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")
		if dbPath == "" {
			dbPath = viper.GetString("history_db")
		}
		if dbPath == "" {
			return fmt.Errorf("no history database configured: set history_db or pass --db")
		}

		store, err := history.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if export, _ := cmd.Flags().GetString("export"); export != "" {
			switch export {
			case "yaml":
				return store.ExportYAML(cmd.OutOrStdout())
			case "json":
				return store.ExportJSON(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown export format %q: use yaml or json", export)
			}
		}

		limit, _ := cmd.Flags().GetInt("limit")
		outcomes, err := store.List(limit)
		if err != nil {
			return err
		}
		history.FormatTable(outcomes, cmd.OutOrStdout())
		return nil
	},
}

func init() {
	historyCmd.Flags().String("db", "", "path to the ledger database (default: history_db from config)")
	historyCmd.Flags().Int("limit", 20, "maximum number of outcomes to list")
	historyCmd.Flags().String("export", "", "export the full ledger as yaml or json")

	rootCmd.AddCommand(historyCmd)
}
