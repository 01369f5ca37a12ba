package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"db-clone/internal/database"
	"db-clone/internal/dialect"
	"db-clone/internal/engine"
)

var tablesCmd = &cobra.Command{
	Use:          "tables",
	Short:        "List source tables and show which ones the ignore list excludes",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetSourceConfig()
		if err != nil {
			return err
		}

		d := dialect.GetDialect(cfg.Driver)

		db, err := database.Connect(cfg.Source.Locator(cfg.Driver), 2)
		if err != nil {
			return fmt.Errorf("source: %w", err)
		}
		defer db.Close()

		names, err := d.ListTables(context.Background(), db)
		if err != nil {
			return err
		}

		ignore := engine.ParseIgnoreSet(cfg.IgnoreTables)
		ignored := 0
		for _, name := range names {
			if ignore.Contains(name) {
				fmt.Printf("  %-24s (ignored)\n", name)
				ignored++
			} else {
				fmt.Printf("  %s\n", name)
			}
		}
		fmt.Printf("%d tables, %d ignored, %d to clone\n", len(names), ignored, len(names)-ignored)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(tablesCmd)
}
