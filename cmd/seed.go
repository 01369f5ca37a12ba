package cmd

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"db-clone/internal/database"
	"db-clone/internal/dialect"
	"db-clone/internal/engine"
	"db-clone/internal/schema"
)

var seedCount int

var seedCmd = &cobra.Command{
	Use:          "seed",
	Short:        "Fill the source database with generated rows",
	Long:         "Analyzes the source schema and inserts random rows into every table, children after their parents, so the clone command has something to copy.",
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

		log.Info("Analyzing schema...")
		tables, err := schema.Analyze(db, d)
		if err != nil {
			return err
		}
		if len(tables) == 0 {
			return fmt.Errorf("no tables found to seed")
		}

		log.Infof("Seeding %d tables with %d rows each...", len(tables), seedCount)

		uiprogress.Start()
		bar := uiprogress.AddBar(len(tables) * seedCount).AppendCompleted().PrependElapsed()
		results := engine.Seed(db, d, tables, seedCount, func() {
			bar.Incr()
		})
		uiprogress.Stop()

		total := 0
		fmt.Println("\nSeed Summary (dependency order):")
		for i, r := range results {
			icon := "✓"
			status := "OK"
			if r.Err != nil {
				icon = "!"
				status = r.Err.Error()
			}
			fmt.Printf("[%s] [%02d/%02d] %-24s : %d rows - %s\n", icon, i+1, len(results), r.Table, r.Inserted, status)
			total += r.Inserted
		}
		fmt.Println("--------------------------------------------------")
		fmt.Printf("Inserted %d rows total\n", total)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedCount, "count", 100, "number of rows to generate per table")
}
