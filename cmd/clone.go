package cmd

import (
	"fmt"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"db-clone/internal/database"
	"db-clone/internal/dialect"
	"db-clone/internal/engine"
)

var cloneCmd = &cobra.Command{
	Use:          "clone",
	Short:        "Clone every table from the source database into the target",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetCloneConfig()
		if err != nil {
			return err
		}

		sourceLocator := cfg.Source.Locator(cfg.Driver)

		// Resolve the dialect from the locator itself, so it always matches
		// the driver the pool is opened with.
		driver, err := database.Driver(sourceLocator)
		if err != nil {
			return err
		}
		d := dialect.GetDialect(driver)

		// One connection per side per worker, plus one for enumeration.
		poolSize := cfg.MaxConcurrent + 1

		source, err := database.Connect(sourceLocator, poolSize)
		if err != nil {
			return fmt.Errorf("source: %w", err)
		}
		defer source.Close()

		target, err := database.Connect(cfg.Target.Locator(cfg.Driver), poolSize)
		if err != nil {
			return fmt.Errorf("target: %w", err)
		}
		defer target.Close()

		ignore := engine.ParseIgnoreSet(cfg.IgnoreTables)
		sched := engine.NewScheduler(source, target, d, cfg.MaxConcurrent)

		var bar *uiprogress.Bar
		sched.OnProgress = func(p engine.Progress) {
			if bar == nil {
				uiprogress.Start()
				bar = uiprogress.AddBar(p.Total).AppendCompleted().PrependElapsed()
			}
			bar.Set(p.Processed)
		}

		start := time.Now()
		outcomes, err := sched.Run(ignore)
		if bar != nil {
			uiprogress.Stop()
		}
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		failed := 0
		fmt.Println("\nClone Summary:")
		for i, o := range outcomes {
			icon := "✓"
			status := "OK"
			if o.Failed() {
				icon = "!"
				status = o.Err.Error()
				failed++
			}
			fmt.Printf("[%s] [%02d/%02d] %-24s : %s\n", icon, i+1, len(outcomes), o.Table, status)
		}
		fmt.Println("--------------------------------------------------")
		fmt.Printf("Cloned %d/%d tables in %s\n", len(outcomes)-failed, len(outcomes), elapsed)

		if failed > 0 {
			return fmt.Errorf("%d of %d tables failed to clone", failed, len(outcomes))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cloneCmd)

	cloneCmd.Flags().Int("concurrency", engine.DefaultMaxConcurrent, "max tables cloned in parallel")
	cloneCmd.Flags().String("ignore", "", "comma-separated table names to skip")

	viper.BindPFlag("max_concurrent", cloneCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("ignore_tables", cloneCmd.Flags().Lookup("ignore"))
}
