package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"db-clone/internal/engine"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "db-clone",
	Short: "A parallel database table replication tool",
	// Execute prints the error itself; without this cobra would echo it too.
	SilenceErrors: true,
	Long: `
  ____  ____     ____ _     ___  _   _ _____
 |  _ \| __ )   / ___| |   / _ \| \ | | ____|
 | | | |  _ \  | |   | |  | | | |  \| |  _|
 | |_| | |_) | | |___| |__| |_| | |\  | |___
 |____/|____/   \____|_____\___/|_| \_|_____|

DB CLONE - drop, recreate and copy every table from one database to another
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(viper.GetString("log_level"))
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// setupLogging configures the global logger. An unknown level is a fatal
// startup condition, not something to silently default away.
func setupLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./db-clone.yaml)")
	RootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	viper.BindPFlag("log_level", RootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads .env, the optional config file and environment variables.
func initConfig() {
	// .env is optional; real environments set the variables directly.
	godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("db-clone")
		viper.SetConfigType("yaml")
	}

	bindEnv()
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func bindEnv() {
	viper.BindEnv("log_level", "LOG_LEVEL")
	viper.BindEnv("ignore_tables", "IGNORE_TABLES")
	viper.BindEnv("max_concurrent", "MAX_CONCURRENT")
	viper.BindEnv("driver", "DB_DRIVER")

	viper.BindEnv("source.username", "SOURCE_DB_USERNAME")
	viper.BindEnv("source.password", "SOURCE_DB_PASSWORD")
	viper.BindEnv("source.host", "SOURCE_DB_HOST")
	viper.BindEnv("source.port", "SOURCE_DB_PORT")
	viper.BindEnv("source.database", "SOURCE_DB_DATABASE")

	viper.BindEnv("target.username", "TARGET_DB_USERNAME")
	viper.BindEnv("target.password", "TARGET_DB_PASSWORD")
	viper.BindEnv("target.host", "TARGET_DB_HOST")
	viper.BindEnv("target.port", "TARGET_DB_PORT")
	viper.BindEnv("target.database", "TARGET_DB_DATABASE")

	viper.SetDefault("log_level", "info")
	viper.SetDefault("driver", "mysql")
	viper.SetDefault("max_concurrent", engine.DefaultMaxConcurrent)
}
