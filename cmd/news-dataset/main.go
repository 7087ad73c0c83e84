// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the news-dataset CLI. The extract
// and publish stages are independent subcommands; run chains them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/news-dataset/internal/logging"
	"github.com/pdiddy/news-dataset/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds credentials loaded from .secrets/ at startup.
	loadedSecrets secrets.Secrets

	// log reports per-file problems and diagnostics on stderr.
	log = zerolog.Nop()
)

// rootCmd is the base command for the news-dataset CLI.
var rootCmd = &cobra.Command{
	Use:   "news-dataset",
	Short: "Build an instruction dataset from news article records",
	Long: `news-dataset converts a folder of JSON news article records into a CSV
table (url, output, instruction) and publishes that table as a dataset.

Each stage is a subcommand: extract writes the CSV, publish loads it as a
dataset and optionally pushes it to a hub, and run chains the two.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logging.New(logging.Options{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		})

		if err := secrets.LoadEnvFile(".env"); err != nil {
			return err
		}
		s, err := secrets.Load(".secrets/", log)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := s.Keys()
			sort.Strings(keys)
			log.Debug().Strs("keys", keys).Msg("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./news-dataset.yaml or ~/.config/news-dataset/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("news-dataset")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "news-dataset"))
		}
	}

	viper.SetEnvPrefix("NEWS_DATASET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
