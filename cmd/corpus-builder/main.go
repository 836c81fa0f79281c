// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the corpus-builder CLI. The extract
// stage filters the arXiv metadata snapshot; the merge stage normalizes the
// arXiv and ACM tables into one schema and removes duplicate titles.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/corpus-builder/internal/logger"
	"github.com/pdiddy/corpus-builder/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the corpus-builder CLI.
var rootCmd = &cobra.Command{
	Use:   "corpus-builder",
	Short: "Build a deduplicated corpus of papers from arXiv and ACM metadata",
	Long: `corpus-builder assembles a literature corpus in two stages.

extract streams the arXiv metadata snapshot, keeps papers created in or after
the configured year whose abstract satisfies the keyword policy, and writes
them as a table. merge maps that table and an ACM Digital Library export onto
one schema, concatenates them and drops rows whose normalized titles collide.

Every flag can also be set in corpus-builder.yaml or through CORPUS_BUILDER_*
environment variables (a .env file is loaded when present).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(logger.New(viper.GetString("log_level"), os.Stderr))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./corpus-builder.yaml or ~/.config/corpus-builder/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringSlice("formats", []string{"xlsx", "arrow"}, "output formats: xlsx, arrow, db, csv")

	bindFlags(rootCmd.PersistentFlags(), map[string]string{
		"log_level": "log-level",
		"formats":   "formats",
	})
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("corpus-builder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "corpus-builder"))
		}
	}

	viper.SetEnvPrefix("CORPUS_BUILDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlags binds each viper key to the named flag in flags. A missing flag
// is a programming error.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding %s to --%s: %v", key, name, err))
		}
	}
}

// outputConfig reads the output base under key and the shared format list.
func outputConfig(key string) (types.OutputConfig, error) {
	formats, err := types.ParseFormats(splitList(viper.GetStringSlice("formats")))
	if err != nil {
		return types.OutputConfig{}, err
	}
	cfg := types.OutputConfig{Base: viper.GetString(key), Formats: formats}
	if err := cfg.Validate(); err != nil {
		return types.OutputConfig{}, fmt.Errorf("invalid output config: %w", err)
	}
	return cfg, nil
}

// splitList flattens comma-separated entries; env values arrive as one string.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
