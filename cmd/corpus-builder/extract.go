// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/corpus-builder/internal/extract"
	"github.com/pdiddy/corpus-builder/internal/tablefile"
	"github.com/pdiddy/corpus-builder/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Filter the arXiv metadata snapshot into a table",
	Long: `Extract streams the newline-delimited arXiv metadata snapshot and keeps
records whose first version was created in or after --min-year and whose
abstract contains at least one term of every keyword group. Kept records are
written in source order to <output>.<format> for each configured format,
together with <output>.summary.yaml.

A missing input file is reported and produces an empty table.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("input", "./arxiv/data/arxiv-metadata-oai-snapshot.json", "arXiv metadata snapshot (one JSON record per line)")
	extractCmd.Flags().String("output", "./arxiv/out/arxiv_df", "output path without extension")
	extractCmd.Flags().Int("min-year", types.DefaultMinYear, "drop records created before this year")
	extractCmd.Flags().String("encoding", types.EncodingLatin1, "input encoding: latin-1 or utf-8")
	extractCmd.Flags().String("policy-file", "", "YAML keyword policy replacing the built-in groups")
	extractCmd.Flags().Bool("lenient", false, "skip malformed lines with a warning instead of failing")

	bindFlags(extractCmd.Flags(), map[string]string{
		"extract.input":       "input",
		"extract.output":      "output",
		"extract.min_year":    "min-year",
		"extract.encoding":    "encoding",
		"extract.policy_file": "policy-file",
		"extract.lenient":     "lenient",
	})

	rootCmd.AddCommand(extractCmd)
}

func extractConfig() (types.ExtractConfig, error) {
	cfg := types.ExtractConfig{
		InputPath: viper.GetString("extract.input"),
		MinYear:   viper.GetInt("extract.min_year"),
		Encoding:  viper.GetString("extract.encoding"),
		Policy:    types.DefaultKeywordPolicy(),
		Lenient:   viper.GetBool("extract.lenient"),
	}
	if cfg.Encoding == "" {
		cfg.Encoding = types.EncodingLatin1
	}
	if path := viper.GetString("extract.policy_file"); path != "" {
		p, err := extract.LoadPolicy(path)
		if err != nil {
			return types.ExtractConfig{}, err
		}
		cfg.Policy = p
	}
	if err := cfg.Validate(); err != nil {
		return types.ExtractConfig{}, fmt.Errorf("invalid extract config: %w", err)
	}
	return cfg, nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := extractConfig()
	if err != nil {
		return err
	}
	out, err := outputConfig("extract.output")
	if err != nil {
		return err
	}

	slog.Debug("extract starting", "input", cfg.InputPath, "min_year", cfg.MinYear, "encoding", cfg.Encoding,
		"groups", extract.NewMatcher(cfg.Policy).Groups())

	res, err := extract.Run(cfg, os.Stdout)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	if res.Missing {
		slog.Warn("extract input missing, writing an empty table", "input", cfg.InputPath)
	}

	frame := res.Rows.Frame()
	paths, err := tablefile.WriteAll(out.Base, out.Formats, frame)
	if err != nil {
		return err
	}

	counts := map[string]int{
		"scanned":          res.Scanned,
		"kept":             res.Kept,
		"dropped_too_old":  res.TooOld,
		"dropped_keywords": res.NoMatch(),
		"skipped":          res.Skipped,
	}
	for group, n := range res.Rejected {
		counts["dropped_group_"+group] = n
	}
	summary := tablefile.Summary{
		Stage:  "extract",
		Inputs: []string{cfg.InputPath},
		Config: map[string]any{
			"min_year": cfg.MinYear,
			"encoding": cfg.Encoding,
			"lenient":  cfg.Lenient,
			"policy":   cfg.Policy.Groups,
			"missing":  res.Missing,
		},
		Counts:  counts,
		Columns: frame.Schema.Names(),
		Outputs: paths,
	}
	if err := tablefile.WriteSummary(out.Base, summary); err != nil {
		return err
	}

	slog.Info("extract complete", "kept", res.Kept, "scanned", res.Scanned, "outputs", paths)
	return nil
}
