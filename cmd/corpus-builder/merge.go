// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/corpus-builder/internal/merge"
	"github.com/pdiddy/corpus-builder/internal/normalize"
	"github.com/pdiddy/corpus-builder/internal/tablefile"
	"github.com/pdiddy/corpus-builder/pkg/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Normalize the arXiv and ACM tables and remove duplicate titles",
	Long: `Merge reads the extractor's arXiv table and an ACM Digital Library export,
maps both onto the canonical columns (title, abstract, authors, year, source),
appends the ACM rows after the arXiv rows and keeps the first row for each
normalized title. Inputs may be .xlsx, .arrow, .db or .csv; extra columns are
ignored. The result is written to <output>.<format> for each configured
format, together with <output>.summary.yaml.`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().String("arxiv", "./analysis/in/arxiv_df.xlsx", "arXiv-shaped input table")
	mergeCmd.Flags().String("acm", "./analysis/in/acm_df.xlsx", "ACM-shaped input table")
	mergeCmd.Flags().String("output", "./analysis/intermediate/merged_df", "output path without extension")

	bindFlags(mergeCmd.Flags(), map[string]string{
		"merge.arxiv":  "arxiv",
		"merge.acm":    "acm",
		"merge.output": "output",
	})

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg := types.MergeConfig{
		ArxivPath: viper.GetString("merge.arxiv"),
		ACMPath:   viper.GetString("merge.acm"),
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid merge config: %w", err)
	}
	out, err := outputConfig("merge.output")
	if err != nil {
		return err
	}

	arxiv, acm, err := loadCanonical(cfg)
	if err != nil {
		return err
	}

	res := merge.Merge(arxiv, acm)
	fmt.Fprintf(os.Stdout, "arxiv rows: %d, acm rows: %d, duplicates removed: %d, merged rows: %d\n",
		len(arxiv), len(acm), res.DupsRemoved, len(res.Rows))

	frame := res.Rows.Frame()
	paths, err := tablefile.WriteAll(out.Base, out.Formats, frame)
	if err != nil {
		return err
	}

	summary := tablefile.Summary{
		Stage:  "merge",
		Inputs: []string{cfg.ArxivPath, cfg.ACMPath},
		Counts: map[string]int{
			"arxiv_rows":   len(arxiv),
			"acm_rows":     len(acm),
			"input_rows":   res.Input,
			"dups_removed": res.DupsRemoved,
			"output_rows":  len(res.Rows),
		},
		Columns: frame.Schema.Names(),
		Outputs: paths,
	}
	if err := tablefile.WriteSummary(out.Base, summary); err != nil {
		return err
	}

	slog.Info("merge complete", "rows", len(res.Rows), "dups_removed", res.DupsRemoved, "outputs", paths)
	return nil
}

// loadCanonical reads both inputs and maps them onto the canonical schema.
func loadCanonical(cfg types.MergeConfig) (arxiv, acm types.CanonicalTable, err error) {
	frame, err := tablefile.Read(cfg.ArxivPath)
	if err != nil {
		return nil, nil, err
	}
	arxivRows, err := types.ArxivSelectionFromFrame(frame)
	if err != nil {
		return nil, nil, fmt.Errorf("arxiv table %s: %w", cfg.ArxivPath, err)
	}
	slog.Debug("read arxiv table", "path", cfg.ArxivPath, "rows", len(arxivRows))

	frame, err = tablefile.Read(cfg.ACMPath)
	if err != nil {
		return nil, nil, err
	}
	acmRows, err := types.ACMTableFromFrame(frame)
	if err != nil {
		return nil, nil, fmt.Errorf("acm table %s: %w", cfg.ACMPath, err)
	}
	slog.Debug("read acm table", "path", cfg.ACMPath, "rows", len(acmRows))

	acm, err = normalize.FromACM(acmRows)
	if err != nil {
		return nil, nil, fmt.Errorf("acm table %s: %w", cfg.ACMPath, err)
	}
	return normalize.FromArxiv(arxivRows), acm, nil
}
