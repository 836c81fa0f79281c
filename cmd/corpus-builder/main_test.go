// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/corpus-builder/internal/tablefile"
	"github.com/pdiddy/corpus-builder/pkg/types"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"xlsx", "arrow", "db"}, splitList([]string{"xlsx, arrow", "", "db"}))
	assert.Nil(t, splitList(nil))
}

const snapshot = `{"id":"2001.00001","submitter":"A","authors":"Ada Lovelace","title":"Knowledge Conflicts in Transformers","categories":"cs.CL","doi":null,"abstract":"We trace a knowledge conflict in transformer attention heads.","versions":[{"version":"v1","created":"Mon, 6 Jan 2020 10:00:00 GMT"}],"update_date":"2020-02-01"}
{"id":"1701.00001","submitter":"B","authors":"Old Author","title":"Old Paper","categories":"cs.CL","doi":null,"abstract":"We trace a knowledge conflict in transformer attention heads.","versions":[{"version":"v1","created":"Mon, 2 Jan 2017 10:00:00 GMT"}],"update_date":"2017-02-01"}
`

func TestExtractThenMerge(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "snapshot.json")
	require.NoError(t, os.WriteFile(input, []byte(snapshot), 0o644))
	acmPath := filepath.Join(dir, "acm_df.csv")
	require.NoError(t, os.WriteFile(acmPath, []byte(
		"Title,Abstract,Authors,Date published\n"+
			"knowledge conflicts in transformers!,dup,X,2021-03-01\n"+
			"Another ACM Paper,abs,Y,2019-11-20\n"), 0o644))

	arxivBase := filepath.Join(dir, "arxiv", "arxiv_df")
	mergedBase := filepath.Join(dir, "merged", "merged_df")

	viper.Set("formats", []string{"arrow", "csv"})
	viper.Set("extract.input", input)
	viper.Set("extract.output", arxivBase)
	viper.Set("extract.min_year", 2018)
	viper.Set("extract.encoding", types.EncodingUTF8)
	viper.Set("merge.arxiv", arxivBase+".arrow")
	viper.Set("merge.acm", acmPath)
	viper.Set("merge.output", mergedBase)

	require.NoError(t, runExtract(extractCmd, nil))

	s, err := tablefile.ReadSummary(arxivBase)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Counts["scanned"])
	assert.Equal(t, 1, s.Counts["kept"])
	assert.Equal(t, 1, s.Counts["dropped_too_old"])
	assert.Equal(t, []string{arxivBase + ".arrow", arxivBase + ".csv"}, s.Outputs)

	require.NoError(t, runMerge(mergeCmd, nil))

	frame, err := tablefile.Read(mergedBase + ".csv")
	require.NoError(t, err)
	merged, err := types.CanonicalTableFromFrame(frame)
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, "Knowledge Conflicts in Transformers", merged[0].Title)
	assert.Equal(t, types.SourceArxiv, merged[0].Source)
	assert.Equal(t, 2020, merged[0].Year)
	assert.Equal(t, "Another ACM Paper", merged[1].Title)
	assert.Equal(t, 2019, merged[1].Year)

	s, err = tablefile.ReadSummary(mergedBase)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Counts["dups_removed"])
}

func TestMergeReadsSpreadsheetArxivTable(t *testing.T) {
	dir := t.TempDir()

	// A spreadsheet with a leading index column and created kept as the raw
	// version timestamp.
	arxivPath := filepath.Join(dir, "arxiv_df.xlsx")
	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	require.NoError(t, book.SetSheetRow(sheet, "A1", &[]any{
		"", "id", "title", "abstract", "categories", "doi", "created", "created_year", "updated", "authors",
	}))
	require.NoError(t, book.SetSheetRow(sheet, "A2", &[]any{
		0, "0704.0001", "Attention Conflicts", "abs", "cs.CL", "", "Mon, 2 Apr 2007 19:18:42 GMT", 2007, "2008-11-13 00:00:00", "Ada",
	}))
	require.NoError(t, book.SaveAs(arxivPath))
	require.NoError(t, book.Close())

	acmPath := filepath.Join(dir, "acm_df.csv")
	require.NoError(t, os.WriteFile(acmPath, []byte("Title,Abstract,Authors,Date published\nACM Paper,abs,Y,2019-11-20\n"), 0o644))

	mergedBase := filepath.Join(dir, "merged_df")
	viper.Set("formats", []string{"csv"})
	viper.Set("merge.arxiv", arxivPath)
	viper.Set("merge.acm", acmPath)
	viper.Set("merge.output", mergedBase)

	require.NoError(t, runMerge(mergeCmd, nil))

	frame, err := tablefile.Read(mergedBase + ".csv")
	require.NoError(t, err)
	merged, err := types.CanonicalTableFromFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, types.CanonicalTable{
		{Title: "Attention Conflicts", Abstract: "abs", Authors: "Ada", Year: 2007, Source: types.SourceArxiv},
		{Title: "ACM Paper", Abstract: "abs", Authors: "Y", Year: 2019, Source: types.SourceACM},
	}, merged)
}

func TestExtractConfigDefaultsEncoding(t *testing.T) {
	viper.Set("extract.input", "snapshot.json")
	viper.Set("extract.min_year", 2018)
	viper.Set("extract.policy_file", "")
	viper.Set("extract.encoding", "")

	cfg, err := extractConfig()
	require.NoError(t, err)
	assert.Equal(t, types.EncodingLatin1, cfg.Encoding)
}
