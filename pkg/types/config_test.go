// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeywordPolicy(t *testing.T) {
	p := DefaultKeywordPolicy()
	require.NoError(t, p.Validate())
	require.Len(t, p.Groups, 4)
	assert.Equal(t, "model", p.Groups[0].Name)
	assert.Contains(t, p.Groups[3].Terms, "causal mediation")
}

func TestKeywordPolicyValidate(t *testing.T) {
	assert.Error(t, KeywordPolicy{}.Validate())
	assert.Error(t, KeywordPolicy{Groups: []KeywordGroup{{Name: "g"}}}.Validate())
	assert.Error(t, KeywordPolicy{Groups: []KeywordGroup{{Name: "g", Terms: []string{""}}}}.Validate())
	assert.Error(t, KeywordPolicy{Groups: []KeywordGroup{{Terms: []string{"x"}}}}.Validate())
	assert.NoError(t, KeywordPolicy{Groups: []KeywordGroup{{Name: "g", Terms: []string{"x"}}}}.Validate())
}

func TestExtractConfigValidate(t *testing.T) {
	cfg := ExtractConfig{InputPath: "in.json", MinYear: DefaultMinYear, Encoding: EncodingLatin1, Policy: DefaultKeywordPolicy()}
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Encoding = ""
	assert.Error(t, bad.Validate())
	assert.Empty(t, bad.Encoding, "Validate leaves the config unchanged")

	bad = cfg
	bad.Encoding = "utf-16"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.MinYear = 18
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.InputPath = ""
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Policy = KeywordPolicy{}
	assert.Error(t, bad.Validate())
}

func TestMergeConfigValidate(t *testing.T) {
	assert.NoError(t, (&MergeConfig{ArxivPath: "a.xlsx", ACMPath: "b.xlsx"}).Validate())
	assert.Error(t, (&MergeConfig{ArxivPath: "a.xlsx"}).Validate())
}

func TestOutputConfigValidate(t *testing.T) {
	assert.NoError(t, (&OutputConfig{Base: "out/x", Formats: []Format{FormatXLSX, FormatArrow}}).Validate())
	assert.Error(t, (&OutputConfig{Base: "out/x"}).Validate())
	assert.Error(t, (&OutputConfig{Formats: []Format{FormatCSV}}).Validate())
	assert.Error(t, (&OutputConfig{Base: "out/x", Formats: []Format{"pkl"}}).Validate())
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats([]string{"xlsx", "db", "csv", "arrow"})
	require.NoError(t, err)
	assert.Equal(t, []Format{FormatXLSX, FormatSQLite, FormatCSV, FormatArrow}, got)

	_, err = ParseFormats([]string{"parquet"})
	assert.Error(t, err)
}
