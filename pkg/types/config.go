// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Encoding names accepted for the extractor input.
const (
	EncodingLatin1 = "latin-1"
	EncodingUTF8   = "utf-8"
)

// Format identifies a table file format.
type Format string

const (
	FormatXLSX   Format = "xlsx"
	FormatArrow  Format = "arrow"
	FormatSQLite Format = "db"
	FormatCSV    Format = "csv"
)

// KeywordGroup is one OR-set of substrings; a text must contain at least one term.
type KeywordGroup struct {
	Name  string   `json:"name" yaml:"name"`
	Terms []string `json:"terms" yaml:"terms"`
}

// Validate validates the keyword group.
func (g KeywordGroup) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Name, validation.Required),
		validation.Field(&g.Terms, validation.Required, validation.Each(validation.Required)),
	)
}

// KeywordPolicy is an AND of keyword groups: a text passes when every group matches.
type KeywordPolicy struct {
	Groups []KeywordGroup `json:"groups" yaml:"groups"`
}

// Validate validates the policy and every group in it.
func (p KeywordPolicy) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Groups, validation.Required),
	)
}

// DefaultKeywordPolicy returns the built-in topical filter for papers on
// knowledge conflicts inside language model internals.
func DefaultKeywordPolicy() KeywordPolicy {
	return KeywordPolicy{Groups: []KeywordGroup{
		{Name: "model", Terms: []string{"transformer", "language model", "llms"}},
		{Name: "knowledge", Terms: []string{"knowledge", "context", "fact"}},
		{Name: "conflict", Terms: []string{"conflict", "contradict", "inconsist", "counterfact"}},
		{Name: "mechanism", Terms: []string{
			"attention", "neuron", "feed-forward", "inner represent",
			"mechanistic interpret", "inner function", "causal analysis", "causal mediation",
		}},
	}}
}

// DefaultMinYear is the inclusive lower bound on a record's creation year.
const DefaultMinYear = 2018

// ExtractConfig holds settings for the extraction stage.
type ExtractConfig struct {
	// InputPath is the newline-delimited JSON metadata dump.
	InputPath string `json:"input" yaml:"input"`

	// MinYear drops records created before this year.
	MinYear int `json:"min_year" yaml:"min_year"`

	// Encoding of the input: latin-1 (default) or utf-8.
	Encoding string `json:"encoding" yaml:"encoding"`

	// Policy is the keyword filter applied to abstracts.
	Policy KeywordPolicy `json:"policy" yaml:"policy"`

	// Lenient skips malformed lines with a warning instead of failing the run.
	Lenient bool `json:"lenient" yaml:"lenient"`
}

// Validate validates the extraction configuration.
func (c *ExtractConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.InputPath, validation.Required),
		validation.Field(&c.MinYear, validation.Required, validation.Min(1000), validation.Max(9999)),
		validation.Field(&c.Encoding, validation.Required, validation.In(EncodingLatin1, EncodingUTF8)),
		validation.Field(&c.Policy),
	)
}

// MergeConfig holds settings for the normalize-and-merge stage.
type MergeConfig struct {
	// ArxivPath is the extractor output table.
	ArxivPath string `json:"arxiv" yaml:"arxiv"`

	// ACMPath is the ACM Digital Library export table.
	ACMPath string `json:"acm" yaml:"acm"`
}

// Validate validates the merge configuration.
func (c *MergeConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ArxivPath, validation.Required),
		validation.Field(&c.ACMPath, validation.Required),
	)
}

// OutputConfig selects where and in which formats a stage writes its table.
type OutputConfig struct {
	// Base is the output path without extension; one file per format is written.
	Base string `json:"base" yaml:"base"`

	Formats []Format `json:"formats" yaml:"formats"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Base, validation.Required),
		validation.Field(&c.Formats, validation.Required,
			validation.Each(validation.In(FormatXLSX, FormatArrow, FormatSQLite, FormatCSV))),
	)
}

// ParseFormats converts format names to Formats, rejecting unknown names.
func ParseFormats(names []string) ([]Format, error) {
	out := make([]Format, 0, len(names))
	for _, n := range names {
		f := Format(n)
		switch f {
		case FormatXLSX, FormatArrow, FormatSQLite, FormatCSV:
			out = append(out, f)
		default:
			return nil, fmt.Errorf("unsupported format %q: use xlsx, arrow, db or csv", n)
		}
	}
	return out, nil
}
