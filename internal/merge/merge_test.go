// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/corpus-builder/internal/normalize"
	"github.com/pdiddy/corpus-builder/pkg/types"
)

func titles(t types.CanonicalTable) []string {
	out := make([]string, len(t))
	for i, r := range t {
		out[i] = r.Title
	}
	return out
}

func TestKey(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Deep Learning", "deeplearning"},
		{"deep   learning!!", "deeplearning"},
		{"  Attention Is All You Need. ", "attentionisallyouneed"},
		{"GPT-4: Technical Report (v2)", "gpt4technicalreportv2"},
		{"Naïve Bayes", "navebayes"},
		{"", ""},
		{"?!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.title))
		})
	}
}

func TestDeduplicateFirstSeenWins(t *testing.T) {
	in := types.CanonicalTable{
		{Title: "Deep Learning", Source: types.SourceArxiv, Year: 2020},
		{Title: "Other Paper", Source: types.SourceArxiv, Year: 2021},
		{Title: "deep   learning!!", Source: types.SourceACM, Year: 2019},
	}

	out, removed := Deduplicate(in)
	assert.Equal(t, 1, removed)
	require.Len(t, out, 2)
	assert.Equal(t, []string{"Deep Learning", "Other Paper"}, titles(out))
	assert.Equal(t, types.SourceArxiv, out[0].Source)
	assert.Equal(t, 2020, out[0].Year)

	// The input is not modified.
	assert.Len(t, in, 3)
	assert.Equal(t, "deep   learning!!", in[2].Title)
}

func TestDeduplicateKeepsOrder(t *testing.T) {
	in := types.CanonicalTable{
		{Title: "C"}, {Title: "A"}, {Title: "c."}, {Title: "B"}, {Title: "a"}, {Title: "D"},
	}
	out, removed := Deduplicate(in)
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"C", "A", "B", "D"}, titles(out))
}

func TestDeduplicateIdempotent(t *testing.T) {
	in := types.CanonicalTable{
		{Title: "X"}, {Title: "x!"}, {Title: "Y"}, {Title: "Z"}, {Title: "y"},
	}
	once, _ := Deduplicate(in)
	twice, removed := Deduplicate(once)
	assert.Equal(t, 0, removed)
	assert.Equal(t, once, twice)
}

func TestDeduplicateUniqueKeys(t *testing.T) {
	in := types.CanonicalTable{
		{Title: "Knowledge Conflicts"}, {Title: "knowledge-conflicts"}, {Title: "Knowledge  Conflicts?"},
		{Title: "Entity Tracking"}, {Title: "ENTITY TRACKING"},
	}
	out, _ := Deduplicate(in)
	seen := map[string]bool{}
	for _, r := range out {
		k := Key(r.Title)
		assert.False(t, seen[k], "duplicate key %q", k)
		seen[k] = true
	}
	assert.LessOrEqual(t, len(out), len(in))
}

func TestConcat(t *testing.T) {
	a := types.CanonicalTable{{Title: "a1"}, {Title: "a2"}}
	b := types.CanonicalTable{{Title: "b1"}}
	got := Concat(a, b)
	assert.Equal(t, []string{"a1", "a2", "b1"}, titles(got))

	got[0].Title = "changed"
	assert.Equal(t, "a1", a[0].Title)
	assert.Empty(t, Concat())
}

func TestMergeEndToEnd(t *testing.T) {
	arxiv := types.ArxivTable{
		{ID: "2001.00001", Title: "Dissecting Recall of Factual Associations", Abstract: "a1", Authors: "Geva", CreatedYear: 2023},
		{ID: "2001.00002", Title: "Knowledge Conflicts for LLMs: A Survey", Abstract: "a2", Authors: "Xu", CreatedYear: 2024},
		{ID: "2001.00003", Title: "Locating and Editing Factual Associations", Abstract: "a3", Authors: "Meng", CreatedYear: 2022},
	}
	acm := types.ACMTable{
		{Title: "Knowledge conflicts for LLMs - a survey", Abstract: "b1", Authors: "Xu et al.", DatePublished: "2024-11-01"},
		{Title: "Context versus Memory", Abstract: "b2", Authors: "Lee", DatePublished: "2023-02-14"},
	}

	acmCanon, err := normalize.FromACM(acm)
	require.NoError(t, err)
	res := Merge(normalize.FromArxiv(arxiv), acmCanon)

	assert.Equal(t, 5, res.Input)
	assert.Equal(t, 1, res.DupsRemoved)
	require.Len(t, res.Rows, 4)
	assert.Equal(t, []string{"title", "abstract", "authors", "year", "source"}, res.Rows.Frame().Schema.Names())

	wantSources := []types.Source{types.SourceArxiv, types.SourceArxiv, types.SourceArxiv, types.SourceACM}
	for i, r := range res.Rows {
		assert.Equal(t, wantSources[i], r.Source, "row %d", i)
	}
	assert.Equal(t, "Knowledge Conflicts for LLMs: A Survey", res.Rows[1].Title)
	assert.Equal(t, 2024, res.Rows[1].Year)
	assert.Equal(t, "Context versus Memory", res.Rows[3].Title)
	assert.Equal(t, 2023, res.Rows[3].Year)
}
