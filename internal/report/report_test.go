package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ling0322/sentparse/chunk"
	"github.com/ling0322/sentparse/internal/pipeline"
	"github.com/ling0322/sentparse/pcfg"
	"github.com/ling0322/sentparse/text"
)

func sampleResults() []*pipeline.Result {
	tree := &pcfg.Tree{
		Node: &pcfg.Node{Label: "S", Children: []*pcfg.Node{
			{Label: "NP", Children: []*pcfg.Node{{Label: "N", Children: []*pcfg.Node{{Label: "holmes"}}}}},
			{Label: "VP", Children: []*pcfg.Node{{Label: "V", Children: []*pcfg.Node{{Label: "sat"}}}}},
		}},
		LogProb: -2.5,
	}
	tagged := []text.TaggedToken{{Text: "holmes", Tag: "NNP"}, {Text: "sat", Tag: "VBD"}}
	return []*pipeline.Result{
		{
			Name:        "sentences/1.txt",
			Sentence:    "Holmes sat.",
			Tokens:      []string{"holmes", "sat"},
			Tree:        tree,
			NounPhrases: []string{"holmes"},
			VerbPhrases: []string{"sat"},
			Tagged:      tagged,
			Chunks: []chunk.Chunk{
				{Label: "NP", Tokens: tagged[:1], Start: 0, End: 1},
				{Label: "VP", Tokens: tagged[1:], Start: 1, End: 2},
			},
			HeadVerbs: []pipeline.HeadVerb{{Phrase: "sat", Verb: "sat", Found: true}},
		},
		{
			Sentence:    "Holmes smoked.",
			Tokens:      []string{"holmes", "smoked"},
			ParseErr:    &pcfg.CoverageError{Words: []string{"smoked"}},
			NounPhrases: []string{},
			VerbPhrases: []string{},
		},
		{
			Name: "sentences/missing.txt",
			Err:  errors.New("reading sentence: no such file"),
		},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "text", sampleResults()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, title+"\n"+strings.Repeat("=", 60)+"\n"))
	for _, line := range []string{
		"Sentence 1 (sentences/1.txt): Holmes sat.",
		"Tokens: ['holmes', 'sat']",
		"(S\n  (NP\n    (N holmes))\n  (VP\n    (V sat)))",
		"NP Chunks: ['holmes']",
		"VP Chunks: ['sat']",
		"Tags: holmes/NNP sat/VBD",
		"Tagged NP Chunks: ['holmes']",
		"  -> VP: 'sat' | head verb: 'sat'",
		"Sentence 2 (#2): Holmes smoked.",
		`Parse Tree: grammar does not cover some of the input words: "smoked"`,
		"NP Chunks: []",
		"Error processing sentences/missing.txt: reading sentence: no such file",
	} {
		assert.Contains(t, out, line)
	}
	// Tagging output only for results that were tagged
	assert.Equal(t, 1, strings.Count(out, "Head Verbs:"))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "json", sampleResults()))

	var doc struct {
		Results []struct {
			Name       string   `json:"name"`
			Bracketed  string   `json:"bracketed"`
			LogProb    *float64 `json:"log_prob"`
			ParseError string   `json:"parse_error"`
			Error      string   `json:"error"`
			Tree       struct {
				Label string `json:"label"`
			} `json:"tree"`
			HeadVerbs []struct {
				Phrase string `json:"phrase"`
				Verb   string `json:"verb"`
			} `json:"head_verbs"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Results, 3)

	first := doc.Results[0]
	assert.Equal(t, "(S (NP (N holmes)) (VP (V sat)))", first.Bracketed)
	assert.Equal(t, "S", first.Tree.Label)
	require.NotNil(t, first.LogProb)
	assert.Equal(t, -2.5, *first.LogProb)
	assert.Equal(t, "sat", first.HeadVerbs[0].Verb)

	assert.Nil(t, doc.Results[1].LogProb)
	assert.Contains(t, doc.Results[1].ParseError, "smoked")
	assert.Equal(t, "reading sentence: no such file", doc.Results[2].Error)
}

func TestWriteJSONInfiniteLogProb(t *testing.T) {
	results := sampleResults()[:1]
	results[0].Tree.LogProb = math.Inf(-1)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, results))
	assert.NotContains(t, buf.String(), "log_prob")
}
