// Package report renders analysis results for the console.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ling0322/sentparse/chunk"
	"github.com/ling0322/sentparse/internal/pipeline"
	"github.com/ling0322/sentparse/pcfg"
	"github.com/ling0322/sentparse/text"
)

const title = "sentparse - NP/VP chunking with a context-free grammar"

// Write renders results in format, "text" or "json"
func Write(w io.Writer, format string, results []*pipeline.Result) error {
	if format == "json" {
		return WriteJSON(w, results)
	}
	return WriteText(w, results)
}

// WriteText writes the human readable report
func WriteText(w io.Writer, results []*pipeline.Result) error {
	var sb strings.Builder
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	for i, r := range results {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		if r.Err != nil {
			fmt.Fprintf(&sb, "\nError processing %s: %v\n", name, r.Err)
			continue
		}

		fmt.Fprintf(&sb, "\nSentence %d (%s): %s\n", i+1, name, r.Sentence)
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		fmt.Fprintf(&sb, "Tokens: %s\n", list(r.Tokens))

		if r.ParseErr != nil {
			fmt.Fprintf(&sb, "\nParse Tree: %v\n", r.ParseErr)
		} else {
			fmt.Fprintf(&sb, "\nParse Tree:\n%s\n", r.Tree.String())
		}
		fmt.Fprintf(&sb, "\nNP Chunks: %s\n", list(r.NounPhrases))
		fmt.Fprintf(&sb, "VP Chunks: %s\n", list(r.VerbPhrases))

		if r.Tagged == nil {
			continue
		}
		fmt.Fprintf(&sb, "\nTags: %s\n", tags(r.Tagged))
		fmt.Fprintf(&sb, "Tagged NP Chunks: %s\n", chunkList(chunk.Select(r.Chunks, chunk.NounPhrase)))
		fmt.Fprintf(&sb, "Tagged VP Chunks: %s\n", chunkList(chunk.Select(r.Chunks, chunk.VerbPhrase)))
		sb.WriteString("Head Verbs:\n")
		if len(r.HeadVerbs) == 0 {
			sb.WriteString("  -> no VP found\n")
		}
		for _, hv := range r.HeadVerbs {
			verb := hv.Verb
			if !hv.Found {
				verb = "not found"
			}
			fmt.Fprintf(&sb, "  -> VP: '%s' | head verb: '%s'\n", hv.Phrase, verb)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func list(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func tags(tagged []text.TaggedToken) string {
	parts := make([]string, len(tagged))
	for i, tok := range tagged {
		parts[i] = tok.Text + "/" + tok.Tag
	}
	return strings.Join(parts, " ")
}

func chunkList(chunks []chunk.Chunk) string {
	phrases := []string{}
	seen := map[string]bool{}
	for _, c := range chunks {
		if !seen[c.Text()] {
			seen[c.Text()] = true
			phrases = append(phrases, c.Text())
		}
	}
	return list(phrases)
}

type jsonHeadVerb struct {
	Phrase string `json:"phrase"`
	Verb   string `json:"verb,omitempty"`
}

type jsonResult struct {
	Name        string             `json:"name,omitempty"`
	Sentence    string             `json:"sentence,omitempty"`
	Tokens      []string           `json:"tokens,omitempty"`
	Tree        *pcfg.Tree         `json:"tree,omitempty"`
	Bracketed   string             `json:"bracketed,omitempty"`
	LogProb     *float64           `json:"log_prob,omitempty"`
	ParseError  string             `json:"parse_error,omitempty"`
	NounPhrases []string           `json:"noun_phrases,omitempty"`
	VerbPhrases []string           `json:"verb_phrases,omitempty"`
	Tagged      []text.TaggedToken `json:"tagged,omitempty"`
	Chunks      []chunk.Chunk      `json:"chunks,omitempty"`
	HeadVerbs   []jsonHeadVerb     `json:"head_verbs,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// WriteJSON writes all results as a single JSON document
func WriteJSON(w io.Writer, results []*pipeline.Result) error {
	docs := make([]jsonResult, 0, len(results))
	for _, r := range results {
		doc := jsonResult{
			Name:        r.Name,
			Sentence:    r.Sentence,
			Tokens:      r.Tokens,
			Tree:        r.Tree,
			NounPhrases: r.NounPhrases,
			VerbPhrases: r.VerbPhrases,
			Tagged:      r.Tagged,
			Chunks:      r.Chunks,
		}
		if r.Tree != nil {
			doc.Bracketed = r.Tree.Bracketed()
			if !math.IsInf(r.Tree.LogProb, 0) {
				logProb := r.Tree.LogProb
				doc.LogProb = &logProb
			}
		}
		if r.ParseErr != nil {
			doc.ParseError = r.ParseErr.Error()
		}
		if r.Err != nil {
			doc.Error = r.Err.Error()
		}
		for _, hv := range r.HeadVerbs {
			doc.HeadVerbs = append(doc.HeadVerbs, jsonHeadVerb{Phrase: hv.Phrase, Verb: hv.Verb})
		}
		docs = append(docs, doc)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Results []jsonResult `json:"results"`
	}{docs})
}
