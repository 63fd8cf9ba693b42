package chunk

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ling0322/sentparse/text"
)

func tagged(pairs ...string) []text.TaggedToken {
	tokens := []text.TaggedToken{}
	for i := 0; i+1 < len(pairs); i += 2 {
		tokens = append(tokens, text.TaggedToken{Text: pairs[i], Tag: pairs[i+1]})
	}
	return tokens
}

func TestParseRule(t *testing.T) {
	rule, err := ParseRule("NP: { <DT>? <JJ>* <NN.*>+ }")
	require.NoError(t, err)
	assert.Equal(t, "NP", rule.Label)
	assert.Equal(t, "NP: {<DT>?<JJ>*<NN.*>+}", rule.String())

	for _, bad := range []string{
		"NP {<DT>}",
		"NP: {}",
		"NP: {DT}",
		"NP: {<DT>(}",
	} {
		_, err := ParseRule(bad)
		assert.Error(t, err, bad)
	}
}

func TestChunkerDefaultRules(t *testing.T) {
	chunker, err := NewChunker()
	require.NoError(t, err)

	sentence := tagged("the", "DT", "red", "JJ", "armchair", "NN", "sat", "VBD", "down", "RP")
	want := []Chunk{
		{Label: "NP", Tokens: sentence[0:3], Start: 0, End: 3},
		{Label: "VP", Tokens: sentence[3:5], Start: 3, End: 5},
	}
	if diff := cmp.Diff(want, chunker.Chunk(sentence)); diff != "" {
		t.Errorf("Chunk() mismatch (-want +got):\n%s", diff)
	}
}

func TestChunkerLeftmostMatches(t *testing.T) {
	chunker, err := NewChunker()
	require.NoError(t, err)

	chunks := chunker.Chunk(tagged(
		"i", "PRP", "had", "VBD", "a", "DT", "little", "JJ", "paint", "NN",
		"and", "CC", "a", "DT", "pipe", "NN"))

	nps := Select(chunks, NounPhrase)
	require.Len(t, nps, 2)
	assert.Equal(t, "a little paint", nps[0].Text())
	assert.Equal(t, "a pipe", nps[1].Text())
	assert.Equal(t, 6, nps[1].Start)

	vps := Select(chunks, VerbPhrase)
	require.Len(t, vps, 1)
	assert.Equal(t, "had a", vps[0].Text())
}

func TestChunkerTagBoundaries(t *testing.T) {
	// '.' must not match across tags, <N.*> never swallows <NN><VB>
	chunker, err := NewChunker("X: {<N.*>}")
	require.NoError(t, err)

	chunks := chunker.Chunk(tagged("pipe", "NN", "lit", "VBD", "holmes", "NNP"))
	require.Len(t, chunks, 2)
	assert.Equal(t, "pipe", chunks[0].Text())
	assert.Equal(t, "holmes", chunks[1].Text())
	assert.Empty(t, chunker.Chunk(nil))
}

func TestNewChunkerErrors(t *testing.T) {
	_, err := NewChunker("NP: {<DT>", "VP: {<VB>}")
	assert.Error(t, err)
}
