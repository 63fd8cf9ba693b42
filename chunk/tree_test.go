package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ling0322/sentparse/grammars"
	"github.com/ling0322/sentparse/pcfg"
)

func n(label string, children ...*pcfg.Node) *pcfg.Node {
	return &pcfg.Node{Label: label, Children: children}
}

func w(word string) *pcfg.Node {
	return &pcfg.Node{Label: word}
}

func parse(t *testing.T, sentence string) *pcfg.Tree {
	t.Helper()
	parser, err := pcfg.NewParser(grammars.English)
	require.NoError(t, err)
	tree, err := parser.Parse(strings.Fields(sentence))
	require.NoError(t, err)
	return tree
}

func TestMinimal(t *testing.T) {
	// (S (NP (NP (N holmes)) (PP (P in) (NP (Det the) (N door)))) (VP (V sat)))
	root := n("S",
		n("NP",
			n("NP", n("N", w("holmes"))),
			n("PP", n("P", w("in")), n("NP", n("Det", w("the")), n("N", w("door"))))),
		n("VP", n("V", w("sat"))))

	nps := NounPhrases(root)
	assert.Equal(t, []string{"holmes", "the door"}, Phrases(nps))
	assert.Equal(t, []string{"sat"}, Phrases(VerbPhrases(root)))
	assert.Empty(t, Minimal(root, "AP"))
	assert.Empty(t, Minimal(nil, NounPhrase))
}

func TestMinimalLeafLabel(t *testing.T) {
	// A token that happens to equal the label is not a phrase
	root := n("S", n("N", w("NP")))
	assert.Empty(t, NounPhrases(root))
}

func TestPhrasesDeduplicates(t *testing.T) {
	chunks := []*pcfg.Node{
		n("NP", n("N", w("holmes"))),
		n("NP", n("N", w("he"))),
		n("NP", n("N", w("holmes"))),
	}
	assert.Equal(t, []string{"holmes", "he"}, Phrases(chunks))
}

func TestChunksOfParsedSentences(t *testing.T) {
	tests := []struct {
		sentence string
		nps      []string
		vps      []string
	}{
		{
			sentence: "holmes sat down",
			nps:      []string{"holmes"},
			vps:      []string{"sat down"},
		},
		{
			sentence: "holmes sat in the red armchair and he chuckled",
			nps:      []string{"holmes", "the red armchair", "he"},
		},
		{
			sentence: "i had a little moist red paint in the palm of my hand",
			nps:      []string{"i", "a little moist red paint", "the palm", "my hand"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			tree := parse(t, tt.sentence)
			assert.Equal(t, tt.nps, Phrases(NounPhrases(tree.Node)))
			if tt.vps != nil {
				assert.Equal(t, tt.vps, Phrases(VerbPhrases(tree.Node)))
			}
		})
	}
}
