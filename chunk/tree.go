// Package chunk extracts phrase chunks from sentences: the minimal subtrees of
// a parsing tree with a given label, and tag-pattern chunks over POS tags.
package chunk

import (
	"github.com/ling0322/sentparse/pcfg"
)

// Labels of the phrases extracted by default
const (
	NounPhrase = "NP"
	VerbPhrase = "VP"
)

// Minimal returns the subtrees labelled label that don't contain any other
// subtree labelled label, from left to right
func Minimal(root *pcfg.Node, label string) []*pcfg.Node {
	chunks := []*pcfg.Node{}
	if root == nil {
		return chunks
	}

	// visit returns whether the subtree of n has a node labelled label
	var visit func(n *pcfg.Node) bool
	visit = func(n *pcfg.Node) bool {
		if n.IsLeaf() {
			return false
		}
		nested := false
		for _, child := range n.Children {
			if visit(child) {
				nested = true
			}
		}
		if n.Label != label {
			return nested
		}
		if !nested {
			chunks = append(chunks, n)
		}
		return true
	}
	visit(root)
	return chunks
}

// NounPhrases returns the minimal NP subtrees
func NounPhrases(root *pcfg.Node) []*pcfg.Node {
	return Minimal(root, NounPhrase)
}

// VerbPhrases returns the minimal VP subtrees
func VerbPhrases(root *pcfg.Node) []*pcfg.Node {
	return Minimal(root, VerbPhrase)
}

// Phrases returns the text of each chunk. Repeated phrases are reported once,
// at their first position
func Phrases(chunks []*pcfg.Node) []string {
	phrases := []string{}
	seen := map[string]bool{}
	for _, c := range chunks {
		text := c.Text()
		if seen[text] {
			continue
		}
		seen[text] = true
		phrases = append(phrases, text)
	}
	return phrases
}
