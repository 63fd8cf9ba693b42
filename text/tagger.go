package text

import (
	"sync"

	"github.com/jdkato/prose/tag"
)

// TaggedToken is a token with its part-of-speech tag
type TaggedToken struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

// Tagger assigns a part-of-speech tag to every token
type Tagger interface {
	Tag(tokens []string) []TaggedToken
}

// PerceptronTagger is the averaged perceptron tagger trained on the Penn
// Treebank. The model is loaded on first use
type PerceptronTagger struct {
	once   sync.Once
	mu     sync.Mutex
	tagger *tag.PerceptronTagger
}

// NewPerceptronTagger creates a PerceptronTagger
func NewPerceptronTagger() *PerceptronTagger {
	return &PerceptronTagger{}
}

// Tag implements Tagger. It is safe for concurrent use
func (t *PerceptronTagger) Tag(tokens []string) []TaggedToken {
	t.once.Do(func() {
		t.tagger = tag.NewPerceptronTagger()
	})
	if len(tokens) == 0 {
		return []TaggedToken{}
	}
	t.mu.Lock()
	result := t.tagger.Tag(tokens)
	t.mu.Unlock()

	tagged := make([]TaggedToken, 0, len(result))
	for _, tok := range result {
		tagged = append(tagged, TaggedToken{Text: tok.Text, Tag: tok.Tag})
	}
	return tagged
}

// FixedTagger tags every token with the same tag
type FixedTagger struct {
	Label string
}

// Tag implements Tagger
func (f FixedTagger) Tag(tokens []string) []TaggedToken {
	tagged := make([]TaggedToken, len(tokens))
	for i, tok := range tokens {
		tagged[i] = TaggedToken{Text: tok, Tag: f.Label}
	}
	return tagged
}

// NewTagger returns the tagger registered under name: "perceptron" or
// "fixed". Unknown names fall back to a fixed "NN" tagger
func NewTagger(name string) Tagger {
	if name == "perceptron" {
		return NewPerceptronTagger()
	}
	return FixedTagger{Label: "NN"}
}
