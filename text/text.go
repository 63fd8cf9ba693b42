// Package text turns raw sentences into the normalized tokens the grammar
// matches against, and tags them with part-of-speech labels.
package text

import (
	"strings"
	"unicode"

	"github.com/jdkato/prose/tokenize"
)

// Tokenizer splits a sentence into word tokens
type Tokenizer interface {
	Tokenize(sentence string) []string
}

// TreebankTokenizer splits words the way the Penn Treebank does: punctuation
// and clitics like "n't" become tokens of their own
type TreebankTokenizer struct {
	tokenizer *tokenize.TreebankWordTokenizer
}

// NewTreebankTokenizer creates a TreebankTokenizer
func NewTreebankTokenizer() *TreebankTokenizer {
	return &TreebankTokenizer{tokenizer: tokenize.NewTreebankWordTokenizer()}
}

// Tokenize implements Tokenizer
func (t *TreebankTokenizer) Tokenize(sentence string) []string {
	return t.tokenizer.Tokenize(sentence)
}

// WhitespaceTokenizer splits on white space only
type WhitespaceTokenizer struct{}

// Tokenize implements Tokenizer
func (WhitespaceTokenizer) Tokenize(sentence string) []string {
	return strings.Fields(sentence)
}

// NewTokenizer returns the tokenizer registered under name: "treebank" or
// "whitespace". Unknown names fall back to whitespace
func NewTokenizer(name string) Tokenizer {
	if name == "treebank" {
		return NewTreebankTokenizer()
	}
	return WhitespaceTokenizer{}
}

// Preprocess lowercases the sentence, tokenizes it and drops the tokens made
// of punctuation only
func Preprocess(tokenizer Tokenizer, sentence string) []string {
	tokens := []string{}
	for _, tok := range tokenizer.Tokenize(strings.ToLower(sentence)) {
		tok = strings.TrimSpace(tok)
		if tok == "" || isPunctuation(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func isPunctuation(tok string) bool {
	for _, r := range tok {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
