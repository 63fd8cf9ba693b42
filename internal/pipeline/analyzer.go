// Package pipeline runs sentences through tokenization, parsing and chunking.
package pipeline

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ling0322/sentparse/chunk"
	"github.com/ling0322/sentparse/grammars"
	"github.com/ling0322/sentparse/internal/config"
	"github.com/ling0322/sentparse/pcfg"
	"github.com/ling0322/sentparse/text"
)

// HeadVerb is the main verb found in a verb phrase chunk
type HeadVerb struct {
	Phrase string
	Verb   string
	Found  bool
}

// Result holds everything found in one sentence
type Result struct {
	// Name of the input, the file path for sentence files
	Name     string
	Sentence string
	Tokens   []string

	// Tree is nil when ParseErr is set
	Tree     *pcfg.Tree
	ParseErr error

	// Minimal NP and VP subtrees of Tree
	NounPhrases []string
	VerbPhrases []string

	// Tag-pattern chunking, empty when tagging is disabled
	Tagged    []text.TaggedToken
	Chunks    []chunk.Chunk
	HeadVerbs []HeadVerb

	// Err is set when the input couldn't be read
	Err error
}

// Analyzer runs the whole analysis of a sentence. It is safe for concurrent
// use
type Analyzer struct {
	tokenizer text.Tokenizer
	parser    *pcfg.Parser
	tagger    text.Tagger
	chunker   *chunk.Chunker
	workers   int
	logger    *zap.Logger
}

// New creates an Analyzer from configuration
func New(cfg *config.Config, logger *zap.Logger) (*Analyzer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	grammarText, err := LoadGrammar(cfg.Grammar)
	if err != nil {
		return nil, err
	}
	parser, err := pcfg.NewParser(grammarText, pcfg.WithLogger(logger.Named("pcfg")))
	if err != nil {
		return nil, errors.Wrap(err, "loading grammar")
	}

	a := &Analyzer{
		tokenizer: text.NewTokenizer(cfg.Tokenizer),
		parser:    parser,
		workers:   cfg.Workers,
		logger:    logger,
	}
	if a.workers < 1 {
		a.workers = 1
	}
	if cfg.Tagging.Enabled {
		a.tagger = text.NewTagger(cfg.Tagging.Tagger)
		if a.chunker, err = chunk.NewChunker(cfg.Tagging.Rules...); err != nil {
			return nil, errors.Wrap(err, "compiling chunk rules")
		}
	}
	return a, nil
}

// LoadGrammar reads the grammar file at path, or returns the embedded English
// grammar when path is empty
func LoadGrammar(path string) (string, error) {
	if path == "" {
		return grammars.English, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "reading grammar")
	}
	return string(data), nil
}

// Parser returns the CFG parser of the analyzer
func (a *Analyzer) Parser() *pcfg.Parser {
	return a.parser
}

// Analyze tokenizes, parses and chunks a single sentence
func (a *Analyzer) Analyze(sentence string) *Result {
	result := &Result{
		Sentence:    sentence,
		Tokens:      text.Preprocess(a.tokenizer, sentence),
		NounPhrases: []string{},
		VerbPhrases: []string{},
	}

	result.Tree, result.ParseErr = a.parser.Parse(result.Tokens)
	if result.ParseErr == nil {
		result.NounPhrases = chunk.Phrases(chunk.NounPhrases(result.Tree.Node))
		result.VerbPhrases = chunk.Phrases(chunk.VerbPhrases(result.Tree.Node))
	} else {
		a.logger.Debug("sentence not parsed",
			zap.String("sentence", sentence),
			zap.Strings("tokens", result.Tokens),
			zap.Error(result.ParseErr))
	}

	if a.tagger != nil {
		result.Tagged = a.tagger.Tag(result.Tokens)
		result.Chunks = a.chunker.Chunk(result.Tagged)
		for _, c := range chunk.Select(result.Chunks, chunk.VerbPhrase) {
			verb, found := chunk.HeadVerb(c.Tokens)
			result.HeadVerbs = append(result.HeadVerbs, HeadVerb{
				Phrase: c.Text(),
				Verb:   verb,
				Found:  found,
			})
		}
	}
	return result
}
