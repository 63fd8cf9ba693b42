package pcfg

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNoParse is returned when the sentence can't be derived from the grammar
var ErrNoParse = errors.New("no valid parse found")

// CoverageError is returned when some words of the sentence aren't matched by
// any terminal rule
type CoverageError struct {
	Words []string
}

func (e *CoverageError) Error() string {
	quoted := make([]string, len(e.Words))
	for i, word := range e.Words {
		quoted[i] = fmt.Sprintf("%q", word)
	}
	return "grammar does not cover some of the input words: " + strings.Join(quoted, ", ")
}

// Parser is the struct for CFG parsing. It is safe for concurrent use
type Parser struct {
	grammar    *Grammar
	cnfGrammar *CNFGrammar
	logger     *zap.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger traces grammar conversion and chart parsing at debug level
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser creates a new instance of parser with grammar text
func NewParser(grammarText string, opts ...Option) (*Parser, error) {
	parser := &Parser{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(parser)
	}

	grammar, err := ParseGrammar(grammarText)
	if err != nil {
		return nil, err
	}
	grammar.SetLogger(parser.logger)

	cnfGrammar, err := grammar.ConvertToCNF()
	if err != nil {
		return nil, errors.Wrap(err, "NewParser: converting grammar to CNF")
	}
	parser.grammar = grammar
	parser.cnfGrammar = cnfGrammar

	parser.logger.Debug("grammar loaded",
		zap.String("start", string(grammar.Start)),
		zap.Int("rules", len(grammar.Rules)),
		zap.Int("cnf_rules", cnfGrammar.NumRules()),
		zap.Strings("exports", cnfGrammar.exportNames()))
	return parser, nil
}

// Grammar returns the grammar parsed from text
func (p *Parser) Grammar() *Grammar {
	return p.grammar
}

// CNF returns the grammar in Chomsky normal form used by the chart parser
func (p *Parser) CNF() *CNFGrammar {
	return p.cnfGrammar
}

// CheckCoverage returns a *CoverageError when some tokens are not matched by
// any terminal rule of the grammar
func (p *Parser) CheckCoverage(tokens []string) error {
	missing := []string{}
	seen := map[string]bool{}
	for _, tok := range tokens {
		if p.cnfGrammar.Covers(tok) || seen[tok] {
			continue
		}
		seen[tok] = true
		missing = append(missing, tok)
	}
	if len(missing) != 0 {
		return &CoverageError{Words: missing}
	}
	return nil
}

// Parse parses tokens using the grammar. If tokens matches the grammar,
// returns the parsing tree. Otherwise, returns ErrNoParse or a *CoverageError
func (p *Parser) Parse(tokens []string) (*Tree, error) {
	if err := p.CheckCoverage(tokens); err != nil {
		return nil, err
	}
	tree := CYK(p.cnfGrammar, tokens, p.logger)
	if tree == nil {
		return nil, ErrNoParse
	}
	return tree, nil
}
