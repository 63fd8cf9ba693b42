package pcfg

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Grammar consists a list of weighted CFG rules
type Grammar struct {
	Rules []*Rule

	// Start symbol, the left side of the first rule unless %start is given
	Start Symbol

	// Non-terminal symbols that exports to parsing tree
	Exports map[Symbol]bool

	logger    *zap.Logger
	internals int
}

// ParseGrammar parses grammar from string
func ParseGrammar(grammarText string) (*Grammar, error) {
	grammar := &Grammar{
		Rules:   []*Rule{},
		Exports: map[Symbol]bool{},
		logger:  zap.NewNop(),
	}

	lines, err := logicalLines(grammarText)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		// Start directive
		if strings.HasPrefix(line, "%start") {
			fields := strings.Fields(line[len("%start"):])
			if len(fields) != 1 || !nonTerminalPattern.MatchString(fields[0]) {
				return nil, errors.Errorf("ParseGrammar: unexpected start directive: %s", line)
			}
			grammar.Start = Symbol(fields[0])
			continue
		}

		// Parse this rule
		rules, err := ParseRule(line)
		if err != nil {
			return nil, err
		}
		grammar.Rules = append(grammar.Rules, rules...)
	}

	if len(grammar.Rules) == 0 {
		return nil, errors.New("ParseGrammar: no rules found")
	}
	if grammar.Start == "" {
		grammar.Start = grammar.Rules[0].Left
	}
	for _, rule := range grammar.Rules {
		grammar.Exports[rule.Left] = true
	}
	if err := grammar.validate(); err != nil {
		return nil, err
	}
	return grammar, nil
}

// logicalLines strips comments and blank lines, and joins the lines starting
// with '|' into the production above them
func logicalLines(grammarText string) ([]string, error) {
	lines := []string{}
	for i, line := range strings.Split(grammarText, "\n") {
		line = strings.TrimSpace(stripComment(line))
		if line == "" {
			continue
		}
		if line[0] == '|' {
			if len(lines) == 0 {
				return nil, errors.Errorf("ParseGrammar: line %d: continuation without a rule", i+1)
			}
			lines[len(lines)-1] += " " + line
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// stripComment removes the text after a '#' that is not inside quotes
func stripComment(line string) string {
	var quote rune
	for i, c := range line {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			return line[:i]
		}
	}
	return line
}

// validate checks that the start symbol and every non-terminal in the right
// side are defined
func (g *Grammar) validate() error {
	if !g.Exports[g.Start] {
		return errors.Errorf("ParseGrammar: start symbol %s has no rules", g.Start)
	}
	undefined := []string{}
	seen := map[Symbol]bool{}
	for _, rule := range g.Rules {
		for _, symbol := range rule.Right {
			if symbol.IsTerminal() || g.Exports[symbol] || seen[symbol] {
				continue
			}
			seen[symbol] = true
			undefined = append(undefined, string(symbol))
		}
	}
	if len(undefined) != 0 {
		return errors.Errorf(
			"ParseGrammar: undefined non-terminal symbols: %s",
			strings.Join(undefined, ", "))
	}
	return nil
}

// SetLogger sets the logger used to trace the CNF conversion
func (g *Grammar) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	g.logger = logger
}

// Terminals returns the words covered by the grammar in order of appearance
func (g *Grammar) Terminals() []string {
	words := []string{}
	seen := map[string]bool{}
	for _, rule := range g.Rules {
		for _, symbol := range rule.Right {
			if symbol.IsTerminal() && symbol != EpsilonSymbol && !seen[symbol.Word()] {
				seen[symbol.Word()] = true
				words = append(words, symbol.Word())
			}
		}
	}
	return words
}

// String returns the rules of grammar, one per line
func (g *Grammar) String() string {
	var sb strings.Builder
	for _, rule := range g.Rules {
		sb.WriteString(rule.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// clone copies the grammar, so that the conversion won't change the rules
// parsed from text
func (g *Grammar) clone() *Grammar {
	c := &Grammar{
		Rules:   make([]*Rule, 0, len(g.Rules)),
		Start:   g.Start,
		Exports: map[Symbol]bool{},
		logger:  g.logger,
	}
	for _, rule := range g.Rules {
		c.Rules = append(c.Rules, rule.clone())
	}
	for symbol := range g.Exports {
		c.Exports[symbol] = true
	}
	return c
}

// debugStage logs the rules after a conversion stage
func (g *Grammar) debugStage(stage string) {
	if ce := g.logger.Check(zap.DebugLevel, "grammar conversion stage"); ce != nil {
		ce.Write(
			zap.String("stage", stage),
			zap.Int("rules", len(g.Rules)),
			zap.String("grammar", g.String()))
	}
}
