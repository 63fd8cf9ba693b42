package pcfg

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Symbol represents a symbol in a grammar rule, both terminal and non-terminal.
//
//     NP        non-terminal
//     'holmes'  terminal, single or double quoted
//     <x_NP_3>  internal non-terminal created while converting to CNF
type Symbol string

// The build-in symbols
const EpsilonSymbol = Symbol("<nil>")

var (
	nonTerminalPattern = regexp.MustCompile(`^[A-Za-z_][\w\-.$]*$`)
	internalPattern    = regexp.MustCompile(`^<[\w\-.$]+>$`)
	textPattern        = regexp.MustCompile(`[^_A-Za-z0-9]+`)
)

// InternalSymbol creates an internal non-terminal symbol from name. Internal
// symbols never appear in parsing trees
func InternalSymbol(name string) Symbol {
	return Symbol("<" + strings.TrimSpace(name) + ">")
}

// TerminalSymbol creates a quoted terminal symbol for word
func TerminalSymbol(word string) Symbol {
	if strings.ContainsRune(word, '\'') {
		return Symbol(`"` + word + `"`)
	}
	return Symbol("'" + word + "'")
}

// IsValid checks the symbol string is valid
func (s Symbol) IsValid() bool {
	if s.isQuoted() {
		return len(s) > 2
	}
	return nonTerminalPattern.MatchString(string(s)) ||
		internalPattern.MatchString(string(s))
}

func (s Symbol) isQuoted() bool {
	if len(s) < 2 {
		return false
	}
	q := s[0]
	return (q == '\'' || q == '"') && s[len(s)-1] == q
}

// IsTerminal checks if it is a terminal symbol, assuming s.IsValid() == true
func (s Symbol) IsTerminal() bool {
	return s == EpsilonSymbol || s.isQuoted()
}

// IsInternal returns true for the non-terminals introduced by CNF conversion
func (s Symbol) IsInternal() bool {
	return s != EpsilonSymbol && len(s) > 0 && s[0] == '<'
}

// Word returns the input word matched by a terminal symbol
func (s Symbol) Word() string {
	if s.isQuoted() {
		return string(s[1 : len(s)-1])
	}
	return string(s)
}

// Text return the text in Symbol, the text should be [_A-Za-z0-9] only, like
//     NP-SBJ -> "NP_SBJ"
//     <x_S_1> -> "x_S_1"
//     'holmes' -> "holmes"
func (s Symbol) Text() string {
	text := string(s)
	if s.isQuoted() || s.IsInternal() || s == EpsilonSymbol {
		text = text[1 : len(text)-1]
	}
	return textPattern.ReplaceAllString(text, "_")
}

// Rule represents a weighted CFG rule
type Rule struct {
	Left   Symbol
	Right  []Symbol
	Weight float64

	// Path is the derive path from right symbols to left symbols
	// It will have values only after some post-processing steps
	// For example, after CFG to CNF, rule A->B, B->C, C->DE will merged into
	// a single rule A->DE and the path is (B C)
	Path []Symbol
}

// IsBinary returns true if it's a binary rule, like A -> B C
func (r *Rule) IsBinary() bool {
	return len(r.Right) == 2
}

// IsUnary returns true if it's a unary rule, like A -> B
func (r *Rule) IsUnary() bool {
	return len(r.Right) == 1
}

// IsEpsilon returns true for A -> <nil>
func (r *Rule) IsEpsilon() bool {
	return r.IsUnary() && r.Right[0] == EpsilonSymbol
}

func (r *Rule) clone() *Rule {
	c := &Rule{Left: r.Left, Weight: r.Weight}
	c.Right = append([]Symbol{}, r.Right...)
	if r.Path != nil {
		c.Path = append([]Symbol{}, r.Path...)
	}
	return c
}

// ParseRule parse one production from string
// The production would be like:
//     VP -> V NP | V 'down' [0.3] |
// Then returns
//     [{VP, [V, NP], 1.0}, {VP, [V, 'down'], 0.3}, {VP, [<nil>], 1.0}]
// An empty alternative is an epsilon rule
func ParseRule(ruleText string) (rules []*Rule, err error) {
	fields := strings.SplitN(ruleText, "->", 2)
	if len(fields) != 2 {
		return nil, errors.Errorf("ParseRule: '->' expected in '%s'", ruleText)
	}

	// Left part
	leftSymbol := Symbol(strings.TrimSpace(fields[0]))
	if !nonTerminalPattern.MatchString(string(leftSymbol)) {
		if leftSymbol.IsTerminal() {
			return nil, errors.Errorf("ParseRule: '%s': terminal symbol in the left", ruleText)
		}
		return nil, errors.Errorf("ParseRule: '%s': invalid symbol '%s' in the left", ruleText, leftSymbol)
	}

	// Right part
	alternatives, err := scanAlternatives(fields[1])
	if err != nil {
		return nil, errors.Wrapf(err, "ParseRule: '%s'", ruleText)
	}
	for _, alt := range alternatives {
		rule := &Rule{
			Left:   leftSymbol,
			Right:  alt.symbols,
			Weight: alt.weight,
		}
		if len(rule.Right) == 0 {
			rule.Right = []Symbol{EpsilonSymbol}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

type alternative struct {
	symbols []Symbol
	weight  float64
}

// scanAlternatives splits the right side of a production into alternatives,
// honoring quoted terminals and the optional trailing [weight]
func scanAlternatives(text string) ([]alternative, error) {
	alternatives := []alternative{}
	current := alternative{weight: 1.0}
	hasWeight := false

	runes := []rune(text)
	for i := 0; i < len(runes); {
		c := runes[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '|':
			alternatives = append(alternatives, current)
			current = alternative{weight: 1.0}
			hasWeight = false
			i++
		case hasWeight:
			return nil, errors.Errorf("unexpected '%c' after weight", c)
		case c == '\'' || c == '"':
			end := i + 1
			for end < len(runes) && runes[end] != c {
				end++
			}
			if end >= len(runes) {
				return nil, errors.Errorf("unterminated quote at offset %d", i)
			}
			if end == i+1 {
				return nil, errors.New("empty terminal symbol")
			}
			current.symbols = append(current.symbols, Symbol(string(runes[i:end+1])))
			i = end + 1
		case c == '[':
			end := i + 1
			for end < len(runes) && runes[end] != ']' {
				end++
			}
			if end >= len(runes) {
				return nil, errors.New("unterminated weight")
			}
			weightText := strings.TrimSpace(string(runes[i+1 : end]))
			weight, err := strconv.ParseFloat(weightText, 64)
			if err != nil {
				return nil, errors.Errorf("float expected but '%s' found", weightText)
			}
			if weight <= 0 {
				return nil, errors.Errorf("weight must be positive, got %s", weightText)
			}
			current.weight = weight
			hasWeight = true
			i = end + 1
		default:
			end := i
			for end < len(runes) && !strings.ContainsRune(" \t\r\n|['\"", runes[end]) {
				end++
			}
			symbol := Symbol(string(runes[i:end]))
			if !nonTerminalPattern.MatchString(string(symbol)) {
				return nil, errors.Errorf("unexpected '%s'", symbol)
			}
			current.symbols = append(current.symbols, symbol)
			i = end
		}
	}
	alternatives = append(alternatives, current)
	return alternatives, nil
}

// String converts rule to string format
func (r *Rule) String() string {
	symbols := []string{}
	for _, symbol := range r.Right {
		symbols = append(symbols, string(symbol))
	}
	s := fmt.Sprintf(
		"%s -> %s [%.3f]",
		string(r.Left),
		strings.Join(symbols, " "),
		r.Weight)
	if r.Path != nil {
		symbols = []string{}
		for _, symbol := range r.Path {
			symbols = append(symbols, string(symbol))
		}
		s += fmt.Sprintf(" (%s)", strings.Join(symbols, " "))
	}
	return s
}
