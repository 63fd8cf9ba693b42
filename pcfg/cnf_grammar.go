package pcfg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// CNFRuleBase is the base struct for CNFRule and CNFTerminalRule
type CNFRuleBase struct {
	// SymbolId in the left of rule
	Source int

	// Probability of this rule
	Probability float64

	// Path of symbolIds from source to target
	Path []int
}

// CNFRule stores a non-terminal rule in CNF grammar. All of the symbols in this
// rule are represented by symbol-id
type CNFRule struct {
	CNFRuleBase

	// SymbolIds in the right of rule
	FirstTarget  int
	SecondTarget int
}

// CNFTerminalRule stores the terminal rule in the grammar
type CNFTerminalRule struct {
	CNFRuleBase

	// Word matched by this rule
	TerminalTarget string
}

// CNFGrammar stores the grammar in Chomsky normal form
type CNFGrammar struct {
	// Map from symbol name to its id
	SymbolIds map[string]int

	// Map from symbolId to symbol name
	Symbols []string

	// Map from input word to the terminal rules
	TerminalRules map[string][]*CNFTerminalRule

	// Map from targets to rule. For example, rule: A -> BC. It maps (B, C) to
	// the rule itself
	Rules map[int]map[int][]*CNFRule

	// Nonterminal symbols that exports to parsing tree
	Exports map[int]bool

	// SymbolId of the start symbol
	Start int

	// Rules in insertion order, only used for printing
	ordered []fmt.Stringer
}

// NewCNFGrammar creates a new instance of CNFGrammar
func NewCNFGrammar() *CNFGrammar {
	return &CNFGrammar{
		SymbolIds:     map[string]int{},
		Symbols:       []string{},
		Rules:         map[int]map[int][]*CNFRule{},
		TerminalRules: map[string][]*CNFTerminalRule{},
		Exports:       map[int]bool{},
		Start:         -1,
	}
}

// getSymbolId get the id of given symbol. If the symbol not exist in grammar
// insert a new one
func (g *CNFGrammar) getSymbolId(s Symbol) int {
	if symbolId, ok := g.SymbolIds[string(s)]; ok {
		return symbolId
	}
	symbolId := len(g.Symbols)
	g.SymbolIds[string(s)] = symbolId
	g.Symbols = append(g.Symbols, string(s))
	return symbolId
}

// AddExportSymbol adds an export symbol to grammar
func (g *CNFGrammar) AddExportSymbol(s Symbol) {
	symbolId := g.getSymbolId(s)
	g.Exports[symbolId] = true
}

// SetStartSymbol sets the symbol that the whole sentence should derive from
func (g *CNFGrammar) SetStartSymbol(s Symbol) {
	g.Start = g.getSymbolId(s)
}

// Covers returns true if some terminal rule matches word
func (g *CNFGrammar) Covers(word string) bool {
	_, ok := g.TerminalRules[word]
	return ok
}

// AddRule adds a new rule into grammar, the rule should be A -> B C or A -> 'a'
func (g *CNFGrammar) AddRule(rule *Rule) error {
	isTerminalRule := rule.IsUnary() && rule.Right[0].IsTerminal() && rule.Right[0] != EpsilonSymbol
	isBinaryRule := rule.IsBinary() && !rule.Right[0].IsTerminal() && !rule.Right[1].IsTerminal()
	if !isTerminalRule && !isBinaryRule {
		return errors.Errorf("CNFGrammar::AddRule: invalid rule: %s", rule)
	}

	// convertPath converts a symbol-based path slice to int-based
	convertPath := func(path []Symbol) []int {
		intPath := []int{}
		for _, s := range path {
			intPath = append(intPath, g.getSymbolId(s))
		}
		return intPath
	}

	sourceId := g.getSymbolId(rule.Left)
	base := CNFRuleBase{
		Source:      sourceId,
		Probability: rule.Weight,
		Path:        convertPath(rule.Path),
	}

	if isTerminalRule {
		// It's a terminal rule, like N -> 'holmes'
		word := rule.Right[0].Word()
		cnfRule := &CNFTerminalRule{
			CNFRuleBase:    base,
			TerminalTarget: word,
		}
		g.TerminalRules[word] = append(g.TerminalRules[word], cnfRule)
		g.ordered = append(g.ordered, cnfRule.stringer(g))
		return nil
	}

	firstTargetId := g.getSymbolId(rule.Right[0])
	secondTargetId := g.getSymbolId(rule.Right[1])
	cnfRule := &CNFRule{
		CNFRuleBase:  base,
		FirstTarget:  firstTargetId,
		SecondTarget: secondTargetId,
	}
	if _, ok := g.Rules[firstTargetId]; !ok {
		g.Rules[firstTargetId] = map[int][]*CNFRule{}
	}
	g.Rules[firstTargetId][secondTargetId] = append(
		g.Rules[firstTargetId][secondTargetId],
		cnfRule)
	g.ordered = append(g.ordered, cnfRule.stringer(g))
	return nil
}

type ruleStringer func() string

func (f ruleStringer) String() string { return f() }

func (g *CNFGrammar) pathString(path []int) string {
	if len(path) == 0 {
		return ""
	}
	symbols := []string{}
	for _, id := range path {
		symbols = append(symbols, g.Symbols[id])
	}
	return fmt.Sprintf(" (%s)", strings.Join(symbols, " "))
}

func (r *CNFRule) stringer(g *CNFGrammar) fmt.Stringer {
	return ruleStringer(func() string {
		return fmt.Sprintf("%s -> %s %s [%.3f]%s",
			g.Symbols[r.Source],
			g.Symbols[r.FirstTarget],
			g.Symbols[r.SecondTarget],
			r.Probability,
			g.pathString(r.Path))
	})
}

func (r *CNFTerminalRule) stringer(g *CNFGrammar) fmt.Stringer {
	return ruleStringer(func() string {
		return fmt.Sprintf("%s -> %s [%.3f]%s",
			g.Symbols[r.Source],
			TerminalSymbol(r.TerminalTarget),
			r.Probability,
			g.pathString(r.Path))
	})
}

// String returns the rules of grammar, one per line
func (g *CNFGrammar) String() string {
	var sb strings.Builder
	if g.Start >= 0 {
		fmt.Fprintf(&sb, "%%start %s\n", g.Symbols[g.Start])
	}
	for _, rule := range g.ordered {
		sb.WriteString(rule.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// NumRules returns the number of binary and terminal rules
func (g *CNFGrammar) NumRules() int {
	return len(g.ordered)
}

// exportNames returns the names of exported symbols in lexical order
func (g *CNFGrammar) exportNames() []string {
	names := []string{}
	for id := range g.Exports {
		names = append(names, g.Symbols[id])
	}
	sort.Strings(names)
	return names
}
