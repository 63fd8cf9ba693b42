package pcfg

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// CFG to CNF conversion, following
// http://www.cs.nyu.edu/courses/fall07/V22.0453-001/cnf.pdf
// with weights carried through every step.

// ConvertToCNF converts CFG grammar to CNF. The grammar itself is unchanged
func (g *Grammar) ConvertToCNF() (*CNFGrammar, error) {
	g = g.clone()
	g.debugStage("original")
	g.normalize()
	g.liftTerminals()
	g.debugStage("lift terminals")
	g.binarize()
	g.debugStage("binarize")
	g.dropEpsilons()
	g.debugStage("drop epsilons")
	g.collapseUnitCycles()
	g.debugStage("collapse unit cycles")
	g.dropUnitRules()
	g.debugStage("drop unit rules")

	cnfGrammar := NewCNFGrammar()
	for _, rule := range g.Rules {
		if err := cnfGrammar.AddRule(rule); err != nil {
			return nil, err
		}
	}
	for _, export := range sortedSymbols(g.Exports) {
		cnfGrammar.AddExportSymbol(export)
	}
	cnfGrammar.SetStartSymbol(g.Start)

	return cnfGrammar, nil
}

// newInternal returns a fresh internal symbol, unique in this grammar
func (g *Grammar) newInternal(prefix string, s Symbol) Symbol {
	g.internals++
	return InternalSymbol(fmt.Sprintf("%s_%s_%d", prefix, s.Text(), g.internals))
}

// keepRules drops the rules for which keep returns false
func (g *Grammar) keepRules(keep func(*Rule) bool) {
	kept := g.Rules[:0]
	for _, rule := range g.Rules {
		if keep(rule) {
			kept = append(kept, rule)
		}
	}
	g.Rules = kept
}

func isUnitRule(r *Rule) bool {
	return r.IsUnary() && !r.Right[0].IsTerminal()
}

// ruleIndex maps symbols to the rules they appear in. Rules must be unary or
// binary
type ruleIndex struct {
	byLeft map[Symbol][]*Rule

	// Only non-terminals are indexed on the right side
	byRight map[Symbol][]*Rule
}

func (g *Grammar) index() ruleIndex {
	idx := ruleIndex{
		byLeft:  map[Symbol][]*Rule{},
		byRight: map[Symbol][]*Rule{},
	}
	for _, rule := range g.Rules {
		idx.byLeft[rule.Left] = append(idx.byLeft[rule.Left], rule)
		if rule.IsBinary() || isUnitRule(rule) {
			for _, s := range rule.Right {
				idx.byRight[s] = append(idx.byRight[s], rule)
			}
		}
	}
	return idx
}

// normalize scales the weights so the rules of each left symbol sum to 1
func (g *Grammar) normalize() {
	total := map[Symbol]float64{}
	for _, rule := range g.Rules {
		total[rule.Left] += rule.Weight
	}
	for _, rule := range g.Rules {
		if sum := total[rule.Left]; sum > 0 {
			rule.Weight /= sum
		}
	}
}

// liftTerminals replaces each terminal of a rule longer than one symbol by an
// internal symbol that derives only that terminal
func (g *Grammar) liftTerminals() {
	lifted := map[Symbol]Symbol{}
	added := []*Rule{}
	for _, rule := range g.Rules {
		if rule.IsUnary() {
			continue
		}
		for i, s := range rule.Right {
			if !s.IsTerminal() {
				continue
			}
			internal, ok := lifted[s]
			if !ok {
				internal = g.newInternal("t", s)
				lifted[s] = internal
				added = append(added, &Rule{Left: internal, Right: []Symbol{s}, Weight: 1})
			}
			rule.Right[i] = internal
		}
	}
	g.Rules = append(g.Rules, added...)
}

// binarize splits A -> B C D into A -> B <x>, <x> -> C D
func (g *Grammar) binarize() {
	rules := make([]*Rule, 0, len(g.Rules))
	for _, rule := range g.Rules {
		if len(rule.Right) <= 2 {
			rules = append(rules, rule)
			continue
		}

		left, weight, rest := rule.Left, rule.Weight, rule.Right
		for len(rest) > 2 {
			x := g.newInternal("x", rule.Left)
			rules = append(rules, &Rule{Left: left, Right: []Symbol{rest[0], x}, Weight: weight})
			left, weight, rest = x, 1, rest[1:]
		}
		rules = append(rules, &Rule{Left: left, Right: []Symbol{rest[0], rest[1]}, Weight: weight})
	}
	g.Rules = rules
}

// nullableProbs returns the probability that a symbol derives the empty
// string, for every symbol where it isn't zero
func (g *Grammar) nullableProbs() map[Symbol]float64 {
	byRight := g.index().byRight
	probs := map[Symbol]float64{}
	queue := []Symbol{}
	for _, rule := range g.Rules {
		if rule.IsEpsilon() {
			probs[rule.Left] += rule.Weight
			queue = append(queue, rule.Left)
		}
	}

	done := map[*Rule]bool{}
	for len(queue) != 0 {
		s := queue[0]
		queue = queue[1:]
		for _, rule := range byRight[s] {
			if done[rule] {
				continue
			}
			p := rule.Weight
			for _, symbol := range rule.Right {
				p *= probs[symbol]
			}
			if p > 0 {
				probs[rule.Left] += p
				done[rule] = true
				queue = append(queue, rule.Left)
			}
		}
	}
	return probs
}

// dropEpsilons removes A -> <nil>. For A -> B C with B nullable the rule
// A -> C takes over the probability that B is empty
func (g *Grammar) dropEpsilons() {
	nullable := g.nullableProbs()
	if len(nullable) == 0 {
		return
	}

	units := map[[2]Symbol]*Rule{}
	for _, rule := range g.Rules {
		if rule.IsUnary() {
			units[[2]Symbol{rule.Left, rule.Right[0]}] = rule
		}
	}

	type shortcut struct {
		left, right Symbol
		weight      float64
	}
	shortcuts := []shortcut{}
	for _, rule := range g.Rules {
		if !rule.IsBinary() {
			continue
		}
		weight := rule.Weight
		for i, s := range rule.Right {
			if p := nullable[s]; p > 0 {
				w := weight * math.Min(p, 1)
				shortcuts = append(shortcuts, shortcut{rule.Left, rule.Right[1-i], w})
				rule.Weight -= w
			}
		}
	}

	for _, sc := range shortcuts {
		key := [2]Symbol{sc.left, sc.right}
		if unit, ok := units[key]; ok {
			unit.Weight += sc.weight
			continue
		}
		unit := &Rule{Left: sc.left, Right: []Symbol{sc.right}, Weight: sc.weight}
		units[key] = unit
		g.Rules = append(g.Rules, unit)
	}

	// Binary rules may be left with nothing when both sides are always empty
	g.keepRules(func(r *Rule) bool { return !r.IsEpsilon() && r.Weight > 0 })
	g.normalize()
}

// unitGraph returns the graph of unit rules A -> B
func (g *Grammar) unitGraph() *DirectedGraph {
	graph := NewDirectedGraph()
	for _, rule := range g.Rules {
		if isUnitRule(rule) {
			graph.Add(Vertex(rule.Left), Vertex(rule.Right[0]), rule.Weight)
		}
	}
	return graph
}

// collapseUnitCycles removes the cycles of unit rules like A -> B, B -> A
func (g *Grammar) collapseUnitCycles() {
	for _, component := range g.unitGraph().StrongComponents() {
		g.collapseCycle(component)
	}
	g.keepRules(func(r *Rule) bool { return !(r.IsUnary() && r.Left == r.Right[0]) })
	g.normalize()
}

// collapseCycle gives every symbol of the cycle that is used outside of it the
// non-unit rules of the other symbols, weighted by the most probable unit path
// to them. Symbols used only inside the cycle disappear
func (g *Grammar) collapseCycle(vertices []Vertex) {
	cycle := make([]Symbol, len(vertices))
	inCycle := map[Symbol]bool{}
	for i, v := range vertices {
		cycle[i] = Symbol(v)
		inCycle[Symbol(v)] = true
	}
	isCycleRule := func(r *Rule) bool {
		return r.IsUnary() && inCycle[r.Left] && inCycle[r.Right[0]]
	}

	// Shortest paths over -log(p) are the most probable unit paths
	paths := NewDirectedGraph()
	for _, rule := range g.Rules {
		if isCycleRule(rule) {
			paths.Add(Vertex(rule.Left), Vertex(rule.Right[0]), -math.Log(rule.Weight))
		}
	}
	distance := paths.Floyd()
	reach := func(s, t Symbol) float64 {
		return math.Exp(-distance[Vertex(s)][Vertex(t)])
	}

	idx := g.index()
	hidden := map[Symbol]bool{}
	for _, s := range cycle {
		if !g.usedOutside(s, idx, inCycle) {
			hidden[s] = true
			continue
		}

		enter := 0.0
		for _, rule := range idx.byLeft[s] {
			if isCycleRule(rule) {
				enter += rule.Weight
			}
		}
		for _, t := range cycle {
			if t == s {
				continue
			}
			for _, rule := range idx.byLeft[t] {
				if isCycleRule(rule) {
					continue
				}
				g.Rules = append(g.Rules, &Rule{
					Left:   s,
					Right:  rule.Right,
					Weight: enter * reach(s, t) * rule.Weight,
				})
			}
		}
	}

	g.keepRules(func(r *Rule) bool { return !isCycleRule(r) && !hidden[r.Left] })
}

// usedOutside reports whether s is the start symbol or appears in a rule
// other than the unit rules of its cycle
func (g *Grammar) usedOutside(s Symbol, idx ruleIndex, inCycle map[Symbol]bool) bool {
	if s == g.Start {
		return true
	}
	for _, rule := range idx.byRight[s] {
		if rule.IsBinary() || !inCycle[rule.Left] {
			return true
		}
	}
	return false
}

// dropUnitRules inlines the unit rules, starting from the symbols without unit
// rules of their own. The skipped symbols are kept in Path so the parsing tree
// can show them again
func (g *Grammar) dropUnitRules() {
	for {
		graph := g.unitGraph()
		if len(graph.Vertices) == 0 {
			return
		}

		reversed := graph.Transpose()
		chain := reversed.DFS(reversed.TopologicalSort()[0], map[Vertex]bool{})
		if len(chain) < 2 || !graph.HasArc(chain[1], chain[0]) {
			// Only possible with a unit cycle left behind
			g.logger.Warn("unit rules left in grammar", zap.Int("rules", len(graph.Arcs)))
			return
		}

		left, right := Symbol(chain[1]), Symbol(chain[0])
		g.logger.Debug("drop unit rule",
			zap.String("left", string(left)),
			zap.String("right", string(right)))
		g.inlineUnitRule(left, right)
	}
}

// inlineUnitRule replaces left -> right by left -> X for every rule right -> X
func (g *Grammar) inlineUnitRule(left, right Symbol) {
	idx := g.index()
	isTarget := func(r *Rule) bool {
		return r.Left == left && r.IsUnary() && r.Right[0] == right
	}

	weight := 0.0
	for _, rule := range idx.byLeft[left] {
		if isTarget(rule) {
			weight += rule.Weight
		}
	}
	for _, rule := range idx.byLeft[right] {
		g.Rules = append(g.Rules, &Rule{
			Left:   left,
			Right:  rule.Right,
			Weight: rule.Weight * weight,
			Path:   append([]Symbol{right}, rule.Path...),
		})
	}

	// right goes away too once nothing else refers to it
	orphan := right != g.Start
	for _, rule := range idx.byRight[right] {
		if !isTarget(rule) {
			orphan = false
			break
		}
	}
	g.keepRules(func(r *Rule) bool {
		return !isTarget(r) && !(orphan && r.Left == right)
	})
}
