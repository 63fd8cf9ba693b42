package pcfg

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
)

// cykNode is the node used in CYK table
type cykNode struct {
	symbol int
	rule   *CNFRuleBase
	logp   float64

	left  *cykNode
	right *cykNode
	next  *cykNode
}

// nodePool is the pool that allocates and stores cykNode
const poolBatchSize = 4096

type nodePool struct {
	nodes  [][]cykNode
	row    int
	column int
}

// newNodePool create a new instance of nodePool
func newNodePool() *nodePool {
	return &nodePool{
		nodes: [][]cykNode{make([]cykNode, poolBatchSize)},
	}
}

// Get allocates a new cykNode from pool
func (pool *nodePool) Get() *cykNode {
	node := &pool.nodes[pool.row][pool.column]

	pool.column++
	if pool.column >= poolBatchSize {
		pool.nodes = append(pool.nodes, make([]cykNode, poolBatchSize))
		pool.row++
		pool.column = 0
	}
	return node
}

// best returns the node in cell that should hold a derivation of symbol with
// probability logp. Each cell keeps only the most probable derivation of a
// symbol, the first one wins a tie. It returns nil when the existing
// derivation is at least as good
func (pool *nodePool) best(cell **cykNode, symbol int, logp float64) *cykNode {
	for node := *cell; node != nil; node = node.next {
		if node.symbol != symbol {
			continue
		}
		if node.logp >= logp {
			return nil
		}
		node.logp = logp
		return node
	}

	// Insert into the tail of linklist, keep the chart order stable
	node := pool.Get()
	node.symbol = symbol
	node.logp = logp
	if *cell == nil {
		*cell = node
		return node
	}
	last := *cell
	for last.next != nil {
		last = last.next
	}
	last.next = node
	return node
}

func constructParsingTree(grammar *CNFGrammar, node *cykNode, query []string) []*Node {
	// When it's a leaf node (terminal node, row = 0)
	if node.symbol < 0 {
		return []*Node{{Label: query[-node.symbol-1]}}
	}

	// Get nodes of its children
	treeNodes := constructParsingTree(grammar, node.left, query)

	// For terminal rules node.right is nil
	if node.right != nil {
		treeNodes = append(treeNodes, constructParsingTree(grammar, node.right, query)...)
	}

	// Handle the path from target to source
	// We are constructing the tree bottom-up, the path should be process
	// in reversed order
	for i := len(node.rule.Path) - 1; i >= 0; i-- {
		symbol := node.rule.Path[i]
		if grammar.Exports[symbol] {
			treeNodes = []*Node{{
				Label:    grammar.Symbols[symbol],
				Children: treeNodes,
			}}
		}
	}

	// Handle the node itself
	if grammar.Exports[node.symbol] || node.symbol == grammar.Start {
		treeNodes = []*Node{{
			Label:    grammar.Symbols[node.symbol],
			Children: treeNodes,
		}}
	}

	return treeNodes
}

// rowString formats a row in CYK table for debugging
func rowString(grammar *CNFGrammar, row []*cykNode) string {
	cells := []string{}
	for i, node := range row {
		nodeReprs := []string{}
		for node != nil {
			nodeReprs = append(nodeReprs, grammar.Symbols[node.symbol])
			node = node.next
		}
		cells = append(cells, fmt.Sprintf("[%d: %s]", i, strings.Join(nodeReprs, " ")))
	}
	return strings.Join(cells, " ")
}

// CYK parses query using CKY algorithm. When query matches grammar, returns the
// parsing tree with the highest probability (Viterbi). Otherwise returns nil
func CYK(grammar *CNFGrammar, query []string, logger *zap.Logger) *Tree {
	if len(query) == 0 || grammar.Start < 0 {
		return nil
	}
	debug := logger.Core().Enabled(zap.DebugLevel)

	table := [][]*cykNode{}
	pool := newNodePool()

	// Row 0: dummy node for terminal symbols
	table = append(table, make([]*cykNode, len(query)))
	for i := range query {
		// For leaf nodes, symbol stores the index in query with negative number
		table[0][i] = &cykNode{symbol: -i - 1}
	}

	// Row 1: apply all terminal rules
	table = append(table, make([]*cykNode, len(query)))
	for i, tok := range query {
		for _, rule := range grammar.TerminalRules[tok] {
			logp := math.Log(rule.Probability)
			node := pool.best(&table[1][i], rule.Source, logp)
			if node != nil {
				node.rule = &rule.CNFRuleBase
				node.left = table[0][i]
			}
		}
	}
	if debug {
		logger.Debug("cyk row", zap.Int("length", 1), zap.String("cells", rowString(grammar, table[1])))
	}

	// Row 2 to row n: apply non-terminal rules
	// Length of span
	for length := 2; length <= len(query); length++ {
		columns := len(query) - length + 1
		table = append(table, make([]*cykNode, columns))
		// Start of span
		for start := 0; start < columns; start++ {
			// Partition of span
			for partition := 1; partition < length; partition++ {
				for left := table[partition][start]; left != nil; left = left.next {
					rightRules, ok := grammar.Rules[left.symbol]
					if !ok {
						continue
					}
					right := table[length-partition][start+partition]
					for ; right != nil; right = right.next {
						rules, ok := rightRules[right.symbol]
						if !ok {
							continue
						}
						// Ok, there are some rules A -> BC that B == left and
						// C == right
						for _, rule := range rules {
							logp := math.Log(rule.Probability) + left.logp + right.logp
							node := pool.best(&table[length][start], rule.Source, logp)
							if node != nil {
								node.rule = &rule.CNFRuleBase
								node.left = left
								node.right = right
							}
						}
					}
				}
			}
		}
		if debug {
			logger.Debug("cyk row", zap.Int("length", length), zap.String("cells", rowString(grammar, table[length])))
		}
	}

	// Find the root node and construct the parsing tree
	var root *cykNode
	for node := table[len(query)][0]; node != nil; node = node.next {
		if node.symbol == grammar.Start {
			root = node
			break
		}
	}
	if root == nil {
		// root == nil means query didn't match grammar
		return nil
	}

	nodes := constructParsingTree(grammar, root, query)
	return &Tree{
		Node:    nodes[0],
		LogProb: root.logp,
	}
}
