package pcfg

import (
	"fmt"
	"strings"
)

// Node represents a single node in parsing tree. Interior nodes are labelled
// with a non-terminal symbol, leaves with a token of the sentence
type Node struct {
	// Symbol or token in current node
	Label string `json:"label"`

	// Children nodes
	Children []*Node `json:"children,omitempty"`
}

// Tree represents the parsing tree
type Tree struct {
	*Node

	// Log probability of the derivation
	LogProb float64 `json:"-"`
}

// IsLeaf returns true when the node holds a token
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Leaves returns the tokens under the node from left to right
func (n *Node) Leaves() []string {
	leaves := []string{}
	n.Walk(func(node *Node) bool {
		if node.IsLeaf() {
			leaves = append(leaves, node.Label)
		}
		return true
	})
	return leaves
}

// Walk visits the node and its descendants in pre-order. The children of a
// node are skipped when fn returns false
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Text returns the tokens under the node joined by a space
func (n *Node) Text() string {
	return strings.Join(n.Leaves(), " ")
}

// Convert the node to string
func (n *Node) String() string {
	return n.repr(0)
}

// repr get the string representation of the node recursively
func (n *Node) repr(level int) string {
	// Don't wrap with parentheses when it's a leaf node
	prefix := strings.Repeat(" ", level*2)
	if level != 0 {
		prefix = "\n" + prefix
	}

	if n.IsLeaf() {
		return prefix + n.Label
	}

	// Pre-terminals stay on one line: (N holmes)
	if len(n.Children) == 1 && n.Children[0].IsLeaf() {
		return fmt.Sprintf("%s(%s %s)", prefix, n.Label, n.Children[0].Label)
	}

	childrenReprs := []string{}
	for _, child := range n.Children {
		childrenReprs = append(childrenReprs, child.repr(level+1))
	}
	return fmt.Sprintf(
		"%s(%s%s)",
		prefix,
		n.Label,
		strings.Join(childrenReprs, ""))
}

// Bracketed returns the tree on a single line, like (S (NP (N holmes)) (VP (V sat)))
func (n *Node) Bracketed() string {
	if n.IsLeaf() {
		return n.Label
	}
	parts := []string{n.Label}
	for _, child := range n.Children {
		parts = append(parts, child.Bracketed())
	}
	return "(" + strings.Join(parts, " ") + ")"
}
