package pcfg

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(label string) *Node {
	return &Node{Label: label}
}

func node(label string, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

// (S (NP (N holmes)) (VP (V sat)))
func holmesSat() *Node {
	return node("S",
		node("NP", node("N", leaf("holmes"))),
		node("VP", node("V", leaf("sat"))))
}

func TestNodeLeaves(t *testing.T) {
	root := holmesSat()
	assert.Equal(t, []string{"holmes", "sat"}, root.Leaves())
	assert.Equal(t, "holmes sat", root.Text())
	assert.True(t, root.Children[0].Children[0].Children[0].IsLeaf())
	assert.False(t, root.IsLeaf())
}

func TestNodeString(t *testing.T) {
	want := "(S\n  (NP\n    (N holmes))\n  (VP\n    (V sat)))"
	if diff := cmp.Diff(want, holmesSat().String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "(S (NP (N holmes)) (VP (V sat)))", holmesSat().Bracketed())
	assert.Equal(t, "holmes", leaf("holmes").Bracketed())
}

func TestNodeWalk(t *testing.T) {
	labels := []string{}
	holmesSat().Walk(func(n *Node) bool {
		labels = append(labels, n.Label)
		return n.Label != "NP"
	})
	assert.Equal(t, []string{"S", "NP", "VP", "V", "sat"}, labels)
}

func TestTreeJSON(t *testing.T) {
	tree := &Tree{Node: node("NP", node("N", leaf("holmes"))), LogProb: -1.5}
	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"label":"NP","children":[{"label":"N","children":[{"label":"holmes"}]}]}`,
		string(data))
}
