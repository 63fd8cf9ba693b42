package pcfg

import (
	"testing"
)

func TestParseRule(t *testing.T) {
	// TestCase-1
	r, err := ParseRule("VP -> V NP")
	if err != nil {
		t.Fatal(err)
	}
	if len(r) != 1 {
		t.Fatal("len(r) == 1")
	}

	expected := "VP -> V NP [1.000]"
	if r[0].String() != expected {
		t.Fatalf("'%s' != '%s'", r[0].String(), expected)
	}

	// TestCase-2
	r, err = ParseRule("VP -> V 'down'|V NP [0.3]")
	if err != nil {
		t.Fatal(err)
	}
	if len(r) != 2 {
		t.Fatal("len(r) == 2")
	}

	expected = "VP -> V 'down' [1.000]"
	if r[0].String() != expected {
		t.Fatalf("'%s' != '%s'", r[0].String(), expected)
	}
	expected = "VP -> V NP [0.300]"
	if r[1].String() != expected {
		t.Fatalf("'%s' != '%s'", r[1].String(), expected)
	}

	// TestCase-3: double quoted terminal
	r, err = ParseRule(`Neg -> "n't" | 'not'`)
	if err != nil {
		t.Fatal(err)
	}
	if r[0].Right[0].Word() != "n't" || r[1].Right[0].Word() != "not" {
		t.Fatalf("unexpected words: %s, %s", r[0].Right[0], r[1].Right[0])
	}

	// TestCase-4: empty alternative is an epsilon rule
	r, err = ParseRule("AP -> Adj AP |")
	if err != nil {
		t.Fatal(err)
	}
	if len(r) != 2 || !r[1].IsEpsilon() || r[0].IsEpsilon() {
		t.Fatalf("epsilon rule expected, got %v", r)
	}

	// TestCase-5: failed cases
	failures := []string{
		"VP V NP",
		"'sat' -> V",
		"<x> -> V",
		"VP -> V 'down",
		"VP -> V ''",
		"VP -> V [abc]",
		"VP -> V [0]",
		"VP -> V [-1]",
		"VP -> V [0.5] NP",
		"VP -> V [0.5",
		"VP -> <x_VP_1>",
	}
	for _, ruleText := range failures {
		if _, err = ParseRule(ruleText); err == nil {
			t.Fatalf("err != nil expected for '%s'", ruleText)
		}
	}
}

func TestSymbol(t *testing.T) {
	cases := []struct {
		symbol   Symbol
		valid    bool
		terminal bool
		internal bool
		text     string
	}{
		{"NP", true, false, false, "NP"},
		{"NP-SBJ", true, false, false, "NP_SBJ"},
		{"'holmes'", true, true, false, "holmes"},
		{`"n't"`, true, true, false, "n_t"},
		{"<x_S_1>", true, false, true, "x_S_1"},
		{EpsilonSymbol, true, true, false, "nil"},
		{"''", false, true, false, ""},
		{"N P", false, false, false, "N_P"},
	}
	for _, c := range cases {
		if c.symbol.IsValid() != c.valid {
			t.Errorf("%s: IsValid() != %v", c.symbol, c.valid)
		}
		if !c.valid {
			continue
		}
		if c.symbol.IsTerminal() != c.terminal {
			t.Errorf("%s: IsTerminal() != %v", c.symbol, c.terminal)
		}
		if c.symbol.IsInternal() != c.internal {
			t.Errorf("%s: IsInternal() != %v", c.symbol, c.internal)
		}
		if c.symbol.Text() != c.text {
			t.Errorf("%s: Text() '%s' != '%s'", c.symbol, c.symbol.Text(), c.text)
		}
	}

	if TerminalSymbol("holmes") != "'holmes'" {
		t.Errorf("TerminalSymbol(holmes) = %s", TerminalSymbol("holmes"))
	}
	if TerminalSymbol("n't") != `"n't"` {
		t.Errorf("TerminalSymbol(n't) = %s", TerminalSymbol("n't"))
	}
}
