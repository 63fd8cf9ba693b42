// Package grammars holds the grammars shipped with sentparse.
package grammars

import (
	_ "embed"
)

// English is the default grammar, covering the sentences of the Sherlock
// Holmes exercise
//
//go:embed english.cfg
var English string
