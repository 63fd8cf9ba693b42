package pcfg

import (
	"sort"
)

// sortedSymbols returns the keys of a symbol set in lexical order
func sortedSymbols(set map[Symbol]bool) []Symbol {
	symbols := make([]Symbol, 0, len(set))
	for s := range set {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}
