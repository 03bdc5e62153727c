// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"sort"
)

// FrequencyTable maps each distinct symbol of an input to its number of occurrences.
type FrequencyTable map[Symbol]int

// CountFrequencies counts the occurrences of each symbol.  An empty input yields an empty table.
func CountFrequencies(symbols []Symbol) FrequencyTable {
	freq := make(FrequencyTable)
	for _, s := range symbols {
		freq[s]++
	}
	return freq
}

// Total returns the sum of all frequencies, which is the length of the counted input.
func (freq FrequencyTable) Total() int {
	total := 0
	for _, n := range freq {
		total += n
	}
	return total
}

// SymbolCount pairs a symbol with its frequency.
type SymbolCount struct {
	Symbol Symbol
	Count  int
}

// Sorted returns the entries by descending frequency, ties broken by ascending symbol.
func (freq FrequencyTable) Sorted() []SymbolCount {
	entries := make([]SymbolCount, 0, len(freq))
	for s, n := range freq {
		entries = append(entries, SymbolCount{s, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Symbol < entries[j].Symbol
	})
	return entries
}

// symbolsAscending returns the keys of freq in ascending order.
func (freq FrequencyTable) symbolsAscending() []Symbol {
	symbols := make([]Symbol, 0, len(freq))
	for s := range freq {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}
