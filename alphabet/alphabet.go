// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package alphabet implements the Z-machine z-character cost model: the
// three 26-symbol alphabets (A0/A1/A2) a Z-machine interpreter uses to
// decode text, and the per-character cost of encoding a string under them.
package alphabet

import "github.com/bits-and-blooms/bitset"

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "alphabet: " + string(e) }

// Sentinel runes substituted for raw bytes on ingestion (spec.md §3). They
// are free of syntactic ambiguity in the corpus and are restored on output.
const (
	SpaceSentinel   rune = '·'
	QuoteSentinel   rune = '~'
	NewlineSentinel rune = '^'
)

// Per-character cost tiers in z-characters, per spec.md §4.A.
const (
	CostA0     = 1 // default lowercase alphabet, and space
	CostA1A2   = 2 // default uppercase/punctuation alphabet, and newline/quote
	CostEscape = 4 // 10-bit literal escape: shift + 2 literal z-chars + return
)

// DefaultA0, DefaultA1, DefaultA2 are the Z-machine standard alphabet
// tables (spec.md GLOSSARY; layout grounded on the standard ZSCII
// alphabet set: 26 lowercase, 26 uppercase, and punctuation with 3 slots
// reserved for escape/newline/quote).
var (
	DefaultA0 = [26]rune{'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm',
		'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z'}
	DefaultA1 = [26]rune{'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M',
		'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z'}
	// Index 0 is the 10-bit-escape marker and index 1 is newline; neither
	// is a printable character. '"' (quote) occupies an ordinary slot but,
	// like the first two, may not be reassigned when building a custom
	// alphabet (spec.md §4.A: "three slots are reserved for an escape,
	// newline, and quote").
	DefaultA2 = [26]rune{0, '\n', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
		'.', ',', '!', '?', '_', '#', '\'', '"', '/', '\\', '-', ':', '(', ')'}
)

// Model classifies runes into A0/A1/A2/escape tiers and reports z-char
// cost. It holds a pair of set-membership bitsets (spec.md §4.A) rebuilt
// whenever the alphabets change, so ZstringCost never re-scans the
// alphabet tables per character.
type Model struct {
	a0, a1, a2 [26]rune

	// tierA0 is {A0 ∪ space}; tierA1A2 is {A1 ∪ A2 ∪ quote ∪ newline}.
	// Indexed by rune value when it fits in a byte; runes above 0xff are
	// never members (they always cost CostEscape).
	tierA0   *bitset.BitSet
	tierA1A2 *bitset.BitSet
}

// NewDefaultModel returns a Model using the standard Z-machine alphabets.
func NewDefaultModel() *Model {
	m := &Model{a0: DefaultA0, a1: DefaultA1, a2: DefaultA2}
	m.Rebuild()
	return m
}

// NewModel returns a Model using the given alphabets.
func NewModel(a0, a1, a2 [26]rune) *Model {
	m := &Model{a0: a0, a1: a1, a2: a2}
	m.Rebuild()
	return m
}

// A0 returns the current A0 table.
func (m *Model) A0() [26]rune { return m.a0 }

// A1 returns the current A1 table.
func (m *Model) A1() [26]rune { return m.a1 }

// A2 returns the current A2 table.
func (m *Model) A2() [26]rune { return m.a2 }

// SetAlphabets replaces the alphabet tables and rebuilds the membership
// bitsets.
func (m *Model) SetAlphabets(a0, a1, a2 [26]rune) {
	m.a0, m.a1, m.a2 = a0, a1, a2
	m.Rebuild()
}

// Rebuild recomputes the membership bitsets from the current alphabet
// tables. Must be called whenever a0/a1/a2 change.
func (m *Model) Rebuild() {
	tierA0 := bitset.New(256)
	tierA1A2 := bitset.New(256)

	tierA0.Set(uint(SpaceSentinel) & 0xff)
	for _, r := range m.a0 {
		if r != 0 && r < 256 {
			tierA0.Set(uint(r))
		}
	}

	tierA1A2.Set(uint(QuoteSentinel) & 0xff)
	tierA1A2.Set(uint(NewlineSentinel) & 0xff)
	for _, r := range m.a1 {
		if r != 0 && r < 256 {
			tierA1A2.Set(uint(r))
		}
	}
	for _, r := range m.a2 {
		if r != 0 && r < 256 {
			tierA1A2.Set(uint(r))
		}
	}

	m.tierA0 = tierA0
	m.tierA1A2 = tierA1A2
}

// RuneCost returns the z-character cost of a single rune.
func (m *Model) RuneCost(r rune) int {
	if r >= 256 {
		return CostEscape
	}
	switch {
	case m.tierA0.Test(uint(r)):
		return CostA0
	case m.tierA1A2.Test(uint(r)):
		return CostA1A2
	default:
		return CostEscape
	}
}

// ZstringCost returns the plain sum of per-rune costs of s (spec.md §4.A,
// "ZstringCost(s) is the plain sum").
func (m *Model) ZstringCost(s string) int {
	cost := 0
	for _, r := range s {
		cost += m.RuneCost(r)
	}
	return cost
}

// CostAdditive reports whether ZstringCost(a+b) == ZstringCost(a) +
// ZstringCost(b), the property-based invariant of spec.md §8 item 1. It is
// always true by construction (RuneCost is a pure per-rune function summed
// left to right) and is exposed so tests can assert it directly rather than
// trust the implementation.
func (m *Model) CostAdditive(a, b string) bool {
	return m.ZstringCost(a+b) == m.ZstringCost(a)+m.ZstringCost(b)
}
