// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package customalpha builds a frequency-ranked custom A0/A1/A2 alphabet
// for z5+ targets (spec.md §4.G), an optional alternative to
// alphabet.NewDefaultModel. Its three-array layout is grounded on
// other_examples/zombiezen-gonorth__zscii.go's AlphabetSet, repurposed here
// to hold a frequency-built pool instead of the fixed standard one.
package customalpha

import (
	"sort"

	"github.com/ifzabbrev/zabbrev/alphabet"
	"github.com/ifzabbrev/zabbrev/corpus"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "customalpha: " + string(e) }

// PoolSize is the number of characters, ranked by frequency, eligible for a
// custom alphabet (spec.md §4.G: "top 75 characters by frequency").
const PoolSize = 75

// escapeByte is the z-character escape code; its rune never enters the
// frequency histogram (spec.md §4.G).
const escapeByte = 27

// Histogram accumulates per-character occurrence counts over a corpus,
// ignoring the three sentinel runes and the escape byte.
type Histogram struct {
	counts map[rune]int
}

// NewHistogram returns an empty Histogram.
func NewHistogram() *Histogram {
	return &Histogram{counts: make(map[rune]int)}
}

// Add tallies every rune of text, skipping sentinels and the escape byte.
func (h *Histogram) Add(text string) {
	for _, r := range text {
		if isIgnored(r) {
			continue
		}
		h.counts[r]++
	}
}

// AddCorpus tallies every string in cor.
func (h *Histogram) AddCorpus(cor *corpus.Corpus) {
	for _, s := range cor.Strings {
		h.Add(s.Text)
	}
}

func isIgnored(r rune) bool {
	switch r {
	case alphabet.SpaceSentinel, alphabet.QuoteSentinel, alphabet.NewlineSentinel, escapeByte:
		return true
	}
	return false
}

// TopPool returns the PoolSize most frequent characters, most frequent
// first, ties broken by rune value for determinism.
func (h *Histogram) TopPool() []rune {
	type entry struct {
		r rune
		n int
	}
	entries := make([]entry, 0, len(h.counts))
	for r, n := range h.counts {
		entries = append(entries, entry{r, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].n != entries[j].n {
			return entries[i].n > entries[j].n
		}
		return entries[i].r < entries[j].r
	})
	if len(entries) > PoolSize {
		entries = entries[:PoolSize]
	}
	pool := make([]rune, len(entries))
	for i, e := range entries {
		pool[i] = e.r
	}
	return pool
}

// Build constructs a custom alphabet.Model from pool (spec.md §4.G): the
// first 26 characters become A0; of the remaining 49, the 26 that also
// occupy a position in the default A1 string keep A1, the 23 that occupy a
// position in the default A2 string keep A2 — ties resolved by first-fit
// over the default layout — and any still-unplaced characters fill
// remaining slots in pool order. The three reserved A2 slots (0, 1 and 19)
// are never filled and stay 0.
func Build(pool []rune) *alphabet.Model {
	var a0, a1, a2 [26]rune

	n0 := len(pool)
	if n0 > 26 {
		n0 = 26
	}
	copy(a0[:], pool[:n0])

	rest := pool[n0:]
	defaultA1 := alphabet.DefaultA1
	defaultA2 := alphabet.DefaultA2

	inDefault := func(set [26]rune, r rune) int {
		for i, d := range set {
			if d == r {
				return i
			}
		}
		return -1
	}

	var leftover []rune
	a1Filled := map[int]bool{}
	a2Filled := map[int]bool{0: true, 1: true, 19: true} // reserved: escape, newline, quote

	for _, r := range rest {
		if i := inDefault(defaultA1, r); i >= 0 && !a1Filled[i] {
			a1[i] = r
			a1Filled[i] = true
			continue
		}
		if i := inDefault(defaultA2, r); i >= 0 && !a2Filled[i] {
			a2[i] = r
			a2Filled[i] = true
			continue
		}
		leftover = append(leftover, r)
	}

	fillGaps(&a1, a1Filled, &leftover)
	fillGaps(&a2, a2Filled, &leftover)

	return alphabet.NewModel(a0, a1, a2)
}

// fillGaps places characters from leftover into the unfilled slots of set,
// in order, until either runs out.
func fillGaps(set *[26]rune, filled map[int]bool, leftover *[]rune) {
	for i := range set {
		if filled[i] {
			continue
		}
		if len(*leftover) == 0 {
			return
		}
		set[i] = (*leftover)[0]
		*leftover = (*leftover)[1:]
		filled[i] = true
	}
}

// CostDelta reports the corpus-wide cost difference between the default and
// a custom alphabet model over the given texts: positive means the custom
// alphabet saves bytes.
func CostDelta(texts []string, def, custom *alphabet.Model) int {
	var delta int
	for _, t := range texts {
		delta += def.ZstringCost(t) - custom.ZstringCost(t)
	}
	return delta
}
