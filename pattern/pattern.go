// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package pattern enumerates candidate abbreviations from a corpus's
// generalized suffix array and LCP array (spec.md §4.C), and separates out
// the "long-pattern" refactoring-hint list.
package pattern

import (
	"strings"

	"github.com/ifzabbrev/zabbrev/alphabet"
	"github.com/ifzabbrev/zabbrev/corpus"
	"github.com/ifzabbrev/zabbrev/gsuffix"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "pattern: " + string(e) }

// LongPatternCutoff is the length above which a candidate is routed to the
// long-pattern heap instead of the main dictionary (spec.md §4.C).
const LongPatternCutoff = 20

// Pattern is a candidate abbreviation (spec.md §3).
type Pattern struct {
	Key     string
	Cost    int
	Freq    int // naive frequency at extraction time; rewritten by parse.Rescore
	Savings int // naive_score, or the current savings once selected

	// Occurrences[i] holds the left-anchored rune offsets of Key within
	// corpus string i, lazily computed and invalidated whenever Key
	// mutates (spec.md §9 "Ownership of occurrence lists").
	Occurrences      [][]int
	occurrencesValid bool

	// heapIndex is maintained by this package's long-pattern heap;
	// patterns never touch it themselves.
	heapIndex int
}

// InvalidateOccurrences marks the pattern's occurrence lists stale. Called
// whenever refine mutates Key.
func (p *Pattern) InvalidateOccurrences() {
	p.Occurrences = nil
	p.occurrencesValid = false
}

// OccurrencesValid reports whether Occurrences reflects the current Key.
func (p *Pattern) OccurrencesValid() bool { return p.occurrencesValid }

// SetOccurrences installs freshly computed occurrence lists and marks them
// valid.
func (p *Pattern) SetOccurrences(occ [][]int) {
	p.Occurrences = occ
	p.occurrencesValid = true
}

// ComputeOccurrences rebuilds the pattern's left-anchored, overlap-aware
// occurrence lists against cor (spec.md §4.D step 1). This is a plain
// per-string scan rather than a second suffix-array query: it runs once per
// pattern per rescore only when the key is new or has mutated, and the
// pattern set is always far smaller than the corpus.
func (p *Pattern) ComputeOccurrences(cor *corpus.Corpus) {
	key := []rune(p.Key)
	occ := make([][]int, len(cor.Strings))
	for si, s := range cor.Strings {
		text := s.Runes
		var offsets []int
		for i := 0; i+len(key) <= len(text); i++ {
			if runesEqual(text[i:i+len(key)], key) {
				offsets = append(offsets, i)
			}
		}
		occ[si] = offsets
	}
	p.SetOccurrences(occ)
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// NaiveScore computes spec.md §3's naive_score: the savings of replacing
// every occurrence of a cost/freq pattern with a 2-z-char reference, minus
// the once-rounded storage of the abbreviation itself.
func NaiveScore(cost, freq int) int {
	return freq*(cost-2) - 3*ceilDiv(cost, 3)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// containsSeparatorOrAt reports whether s contains the generalized suffix
// array separator or '@' (spec.md §4.C: candidates containing either are
// rejected).
func containsSeparatorOrAt(s string) bool {
	return strings.ContainsRune(s, rune(gsuffix.Separator)) || strings.ContainsRune(s, '@')
}

// Extraction is the result of Extract: the admitted candidate dictionary
// and the long-pattern refactoring-hint list.
type Extraction struct {
	Candidates map[string]*Pattern
	LongHints  []*Pattern // deduplicated, order of acceptance from the long-pattern heap
}

// Extract enumerates every repeated substring of length ≥ 2 in the corpus
// (spec.md §4.C). It requires arr to have been built over cor's generalized
// concatenation (corpus.Concat).
func Extract(cor *corpus.Corpus, arr *gsuffix.Array, model *alphabet.Model) (*Extraction, error) {
	candidates := make(map[string]*Pattern)
	longHeap := newLongPatternHeap()

	n := len(arr.SA)
	for i := 0; i < n-1; i++ {
		if arr.Data[arr.SA[i]] == gsuffix.Separator {
			continue // spec.md §4.C: "skipping suffixes beginning with the separator"
		}
		start := arr.LCP[i]
		if start < 2 {
			start = 2
		}
		limit := arr.LCP[i+1]
		for j := start; j <= limit; j++ {
			if arr.SA[i]+j > len(arr.Data) {
				break
			}
			text := cor.TextAt(arr.SA[i], j)
			if containsSeparatorOrAt(text) {
				continue
			}
			if _, seen := candidates[text]; seen {
				continue
			}
			cost := model.ZstringCost(text)
			freq := arr.Frequency(i, j)
			score := NaiveScore(cost, freq)
			if score <= 0 {
				continue
			}
			p := &Pattern{Key: text, Cost: cost, Freq: freq, Savings: score}
			if len([]rune(text)) > LongPatternCutoff {
				longHeap.push(p)
				continue
			}
			candidates[text] = p
		}
	}

	return &Extraction{
		Candidates: candidates,
		LongHints:  drainLongHints(longHeap),
	}, nil
}
