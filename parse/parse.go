// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package parse implements the optimal-parse rescorer (spec.md §4.D), the
// heart of the selection engine: Wagner's 1973 dynamic program for the
// minimum-cost non-overlapping abbreviated encoding of a string under a
// fixed candidate set. Its from-the-end DP shape is grounded on
// other_examples/Consensys-compress__optimal.go's CompressOptimal, which
// runs the same kind of backward cost/choice walk over a byte stream.
package parse

import (
	"github.com/ifzabbrev/zabbrev/alphabet"
	"github.com/ifzabbrev/zabbrev/corpus"
	"github.com/ifzabbrev/zabbrev/pattern"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "parse: " + string(e) }

// RoutinePadUnit returns the routine-padding unit for a z-machine version
// (spec.md §4.D step 6): 2 for z1–3, 4 for z4–7, 8 for z8.
func RoutinePadUnit(version int) int {
	switch {
	case version <= 3:
		return 2
	case version <= 7:
		return 4
	default:
		return 8
	}
}

// Result is the output of a single Rescore call: the total naive savings of
// S and the total corpus byte count after rounding. Both are always filled
// in; with report-bytes off, TotalBytes leaves out strings that belong to a
// routine, and with it on, it includes them with routine padding.
type Result struct {
	ReportBytes  bool
	NaiveSavings int
	TotalBytes   int
}

// Rescorer holds the corpus and alphabet model a selection run rescoring
// against. It carries no other state: spec.md §9 "No global state in the
// core" — z-version, forceR3 and the candidate set are parameters to each
// Rescore call, not fields mutated between calls.
type Rescorer struct {
	Corpus *corpus.Corpus
	Model  *alphabet.Model
}

// New returns a Rescorer over cor using model for per-character cost.
func New(cor *corpus.Corpus, model *alphabet.Model) *Rescorer {
	return &Rescorer{Corpus: cor, Model: model}
}

// Rescore runs the optimal parse over every string in the corpus against
// candidate set s (spec.md §4.D). version and forceR3 select the rounding
// unit (spec.md §3); reportBytes adds routine strings and routine padding
// to Result.TotalBytes.
func (r *Rescorer) Rescore(s []*pattern.Pattern, version int, forceR3, reportBytes bool) Result {
	r.refreshOccurrences(s)

	for _, p := range s {
		p.Freq = 0
	}

	possible := r.buildPossibleTable(s)

	var totalBytes int
	routineTotals := make(map[int]int)

	for si, str := range r.Corpus.Strings {
		r.rescoreString(str, s, possible[si])

		R := corpus.RoundingUnit(str, version, forceR3)
		str.Rounding = (R - str.LastCost%R + R) % R
		str.TotalBytes = 2 * (str.LastCost + str.Rounding) / 3

		if str.RoutineID != corpus.NoRoutine {
			routineTotals[str.RoutineID] += str.TotalBytes
		} else {
			totalBytes += str.TotalBytes
		}
	}

	if reportBytes {
		padUnit := RoutinePadUnit(version)
		for id, size := range r.Corpus.RoutineSizes {
			total := size + routineTotals[id]
			totalBytes += padToMultiple(total, padUnit)
		}
		// A routine id referenced only by strings, with no externally
		// supplied code size, still needs its own padding.
		for id, strBytes := range routineTotals {
			if _, ok := r.Corpus.RoutineSizes[id]; !ok {
				totalBytes += padToMultiple(strBytes, padUnit)
			}
		}
	}

	naiveSavings := 0
	for _, p := range s {
		naiveSavings += pattern.NaiveScore(p.Cost, p.Freq)
	}

	return Result{ReportBytes: reportBytes, NaiveSavings: naiveSavings, TotalBytes: totalBytes}
}

func padToMultiple(n, unit int) int {
	if n%unit == 0 {
		return n
	}
	return n + (unit - n%unit)
}

// refreshOccurrences recomputes occurrence lists for any pattern in s that
// lacks them or whose key changed since the last rescore (spec.md §4.D
// step 1).
func (r *Rescorer) refreshOccurrences(s []*pattern.Pattern) {
	for _, p := range s {
		if !p.OccurrencesValid() {
			p.ComputeOccurrences(r.Corpus)
		}
	}
}

// buildPossibleTable builds, per string, a dense array of candidate indices
// with a left-anchored occurrence at that rune index (spec.md §4.D:
// "Indexing possible[i] per string is a dense array of lists rebuilt per
// rescore"). Index values are indices into s, so the inner DP loop never
// dereferences a second layer of pointers.
func (r *Rescorer) buildPossibleTable(s []*pattern.Pattern) [][][]int {
	possible := make([][][]int, len(r.Corpus.Strings))
	for si, str := range r.Corpus.Strings {
		possible[si] = make([][]int, len(str.Runes)+1)
	}
	for idx, p := range s {
		for si, offsets := range p.Occurrences {
			if si >= len(possible) {
				continue
			}
			for _, off := range offsets {
				possible[si][off] = append(possible[si][off], idx)
			}
		}
	}
	return possible
}

// rescoreString runs the backward DP of spec.md §4.D over a single string,
// using its pre-allocated, never-reallocated f/choice scratch arrays
// (str.MinCost, str.Choice).
func (r *Rescorer) rescoreString(str *corpus.StringRecord, s []*pattern.Pattern, possible [][]int) {
	f := str.MinCost
	choice := str.Choice
	n := len(str.Runes)

	f[n] = 0
	for i := n - 1; i >= 0; i-- {
		f[i] = f[i+1] + r.Model.RuneCost(str.Runes[i])
		choice[i] = -1
		bestCost := 0 // cost of s[choice[i]]; meaningless while choice[i] == -1

		for _, idx := range possible[i] {
			p := s[idx]
			keyLen := len([]rune(p.Key))
			if i+keyLen > n {
				continue // defensive: a stale occurrence past the current text
			}
			c := 2 + f[i+keyLen]
			switch {
			case c < f[i]:
				f[i] = c
				choice[i] = idx
				bestCost = p.Cost
			case c == f[i] && choice[i] != -1 && p.Cost >= bestCost:
				// Tie-break only ever prefers one candidate over another
				// (spec.md §4.D); a tie against the plain-literal baseline
				// leaves choice[i] at -1; the literal encoding wins.
				choice[i] = idx
				bestCost = p.Cost
			}
		}
	}

	// Walk left to right applying the chosen non-overlapping abbreviations,
	// counting each pattern's actual usage (spec.md §4.D step 4).
	for i := 0; i < n; {
		if choice[i] == -1 {
			i++
			continue
		}
		p := s[choice[i]]
		p.Freq++
		i += len([]rune(p.Key))
	}

	str.LastCost = f[0]
}
