// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package selector implements the heap-driven greedy selection loop
// (spec.md §4.E): a max-heap keyed on current savings, with a
// recompute-and-reinsert step whenever a freshly popped candidate turns out
// to be worse, after an optimal-parse rescore, than what remains on the
// heap. The shape of the loop — pop, tentatively commit, rescore, possibly
// undo — is grounded on the same from-the-end cost/choice walk the parse
// package borrows from other_examples/Consensys-compress__optimal.go, here
// driven from the outside by container/heap instead of a DP table.
package selector

import (
	"container/heap"

	"github.com/ifzabbrev/zabbrev/alphabet"
	"github.com/ifzabbrev/zabbrev/corpus"
	"github.com/ifzabbrev/zabbrev/parse"
	"github.com/ifzabbrev/zabbrev/pattern"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "selector: " + string(e) }

// DefaultN is the default number of abbreviations selected (spec.md §1, §4.E).
const DefaultN = 96

// throwBackOversample is the extra slack carried in best while the
// throw-back-low-scorers option is active (spec.md §4.E).
const throwBackOversample = 5

// Options configures a Select run.
type Options struct {
	N                   int // target cardinality; 0 means DefaultN
	Version             int // z-machine version, for rounding unit selection
	ForceR3             bool
	ThrowBackLowScorers bool // spec.md §6 "-b"
}

// Result is the outcome of Select: the chosen patterns, in the order the
// loop committed them (the final trim may move the last one into a removed
// pattern's slot; Best is not sorted by savings), plus whatever remains on
// the residual heap afterward (consumed by refine's F1
// replacement-from-residue pass).
type Result struct {
	Best     []*pattern.Pattern
	Residual *candidateHeap
}

// Select runs the Wagner-style greedy-with-reinsertion loop over candidates
// (spec.md §4.E). candidates is consumed; callers should not reuse the map.
func Select(cor *corpus.Corpus, model *alphabet.Model, candidates map[string]*pattern.Pattern, opts Options) Result {
	n := opts.N
	if n == 0 {
		n = DefaultN
	}
	oversample := 0
	if opts.ThrowBackLowScorers {
		oversample = throwBackOversample
	}
	target := n + oversample

	h := newCandidateHeap()
	for _, p := range candidates {
		h.push(p)
	}

	rescorer := parse.New(cor, model)
	var best []*pattern.Pattern
	prevSavings := 0

	for len(best) < target && h.Len() > 0 {
		p := h.pop()
		best = append(best, p)

		res := rescorer.Rescore(best, opts.Version, opts.ForceR3, false)
		currentSavings := res.NaiveSavings
		delta := currentSavings - prevSavings

		if h.Len() > 0 && delta < h.peek().Savings {
			// p is worse than what remains on the heap; undo the tentative
			// commit and give p another chance with its refreshed score.
			best = best[:len(best)-1]
			p.Savings = delta
			h.push(p)
			continue
		}

		prevSavings = currentSavings
		p.Savings = delta

		if opts.ThrowBackLowScorers {
			removed := removeLowScorers(&best, delta, h)
			if removed {
				res := rescorer.Rescore(best, opts.Version, opts.ForceR3, false)
				prevSavings = res.NaiveSavings
			}
		}
	}

	trimToTarget(&best, n, h)

	return Result{Best: best, Residual: h}
}

// removeLowScorers moves every q in best with q.Savings < delta back onto
// h, compacting best in place. Reports whether anything was removed.
func removeLowScorers(best *[]*pattern.Pattern, delta int, h *candidateHeap) bool {
	kept := (*best)[:0]
	removed := false
	for _, q := range *best {
		if q.Savings < delta {
			h.push(q)
			removed = true
			continue
		}
		kept = append(kept, q)
	}
	*best = kept
	return removed
}

// trimToTarget moves the lowest-scoring excess of best back onto h until
// len(best) == n (spec.md §4.E "trim best back to N by moving the excess to
// the residual heap").
func trimToTarget(best *[]*pattern.Pattern, n int, h *candidateHeap) {
	for len(*best) > n {
		worst := 0
		for i, p := range *best {
			if p.Savings < (*best)[worst].Savings {
				worst = i
			}
		}
		h.push((*best)[worst])
		(*best)[worst] = (*best)[len(*best)-1]
		*best = (*best)[:len(*best)-1]
	}
}

// candidateHeap is a max-heap of patterns keyed on Savings (spec.md §4.E:
// "ties broken arbitrarily but stably"). Among equal keys the pop order
// follows the heap's internal layout, not insertion order, and the initial
// pushes follow Go map iteration order, so it can differ from run to run.
type candidateHeap []*pattern.Pattern

func newCandidateHeap() *candidateHeap {
	h := &candidateHeap{}
	heap.Init(h)
	return h
}

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return h[i].Savings > h[j].Savings }
func (h candidateHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}
func (h *candidateHeap) Push(x interface{}) {
	*h = append(*h, x.(*pattern.Pattern))
}
func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	p := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return p
}

func (h *candidateHeap) push(p *pattern.Pattern) { heap.Push(h, p) }
func (h *candidateHeap) pop() *pattern.Pattern   { return heap.Pop(h).(*pattern.Pattern) }
func (h *candidateHeap) peek() *pattern.Pattern  { return (*h)[0] }

// PopPattern and PushPattern let refine's F1 replacement-from-residue pass
// draw from and return to the residual heap without this package exporting
// candidateHeap's type name (callers hold it only via Result.Residual).
func (h *candidateHeap) PopPattern() *pattern.Pattern   { return h.pop() }
func (h *candidateHeap) PushPattern(p *pattern.Pattern) { h.push(p) }
