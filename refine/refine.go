// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package refine implements the rounding-aware refinement passes that run
// after selection (spec.md §4.F): F1 replacement-from-residue, which tries
// swapping a selected pattern for one left on the residual heap, and F2
// boundary adjustment, which trims or extends a pattern's edges to land it
// on a better rounding boundary. Both stages drive the same parse.Rescorer
// the selector uses, here with report-bytes on, so a "swap" or "trim" is
// only ever kept when it actually reduces the corpus's total byte count.
package refine

import (
	"strings"

	"github.com/ifzabbrev/zabbrev/alphabet"
	"github.com/ifzabbrev/zabbrev/corpus"
	"github.com/ifzabbrev/zabbrev/parse"
	"github.com/ifzabbrev/zabbrev/pattern"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "refine: " + string(e) }

// Level selects which refinement stages run (spec.md §4.F).
type Level int

const (
	// LevelNone runs no refinement.
	LevelNone Level = 0
	// LevelBoundary runs F2 boundary adjustment only.
	LevelBoundary Level = 1
	// LevelNormal runs F2 plus F1 in its cheaper, subset/superset-restricted form.
	LevelNormal Level = 2
	// LevelMaximum runs F2 plus F1 in its exhaustive, every-position form.
	LevelMaximum Level = 3
)

// Defaults for the F1 pass budgets (spec.md §4.F).
const (
	DefaultNumPasses     = 10000
	DefaultNumDeepPasses = 1000
	longPatternCutoff    = pattern.LongPatternCutoff
)

// residualHeap is the subset of selector's candidateHeap this package needs;
// selector.Result.Residual satisfies it without selector exporting its
// concrete heap type.
type residualHeap interface {
	Len() int
	PopPattern() *pattern.Pattern
	PushPattern(p *pattern.Pattern)
}

// Options configures a Refine run.
type Options struct {
	Level         Level
	Version       int
	ForceR3       bool
	NumPasses     int // defaults to DefaultNumPasses
	NumDeepPasses int // defaults to DefaultNumDeepPasses
}

// Refine mutates best in place across the levels named by opts.Level
// (spec.md §4.F): at levels ≥ 2 it runs F1 once, drawing up to
// opts.NumPasses replacement candidates from residual, then at levels ≥ 1
// it runs F2 over every selected pattern exactly twice. It returns the
// final total byte count.
func Refine(cor *corpus.Corpus, model *alphabet.Model, best []*pattern.Pattern, residual residualHeap, opts Options) int {
	rescorer := parse.New(cor, model)
	committed := newCommittedKeys(best)

	totalBytes := rescorer.Rescore(best, opts.Version, opts.ForceR3, true).TotalBytes

	if opts.Level >= LevelNormal {
		totalBytes = replaceFromResidue(rescorer, best, residual, committed, opts, totalBytes)
	}
	if opts.Level >= LevelBoundary {
		for iter := 0; iter < 2; iter++ {
			totalBytes = adjustBoundaries(rescorer, best, committed, opts, totalBytes)
		}
	}
	return totalBytes
}

// committedKeys tracks the keys currently present in best, backed by a
// patricia trie for O(key length) membership checks (spec.md §DOMAIN STACK).
type committedKeys struct {
	trie *patricia.Trie
}

func newCommittedKeys(best []*pattern.Pattern) *committedKeys {
	t := patricia.NewTrie()
	for _, p := range best {
		t.Insert(patricia.Prefix(p.Key), true)
	}
	return &committedKeys{trie: t}
}

func (c *committedKeys) has(key string) bool {
	return c.trie.Match(patricia.Prefix(key))
}

func (c *committedKeys) replace(oldKey, newKey string) {
	c.trie.Delete(patricia.Prefix(oldKey))
	c.trie.Insert(patricia.Prefix(newKey), true)
}

// replaceFromResidue is F1 (spec.md §4.F): swap a selected pattern for one
// popped off the residual heap when doing so reduces total bytes.
func replaceFromResidue(r *parse.Rescorer, best []*pattern.Pattern, residual residualHeap, committed *committedKeys, opts Options, bytesBefore int) int {
	maxLen := maxKeyLen(best)
	if maxLen > longPatternCutoff {
		maxLen = longPatternCutoff
	}
	maxLen += 2

	numPasses := opts.NumPasses
	if numPasses == 0 {
		numPasses = DefaultNumPasses
	}
	numDeepPasses := opts.NumDeepPasses
	if numDeepPasses == 0 {
		numDeepPasses = DefaultNumDeepPasses
	}

	var rejected []*pattern.Pattern
	for pass := 0; pass < numPasses && residual.Len() > 0; pass++ {
		q := residual.PopPattern()
		if len([]rune(q.Key)) > maxLen {
			continue // consumes a pass slot, but is never tried
		}

		deep := opts.Level >= LevelMaximum && pass < numDeepPasses
		swapped, newBytes := trySwap(r, best, q, committed, opts, bytesBefore, deep)
		if swapped {
			bytesBefore = newBytes
		} else {
			rejected = append(rejected, q)
		}
	}
	// Unswapped candidates go back only after the loop, so each pass pops
	// the next residual pattern rather than the one just rejected.
	for _, q := range rejected {
		residual.PushPattern(q)
	}
	return bytesBefore
}

// trySwap attempts to replace one element of best with q. In the Normal
// (non-deep) case it only tries positions whose key is a substring of q's,
// or vice versa, and stops at the first improving position; in the Maximum
// (deep) case it tries every position and keeps the best improvement.
func trySwap(r *parse.Rescorer, best []*pattern.Pattern, q *pattern.Pattern, committed *committedKeys, opts Options, bytesBefore int, deep bool) (bool, int) {
	bestIdx := -1
	bestBytes := bytesBefore

	for i, p := range best {
		if !deep && !substringRelated(p.Key, q.Key) {
			continue
		}

		old := *p
		best[i] = q
		q.InvalidateOccurrences()
		newBytes := r.Rescore(best, opts.Version, opts.ForceR3, true).TotalBytes
		best[i] = &old

		if newBytes < bestBytes {
			bestBytes = newBytes
			bestIdx = i
			if !deep {
				break
			}
		}
	}

	if bestIdx == -1 {
		return false, bytesBefore
	}

	committed.replace(best[bestIdx].Key, q.Key)
	best[bestIdx] = q
	q.InvalidateOccurrences()
	r.Rescore(best, opts.Version, opts.ForceR3, true)
	return true, bestBytes
}

func substringRelated(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func maxKeyLen(best []*pattern.Pattern) int {
	max := 0
	for _, p := range best {
		if n := len([]rune(p.Key)); n > max {
			max = n
		}
	}
	return max
}

// adjustBoundaries is F2 (spec.md §4.F): for every selected pattern, try
// dropping/adding a boundary space, then dropping a leading or trailing
// character, then two; commit whichever mutation reduces total bytes.
func adjustBoundaries(r *parse.Rescorer, best []*pattern.Pattern, committed *committedKeys, opts Options, bytesBefore int) int {
	for _, p := range best {
		bytesBefore = tryBoundaryMutations(r, best, p, committed, opts, bytesBefore)
	}
	return bytesBefore
}

func tryBoundaryMutations(r *parse.Rescorer, best []*pattern.Pattern, p *pattern.Pattern, committed *committedKeys, opts Options, bytesBefore int) int {
	runes := []rune(p.Key)

	if len(runes) > 0 && runes[0] == alphabet.SpaceSentinel {
		bytesBefore = tryMutate(r, best, p, committed, opts, bytesBefore, string(runes[1:]))
	} else {
		bytesBefore = tryMutate(r, best, p, committed, opts, bytesBefore, string(alphabet.SpaceSentinel)+p.Key)
	}
	runes = []rune(p.Key)

	if len(runes) > 0 && runes[len(runes)-1] == alphabet.SpaceSentinel {
		bytesBefore = tryMutate(r, best, p, committed, opts, bytesBefore, string(runes[:len(runes)-1]))
	} else {
		bytesBefore = tryMutate(r, best, p, committed, opts, bytesBefore, p.Key+string(alphabet.SpaceSentinel))
	}

	runes = []rune(p.Key)
	if len(runes) >= 2 {
		bytesBefore = tryMutate(r, best, p, committed, opts, bytesBefore, string(runes[1:]))
	}
	runes = []rune(p.Key)
	if len(runes) >= 2 {
		bytesBefore = tryMutate(r, best, p, committed, opts, bytesBefore, string(runes[:len(runes)-1]))
	}

	runes = []rune(p.Key)
	if len(runes) >= 3 {
		bytesBefore = tryMutate(r, best, p, committed, opts, bytesBefore, string(runes[2:]))
	}
	runes = []rune(p.Key)
	if len(runes) >= 3 {
		bytesBefore = tryMutate(r, best, p, committed, opts, bytesBefore, string(runes[:len(runes)-2]))
	}

	return bytesBefore
}

// tryMutate tries replacing p.Key with candidate, keeping the change only
// if it reduces total bytes and candidate is not already claimed by another
// selected pattern.
func tryMutate(r *parse.Rescorer, best []*pattern.Pattern, p *pattern.Pattern, committed *committedKeys, opts Options, bytesBefore int, candidate string) int {
	if candidate == p.Key || candidate == "" {
		return bytesBefore
	}
	if committed.has(candidate) {
		return bytesBefore
	}

	oldKey, oldCost := p.Key, p.Cost
	p.Key = candidate
	p.Cost = costOf(r, candidate)
	p.InvalidateOccurrences()

	newBytes := r.Rescore(best, opts.Version, opts.ForceR3, true).TotalBytes
	if newBytes < bytesBefore {
		committed.replace(oldKey, candidate)
		return newBytes
	}

	p.Key = oldKey
	p.Cost = oldCost
	p.InvalidateOccurrences()
	return bytesBefore
}

func costOf(r *parse.Rescorer, s string) int {
	return r.Model.ZstringCost(s)
}
