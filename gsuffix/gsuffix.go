// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package gsuffix builds a generalized suffix array and LCP array over the
// concatenation of a text corpus, and answers prefix-frequency queries over
// it (spec.md §4.B). Construction is the Manber-Myers doubling algorithm;
// the LCP array is built with Kasai's algorithm in O(n) once the suffix
// array is known — grounded on the teacher's own suffix-array-driven BWT in
// bzip2/bwt.go, generalized here to expose the LCP array that a BWT has no
// use for but a pattern extractor does.
package gsuffix

import "sort"

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "gsuffix: " + string(e) }

// ErrEmptyCorpus is returned by Build when given an empty byte stream
// (spec.md §4.B: "empty corpus ⇒ report 'no data to index' and abort
// selection").
const ErrEmptyCorpus = Error("no data to index")

// Separator is the byte used to join strings into the generalized
// concatenation. It must not occur in any input string; ingestion
// validates this (spec.md §9).
const Separator byte = 0x0B

// Array is a generalized suffix array over Data, with its companion LCP
// array.
type Array struct {
	Data []byte // the generalized concatenation, including separators
	SA   []int  // SA[i] is the starting offset of the i-th suffix in sorted order
	LCP  []int  // LCP[i] is the longest common prefix of suffixes SA[i-1] and SA[i]; LCP[0] == 0
	rank []int  // rank[p] is the sorted-order index of the suffix starting at p
}

// Build constructs the generalized suffix array and LCP array for data.
// data is expected to already contain Separator bytes joining the input
// strings (see corpus.Concat).
func Build(data []byte) (*Array, error) {
	n := len(data)
	if n == 0 {
		return nil, ErrEmptyCorpus
	}

	sa, rank := doublingSort(data)
	lcp := kasaiLCP(data, sa, rank)

	return &Array{Data: data, SA: sa, LCP: lcp, rank: rank}, nil
}

// doublingSort implements the Manber-Myers doubling construction: suffixes
// are ranked by successive pairs (rank[i], rank[i+k/2]) with k doubling
// each round until every suffix has a unique rank.
func doublingSort(s []byte) (sa, rank []int) {
	n := len(s)
	sa = make([]int, n)
	rank = make([]int, n)
	tmp := make([]int, n)

	for i := 0; i < n; i++ {
		sa[i] = i
		rank[i] = int(s[i])
	}

	rankAt := func(i, k int) int {
		if i+k < n {
			return rank[i+k]
		}
		return -1
	}

	less := func(a, b, k int) bool {
		if rank[a] != rank[b] {
			return rank[a] < rank[b]
		}
		return rankAt(a, k) < rankAt(b, k)
	}

	for k := 1; ; k *= 2 {
		sort.Slice(sa, func(i, j int) bool { return less(sa[i], sa[j], k) })

		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			if less(sa[i-1], sa[i], k) {
				tmp[sa[i]]++
			}
		}
		copy(rank, tmp)

		if rank[sa[n-1]] == n-1 {
			break // every suffix now has a unique rank
		}
		if k >= 2*n {
			break // spec.md §4.B: "k doubling until k ≥ 2n"
		}
	}
	return sa, rank
}

// kasaiLCP computes the LCP array in O(n) from the suffix array and its
// rank array (Kasai, Lee, Arimura, Arikawa, Park).
func kasaiLCP(s []byte, sa, rank []int) []int {
	n := len(s)
	lcp := make([]int, n)
	h := 0
	for i := 0; i < n; i++ {
		if rank[i] == 0 {
			h = 0
			continue
		}
		j := sa[rank[i]-1]
		for i+h < n && j+h < n && s[i+h] == s[j+h] {
			h++
		}
		lcp[rank[i]] = h
		if h > 0 {
			h--
		}
	}
	return lcp
}

// RangeCount returns the bounds [lo,hi] of the maximal contiguous SA-index
// range around i where every LCP value between adjacent entries is ≥ ℓ
// (spec.md §4.B); the range's size is the frequency of the length-ℓ prefix
// of the suffix at SA index i. Occurrences are counted with overlaps,
// non-overlap-aware.
func (a *Array) RangeCount(i, length int) (lo, hi int) {
	lo, hi = i, i
	for lo > 0 && a.LCP[lo] >= length {
		lo--
	}
	for hi+1 < len(a.LCP) && a.LCP[hi+1] >= length {
		hi++
	}
	return lo, hi
}

// Frequency is a convenience wrapper around RangeCount returning the count
// itself rather than the bounding range.
func (a *Array) Frequency(i, length int) int {
	lo, hi := a.RangeCount(i, length)
	return hi - lo + 1
}

// RankOf returns the SA index (sorted-order position) of the suffix
// starting at byte offset p.
func (a *Array) RankOf(p int) int { return a.rank[p] }
