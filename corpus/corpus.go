// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package corpus holds the string records the abbreviation-selection
// engine operates on (spec.md §3) and the generalized concatenation fed to
// the suffix-array builder (spec.md §4.B, §9 "generalized suffix array
// separator").
package corpus

import (
	"github.com/ifzabbrev/zabbrev/gsuffix"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "corpus: " + string(e) }

// ErrTooManySymbols is returned by Concat when a corpus uses more distinct
// characters than fit in the one-byte-per-character Latin-1 view the
// generalized suffix array requires (spec.md §4.B).
const ErrTooManySymbols = Error("too many distinct characters for byte-level suffix array")

// ErrSeparatorInText is returned when an input string already contains the
// generalized-suffix-array separator byte (spec.md §9: "validate absence
// during ingestion").
const ErrSeparatorInText = Error("input string contains the reserved separator character")

// NoRoutine is the RoutineID value for strings that do not belong to a
// code routine.
const NoRoutine = -1

// StringRecord is one source text unit (spec.md §3).
type StringRecord struct {
	Index             int
	Text              string // original text, with sentinels substituted
	Runes             []rune
	Packed            bool // stored in high memory as a packed address
	ObjectDescription bool
	RoutineID         int // NoRoutine if not part of a routine

	// Mutable per-pass scratch, pre-allocated once and cleared in place on
	// every rescore (spec.md §5, §9 "Rebuildable scratch per string").
	MinCost    []int // f[i], size len(Runes)+1
	Choice     []int // choice[i], size len(Runes)+1; -1 means "no abbreviation"
	LastCost   int
	Rounding   int
	TotalBytes int

	// byteOffset is this string's starting offset within the generalized
	// concatenation built by Concat.
	byteOffset int
}

// ByteOffset returns the string's starting offset in the generalized
// concatenation (valid after Concat has been called on the owning Corpus).
func (s *StringRecord) ByteOffset() int { return s.byteOffset }

// Corpus is the full set of string records for one selection run, plus the
// externally supplied routine-size table used for routine-padding
// accounting (spec.md §4.D step 6).
type Corpus struct {
	Strings      []*StringRecord
	RoutineSizes map[int]int // routineID -> bytes of code excluding inline strings

	data    []byte // generalized concatenation, including separators
	symbols []rune // byte value -> rune, for reconstructing pattern text
}

// New returns an empty Corpus.
func New() *Corpus {
	return &Corpus{RoutineSizes: make(map[int]int)}
}

// AddString appends a string record, allocating its scratch arrays.
func (c *Corpus) AddString(text string, packed, object bool, routineID int) (*StringRecord, error) {
	for _, r := range text {
		if r == rune(gsuffix.Separator) {
			return nil, ErrSeparatorInText
		}
	}
	runes := []rune(text)
	s := &StringRecord{
		Index:             len(c.Strings),
		Text:              text,
		Runes:             runes,
		Packed:            packed,
		ObjectDescription: object,
		RoutineID:         routineID,
		MinCost:           make([]int, len(runes)+1),
		Choice:            make([]int, len(runes)+1),
	}
	for i := range s.Choice {
		s.Choice[i] = -1
	}
	c.Strings = append(c.Strings, s)
	return s, nil
}

// RoundingUnit returns R for a string, per spec.md §3: 3 for inline
// strings; 3/6/12 for packed strings depending on z-machine version
// (1–3/4–7/8). forceR3 implements the CLI `-r3` override (spec.md §6).
func RoundingUnit(s *StringRecord, version int, forceR3 bool) int {
	if forceR3 || !s.Packed {
		return 3
	}
	switch {
	case version <= 3:
		return 3
	case version <= 7:
		return 6
	default:
		return 12
	}
}

// Concat builds the generalized suffix-array input: all strings joined by
// gsuffix.Separator, each logical character mapped to exactly one byte
// (spec.md §4.B: "Builds SA of length n over the byte stream in Latin-1
// view"). Characters already within the Latin-1 range (<256) map to their
// own byte value; characters outside it are interned into the remaining
// unused byte values, so the one-byte-per-character invariant holds for any
// Unicode input as long as the corpus uses at most 255 distinct characters
// overall (the separator occupies one value, 0x0B).
func (c *Corpus) Concat() ([]byte, error) {
	used := [256]bool{}
	used[gsuffix.Separator] = true

	byteOf := make(map[rune]byte)
	var data []byte

	assign := func(r rune) (byte, error) {
		if b, ok := byteOf[r]; ok {
			return b, nil
		}
		if r < 256 && r != rune(gsuffix.Separator) && !used[byte(r)] {
			b := byte(r)
			used[b] = true
			byteOf[r] = b
			return b, nil
		}
		for b := 0; b < 256; b++ {
			if !used[b] {
				used[b] = true
				byteOf[r] = byte(b)
				return byte(b), nil
			}
		}
		return 0, ErrTooManySymbols
	}

	// Pre-assign Latin-1-identity mappings first so common ASCII corpora
	// get a literal byte-for-byte view (cheap to reason about in --debug
	// dumps), then fall back to interning for the rest.
	for _, s := range c.Strings {
		for _, r := range s.Runes {
			if r < 256 {
				if _, err := assign(r); err != nil {
					return nil, err
				}
			}
		}
	}
	for _, s := range c.Strings {
		for _, r := range s.Runes {
			if r >= 256 {
				if _, err := assign(r); err != nil {
					return nil, err
				}
			}
		}
	}

	symbols := make([]rune, 256)
	for r, b := range byteOf {
		symbols[b] = r
	}

	for _, s := range c.Strings {
		s.byteOffset = len(data)
		for _, r := range s.Runes {
			data = append(data, byteOf[r])
		}
		data = append(data, gsuffix.Separator)
	}

	c.data = data
	c.symbols = symbols
	return data, nil
}

// RuneAt decodes the rune the generalized concatenation's byte b represents
// (the inverse of the interning performed by Concat). The separator byte
// decodes to rune(gsuffix.Separator), so text reconstructed across a string
// boundary still shows the separator.
func (c *Corpus) RuneAt(b byte) rune {
	if b == gsuffix.Separator {
		return rune(gsuffix.Separator)
	}
	return c.symbols[b]
}

// TextAt reconstructs the original text of the byte range [start,start+n)
// in the generalized concatenation.
func (c *Corpus) TextAt(start, n int) string {
	rs := make([]rune, n)
	for i := 0; i < n; i++ {
		rs[i] = c.RuneAt(c.data[start+i])
	}
	return string(rs)
}

// StringAt returns the string record owning byte offset p in the
// generalized concatenation, and p's rune index within it.
func (c *Corpus) StringAt(p int) (*StringRecord, int) {
	for _, s := range c.Strings {
		end := s.byteOffset + len(s.Runes)
		if p >= s.byteOffset && p <= end {
			return s, p - s.byteOffset
		}
	}
	return nil, -1
}
