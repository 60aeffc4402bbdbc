// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package customalpha

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ifzabbrev/zabbrev/alphabet"
	"github.com/stretchr/testify/require"
)

func TestHistogramIgnoresSentinelsAndEscape(t *testing.T) {
	h := NewHistogram()
	h.Add("a" + string(alphabet.SpaceSentinel) + "b" + string(rune(escapeByte)))
	require.Equal(t, 1, h.counts['a'])
	require.Equal(t, 1, h.counts['b'])
	require.NotContains(t, h.counts, alphabet.SpaceSentinel)
	require.NotContains(t, h.counts, rune(escapeByte))
}

func TestTopPoolOrdersByFrequencyThenRune(t *testing.T) {
	h := NewHistogram()
	for i := 0; i < 5; i++ {
		h.Add("z")
	}
	for i := 0; i < 3; i++ {
		h.Add("a")
	}
	h.Add("m")

	pool := h.TopPool()
	require.Equal(t, []rune{'z', 'a', 'm'}, pool)
}

func TestBuildPlacesFirst26IntoA0(t *testing.T) {
	pool := []rune("thequickbrownfxjmpsvlazydg1234567890!?")
	model := Build(pool)
	require.Equal(t, 't', model.A0()[0])
}

func TestBuildFillsAllSlots(t *testing.T) {
	pool := make([]rune, PoolSize)
	for i := range pool {
		pool[i] = rune('!' + i)
	}
	model := Build(pool)
	for _, r := range model.A0() {
		require.NotEqual(t, rune(0), r)
	}
	for _, r := range model.A1() {
		require.NotEqual(t, rune(0), r)
	}
	for i, r := range model.A2() {
		if i == 0 || i == 1 || i == 19 {
			require.Equal(t, rune(0), r) // reserved: escape, newline, quote
			continue
		}
		require.NotEqual(t, rune(0), r)
	}
}

func TestCostDeltaZeroForIdenticalModels(t *testing.T) {
	def := alphabet.NewDefaultModel()
	require.Equal(t, 0, CostDelta([]string{"hello world"}, def, def))
}

// TestCustomAlphabetEffectS5 is spec.md scenario S5: a corpus dominated by
// Q/Z/J (cost 2 under the default alphabet, where they sit in A1) migrates
// them into a custom A0 (cost 1) once they dominate the frequency histogram,
// so the custom alphabet must cost strictly less, by exactly one z-char per
// occurrence.
func TestCustomAlphabetEffectS5(t *testing.T) {
	const repeats = 5
	text := strings.Repeat("Q", repeats) + strings.Repeat("Z", repeats) + strings.Repeat("J", repeats)
	texts := []string{text}

	h := NewHistogram()
	h.Add(text)

	def := alphabet.NewDefaultModel()
	custom := Build(h.TopPool())

	require.Contains(t, custom.A0(), 'Q')
	require.Contains(t, custom.A0(), 'Z')
	require.Contains(t, custom.A0(), 'J')

	delta := CostDelta(texts, def, custom)
	require.Equal(t, 3*repeats, delta) // one z-char saved per Q/Z/J occurrence
	require.Less(t, custom.ZstringCost(text), def.ZstringCost(text))
}

// TestBuildReconstructsDefaultLayoutFromItsOwnCharacters feeds Build a pool
// made of the standard alphabet's own characters (A0, then A1, then A2's
// 23 non-reserved slots) and checks the full A0/A1/A2 arrays come back
// exactly where the default puts them, using cmp.Diff so a mismatch reports
// which slot diverged rather than just that the arrays differ.
func TestBuildReconstructsDefaultLayoutFromItsOwnCharacters(t *testing.T) {
	pool := make([]rune, 0, PoolSize)
	pool = append(pool, alphabet.DefaultA0[:]...)
	pool = append(pool, alphabet.DefaultA1[:]...)
	for i, r := range alphabet.DefaultA2 {
		if i == 0 || i == 1 || i == 19 {
			continue
		}
		pool = append(pool, r)
	}
	require.Len(t, pool, PoolSize)

	model := Build(pool)

	wantA2 := alphabet.DefaultA2
	wantA2[0], wantA2[1], wantA2[19] = 0, 0, 0

	if diff := cmp.Diff(alphabet.DefaultA0, model.A0()); diff != "" {
		t.Errorf("A0 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(alphabet.DefaultA1, model.A1()); diff != "" {
		t.Errorf("A1 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantA2, model.A2()); diff != "" {
		t.Errorf("A2 mismatch (-want +got):\n%s", diff)
	}
}
