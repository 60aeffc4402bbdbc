// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pattern

import (
	"testing"

	"github.com/ifzabbrev/zabbrev/alphabet"
	"github.com/ifzabbrev/zabbrev/corpus"
	"github.com/ifzabbrev/zabbrev/gsuffix"
	"github.com/stretchr/testify/require"
)

func buildCorpus(t *testing.T, strs []string) (*corpus.Corpus, *gsuffix.Array) {
	t.Helper()
	cor := corpus.New()
	for _, s := range strs {
		_, err := cor.AddString(s, false, false, corpus.NoRoutine)
		require.NoError(t, err)
	}
	data, err := cor.Concat()
	require.NoError(t, err)
	arr, err := gsuffix.Build(data)
	require.NoError(t, err)
	return cor, arr
}

// TestNaiveScoreS1 is spec.md scenario S1: "the·" has naive score -2, so it
// must never be admitted.
func TestNaiveScoreS1(t *testing.T) {
	model := alphabet.NewDefaultModel()
	sp := string(alphabet.SpaceSentinel)
	cor, arr := buildCorpus(t, []string{"the" + sp + "cat" + sp + "sat", "the" + sp + "dog" + sp + "ran"})
	ext, err := Extract(cor, arr, model)
	require.NoError(t, err)

	_, present := ext.Candidates["the"+sp]
	require.False(t, present, "the· has negative naive score and must be rejected")
}

// TestNaiveScoreS2 is spec.md scenario S2: "abcd" (freq 3, score 0) is
// rejected; "abcdabcd" (freq 2, score 3) is accepted.
func TestNaiveScoreS2(t *testing.T) {
	model := alphabet.NewDefaultModel()
	cor, arr := buildCorpus(t, []string{"abcdabcdabcd"})
	ext, err := Extract(cor, arr, model)
	require.NoError(t, err)

	_, present := ext.Candidates["abcd"]
	require.False(t, present, "naive score 0 must be rejected")

	p, present := ext.Candidates["abcdabcd"]
	require.True(t, present)
	require.Equal(t, 8, p.Cost)
	require.Equal(t, 2, p.Freq)
	require.Equal(t, 3, p.Savings)
}

func TestComputeOccurrences(t *testing.T) {
	cor, _ := buildCorpus(t, []string{"abcabc"})
	p := &Pattern{Key: "abc"}
	p.ComputeOccurrences(cor)
	require.True(t, p.OccurrencesValid())
	require.Equal(t, []int{0, 3}, p.Occurrences[0])
}

func TestLongPatternSuppression(t *testing.T) {
	h := newLongPatternHeap()
	h.push(&Pattern{Key: "abcdefghijklmnopqrstuvwxyz"}) // 26 chars, outer
	h.push(&Pattern{Key: "bcdefghijklmnopqrstuvwxyz"})  // outer's head (key[1:]), 25 chars
	h.push(&Pattern{Key: "zzzzzzzzzzzzzzzzzzzzzzzzz1"}) // unrelated, 26 chars
	hints := drainLongHints(h)
	require.Len(t, hints, 2)
}
