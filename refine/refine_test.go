// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package refine

import (
	"testing"

	"github.com/ifzabbrev/zabbrev/alphabet"
	"github.com/ifzabbrev/zabbrev/corpus"
	"github.com/ifzabbrev/zabbrev/parse"
	"github.com/ifzabbrev/zabbrev/pattern"
	"github.com/stretchr/testify/require"
)

// emptyResidual satisfies residualHeap with nothing to offer, so F1 is a
// no-op and only F2 boundary adjustment runs.
type emptyResidual struct{}

func (emptyResidual) Len() int                      { return 0 }
func (emptyResidual) PopPattern() *pattern.Pattern   { return nil }
func (emptyResidual) PushPattern(p *pattern.Pattern) {}

func buildCorpus(t *testing.T, strs []string) *corpus.Corpus {
	t.Helper()
	cor := corpus.New()
	for _, s := range strs {
		_, err := cor.AddString(s, false, false, corpus.NoRoutine)
		require.NoError(t, err)
	}
	_, err := cor.Concat()
	require.NoError(t, err)
	return cor
}

// TestBoundaryAdjustmentNeverWorsens checks that F2 only ever keeps a
// mutation when it strictly reduces total bytes, by running it on a small
// fixed example and confirming the result is no worse than the starting
// total.
func TestBoundaryAdjustmentNeverWorsens(t *testing.T) {
	model := alphabet.NewDefaultModel()
	cor := buildCorpus(t, []string{"the cat and the cat and the cat"})

	p := &pattern.Pattern{Key: " the cat", Cost: model.ZstringCost(" the cat")}
	best := []*pattern.Pattern{p}

	rescorer := parse.New(cor, model)
	before := rescorer.Rescore(best, 3, false, true).TotalBytes

	after := Refine(cor, model, best, emptyResidual{}, Options{
		Level:   LevelBoundary,
		Version: 3,
	})

	require.LessOrEqual(t, after, before)
}

// TestReplaceFromResidueNeverWorsens exercises F1: offering a residual
// candidate for swapping must never leave total bytes higher than before.
func TestReplaceFromResidueNeverWorsens(t *testing.T) {
	model := alphabet.NewDefaultModel()
	cor := buildCorpus(t, []string{"abcdabcdabcd wxyzwxyzwxyz"})

	weak := &pattern.Pattern{Key: "wxyz", Cost: model.ZstringCost("wxyz")}
	strong := &pattern.Pattern{Key: "wxyzwxyz", Cost: model.ZstringCost("wxyzwxyz")}
	best := []*pattern.Pattern{weak}

	residual := &fakeResidual{items: []*pattern.Pattern{strong}}

	rescorer := parse.New(cor, model)
	before := rescorer.Rescore(best, 3, false, true).TotalBytes

	after := Refine(cor, model, best, residual, Options{
		Level:         LevelNormal,
		Version:       3,
		NumPasses:     10,
		NumDeepPasses: 10,
	})

	require.LessOrEqual(t, after, before)
}

// TestAdjustBoundariesPrefersLowerByteVariantS4 is spec.md scenario S4:
// given "hello world"/"hello there" and a candidate starting as "world"
// (no leading space), F2 must keep the leading-space variant "·world" iff
// it has strictly lower total bytes than the space-less form, never the
// other way around.
func TestAdjustBoundariesPrefersLowerByteVariantS4(t *testing.T) {
	model := alphabet.NewDefaultModel()
	space := string(alphabet.SpaceSentinel)
	cor := buildCorpus(t, []string{"hello" + space + "world", "hello" + space + "there"})
	rescorer := parse.New(cor, model)

	plain := &pattern.Pattern{Key: "world", Cost: model.ZstringCost("world")}
	bytesPlain := rescorer.Rescore([]*pattern.Pattern{plain}, 3, false, true).TotalBytes

	spaced := &pattern.Pattern{
		Key:  string(alphabet.SpaceSentinel) + "world",
		Cost: model.ZstringCost(string(alphabet.SpaceSentinel) + "world"),
	}
	bytesSpaced := rescorer.Rescore([]*pattern.Pattern{spaced}, 3, false, true).TotalBytes

	candidate := &pattern.Pattern{Key: "world", Cost: model.ZstringCost("world")}
	best := []*pattern.Pattern{candidate}
	after := Refine(cor, model, best, emptyResidual{}, Options{
		Level:   LevelBoundary,
		Version: 3,
	})

	require.LessOrEqual(t, after, bytesPlain)
	require.LessOrEqual(t, after, bytesSpaced)

	if bytesSpaced < bytesPlain {
		require.Equal(t, string(alphabet.SpaceSentinel)+"world", candidate.Key)
	} else {
		require.Equal(t, "world", candidate.Key)
	}
}

type fakeResidual struct {
	items []*pattern.Pattern
}

func (r *fakeResidual) Len() int { return len(r.items) }
func (r *fakeResidual) PopPattern() *pattern.Pattern {
	n := len(r.items)
	p := r.items[n-1]
	r.items = r.items[:n-1]
	return p
}
func (r *fakeResidual) PushPattern(p *pattern.Pattern) {
	r.items = append(r.items, p)
}
