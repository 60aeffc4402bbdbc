// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pattern

import (
	"container/heap"

	"github.com/tchap/go-patricia/v2/patricia"
)

// longPatternHeap is a min-heap of long candidates (key length > 20)
// ordered by key length, shortest first (spec.md §4.C). Popping
// shortest-first means a key's head and tail, being one character shorter,
// are always considered before the key itself, which is what lets the
// head/tail suppression rule below drop a key that merely extends an
// already accepted one.
type longPatternHeap []*Pattern

func newLongPatternHeap() *longPatternHeap {
	h := &longPatternHeap{}
	heap.Init(h)
	return h
}

func (h longPatternHeap) Len() int { return len(h) }
func (h longPatternHeap) Less(i, j int) bool {
	return len([]rune(h[i].Key)) < len([]rune(h[j].Key)) // min-heap by length
}
func (h longPatternHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex, h[j].heapIndex = i, j
}
func (h *longPatternHeap) Push(x interface{}) {
	p := x.(*Pattern)
	p.heapIndex = len(*h)
	*h = append(*h, p)
}
func (h *longPatternHeap) Pop() interface{} {
	old := *h
	n := len(old)
	p := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return p
}

func (h *longPatternHeap) push(p *Pattern) { heap.Push(h, p) }
func (h *longPatternHeap) pop() *Pattern {
	if h.Len() == 0 {
		return nil
	}
	return heap.Pop(h).(*Pattern)
}

// drainLongHints pops the long-pattern heap shortest-first, keeping a
// candidate only if neither its head (key[1:]) nor its tail (key[:len-1])
// has already been accepted (spec.md §4.C). Accepted keys are tracked in a
// patricia trie for O(key length) membership checks (see DESIGN.md).
func drainLongHints(h *longPatternHeap) []*Pattern {
	accepted := patricia.NewTrie()
	var kept []*Pattern

	for h.Len() > 0 {
		p := h.pop()
		runes := []rune(p.Key)
		head := string(runes[1:])
		tail := string(runes[:len(runes)-1])
		if accepted.Match(patricia.Prefix(head)) || accepted.Match(patricia.Prefix(tail)) {
			continue
		}
		accepted.Insert(patricia.Prefix(p.Key), true)
		kept = append(kept, p)
	}
	return kept
}
