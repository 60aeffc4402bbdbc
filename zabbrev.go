// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package zabbrev wires components A through H into the abbreviation-
// selection pipeline (spec.md §4.H): a Driver advancing through
// Init → Enumerated → NaiveRanked → Selected → Refined → Emitted. Its
// state-holding struct plus panic/recover error bridge is grounded on the
// teacher's bzip2/reader.go and writer.go shape (a struct wrapping the
// pipeline's working state, reset by construction) and bzip2/common.go's
// errRecover.
package zabbrev

import (
	"runtime"

	"github.com/ifzabbrev/zabbrev/alphabet"
	"github.com/ifzabbrev/zabbrev/corpus"
	"github.com/ifzabbrev/zabbrev/customalpha"
	"github.com/ifzabbrev/zabbrev/diagnostics"
	"github.com/ifzabbrev/zabbrev/gsuffix"
	"github.com/ifzabbrev/zabbrev/pattern"
	"github.com/ifzabbrev/zabbrev/refine"
	"github.com/ifzabbrev/zabbrev/selector"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "zabbrev: " + string(e) }

// ErrEmptyCorpus is returned by Run when the ingested corpus has no
// strings at all (spec.md §7: an input error, fatal).
const ErrEmptyCorpus = Error("empty corpus")

// State is a Driver's position in the selection pipeline (spec.md §4.H).
type State int

const (
	Init State = iota
	Enumerated
	NaiveRanked
	Selected
	Refined
	Emitted
)

func (s State) String() string {
	switch s {
	case Init:
		return "Init"
	case Enumerated:
		return "Enumerated"
	case NaiveRanked:
		return "NaiveRanked"
	case Selected:
		return "Selected"
	case Refined:
		return "Refined"
	case Emitted:
		return "Emitted"
	default:
		return "Unknown"
	}
}

// residualHeap mirrors refine's own residualHeap interface; a Driver holds
// selector.Result.Residual through it without either package exporting the
// concrete heap type.
type residualHeap interface {
	Len() int
	PopPattern() *pattern.Pattern
	PushPattern(p *pattern.Pattern)
}

// Options configures a Driver's run (spec.md §6 CLI flags, minus I/O paths
// which the ingest/emit packages own).
type Options struct {
	N                   int
	Version             int
	ForceR3             bool
	ThrowBackLowScorers bool
	RefineLevel         refine.Level
	NumPasses           int
	NumDeepPasses       int
	OnlyRefactor        bool
	CustomAlphabet      bool
}

// Driver holds the working state of one selection run.
type Driver struct {
	Corpus  *corpus.Corpus
	Model   *alphabet.Model
	Options Options
	State   State

	SuffixArray *gsuffix.Array
	Candidates  map[string]*pattern.Pattern
	LongHints   []*pattern.Pattern
	Best        []*pattern.Pattern
	TotalBytes  int

	CustomModel           *alphabet.Model
	CustomAlphabetSavings int

	Fingerprint uint32

	residual residualHeap
}

// NewDriver returns a Driver in state Init.
func NewDriver(cor *corpus.Corpus, model *alphabet.Model, opts Options) *Driver {
	return &Driver{Corpus: cor, Model: model, Options: opts, State: Init}
}

// Run executes the pipeline to completion, or to the long-duplicate report
// if Options.OnlyRefactor is set (spec.md §4.H). Internal invariant
// violations raised as panics of this package's Error type (or any error)
// are converted to a returned error; a runtime.Error panics through
// unchanged (spec.md §7).
func (d *Driver) Run() (err error) {
	defer errRecover(&err)

	if len(d.Corpus.Strings) == 0 {
		return ErrEmptyCorpus
	}

	d.Fingerprint = d.fingerprint()
	log := diagnostics.Logger()
	log.Info().
		Uint32("fingerprint", d.Fingerprint).
		Int("strings", len(d.Corpus.Strings)).
		Msg("corpus ingested")

	if err := d.enumerate(); err != nil {
		return err
	}

	d.buildCustomAlphabet()

	if d.Options.OnlyRefactor {
		return nil
	}

	d.selectBest()
	d.refineBest()
	return nil
}

func (d *Driver) fingerprint() uint32 {
	texts := make([][]byte, len(d.Corpus.Strings))
	for i, s := range d.Corpus.Strings {
		texts[i] = []byte(s.Text)
	}
	return diagnostics.CorpusFingerprint(texts)
}

// enumerate runs component B (suffix array) then component C (pattern
// extraction), advancing Init → Enumerated.
func (d *Driver) enumerate() error {
	data, err := d.Corpus.Concat()
	if err != nil {
		return err
	}
	arr, err := gsuffix.Build(data)
	if err != nil {
		return err
	}
	d.SuffixArray = arr

	ext, err := pattern.Extract(d.Corpus, arr, d.Model)
	if err != nil {
		return err
	}
	d.Candidates = ext.Candidates
	d.LongHints = ext.LongHints
	d.State = Enumerated
	return nil
}

// buildCustomAlphabet runs component G, when requested (spec.md §4.G).
func (d *Driver) buildCustomAlphabet() {
	if !d.Options.CustomAlphabet {
		return
	}
	if d.Options.Version < 5 {
		log := diagnostics.Logger()
		log.Warn().
			Int("version", d.Options.Version).
			Msg("custom alphabet requested for a z-version below 5; interpreters need not honor it")
	}

	hist := customalpha.NewHistogram()
	hist.AddCorpus(d.Corpus)
	d.CustomModel = customalpha.Build(hist.TopPool())

	texts := make([]string, len(d.Corpus.Strings))
	for i, s := range d.Corpus.Strings {
		texts[i] = s.Text
	}
	d.CustomAlphabetSavings = customalpha.CostDelta(texts, d.Model, d.CustomModel)
}

// selectBest runs component E, advancing Enumerated → NaiveRanked (the
// candidate heap is built) → Selected (the greedy loop terminates).
func (d *Driver) selectBest() {
	d.State = NaiveRanked

	res := selector.Select(d.Corpus, d.Model, d.Candidates, selector.Options{
		N:                   d.Options.N,
		Version:             d.Options.Version,
		ForceR3:             d.Options.ForceR3,
		ThrowBackLowScorers: d.Options.ThrowBackLowScorers,
	})
	d.Best = res.Best
	d.residual = res.Residual
	d.State = Selected
}

// refineBest runs component F, advancing Selected → Refined.
func (d *Driver) refineBest() {
	if d.Options.RefineLevel == refine.LevelNone {
		d.State = Refined
		return
	}
	d.TotalBytes = refine.Refine(d.Corpus, d.Model, d.Best, d.residual, refine.Options{
		Level:         d.Options.RefineLevel,
		Version:       d.Options.Version,
		ForceR3:       d.Options.ForceR3,
		NumPasses:     d.Options.NumPasses,
		NumDeepPasses: d.Options.NumDeepPasses,
	})
	d.State = Refined
}

// MarkEmitted advances Refined → Emitted once a caller has written output.
func (d *Driver) MarkEmitted() { d.State = Emitted }

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
