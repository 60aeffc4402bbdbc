// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package inform6 writes the selected abbreviation set as Inform6 source
// (spec.md §6): one `Abbreviate "..."` statement per line, with a trailing
// comment giving frequency, cost and savings.
package inform6

import (
	"fmt"
	"io"
	"strings"

	"github.com/ifzabbrev/zabbrev/alphabet"
	"github.com/ifzabbrev/zabbrev/pattern"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "emit/inform6: " + string(e) }

// MaxLen is Inform6's abbreviation length limit (spec.md §6).
const MaxLen = 64

// Write emits best, in order, as Inform6 Abbreviate statements.
func Write(w io.Writer, best []*pattern.Pattern) error {
	for _, p := range best {
		text := restore(p.Key)
		comment := fmt.Sprintf("freq %d, cost %d, savings %d", p.Freq, p.Cost, p.Savings)
		if len([]rune(p.Key)) > MaxLen {
			comment += fmt.Sprintf(" -- Warning: Abbreviation too long (over Inform6's %d-character limit)", MaxLen)
		}
		if _, err := fmt.Fprintf(w, "Abbreviate \"%s\"; ! %s\n", text, comment); err != nil {
			return err
		}
	}
	return nil
}

// restore reverses the ^/~/space sentinel mapping ingest/inform6 applies on
// the way in, so an embedded quote round-trips as Inform6's own "~" escape
// rather than a raw quote that would terminate the string literal early.
func restore(key string) string {
	s := strings.ReplaceAll(key, string(alphabet.SpaceSentinel), " ")
	s = strings.ReplaceAll(s, string(alphabet.NewlineSentinel), "^")
	s = strings.ReplaceAll(s, string(alphabet.QuoteSentinel), "~")
	return s
}
