// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package zap writes the selected abbreviation set in ZAP assembly dialect
// (spec.md §6): a `.FSTR` directive per abbreviation, a `WORDS::` reference
// list, terminated by `.ENDI`.
package zap

import (
	"fmt"
	"io"
	"strings"

	"github.com/ifzabbrev/zabbrev/alphabet"
	"github.com/ifzabbrev/zabbrev/pattern"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "emit/zap: " + string(e) }

// Write emits best, in order, as ZAP source.
func Write(w io.Writer, best []*pattern.Pattern) error {
	for i, p := range best {
		text := strings.ReplaceAll(restore(p.Key), "\"", "\"\"")
		if _, err := fmt.Fprintf(w, ".FSTR FSTR?%d,\"%s\" ; %d×%d, saved %d\n", i, text, p.Freq, p.Cost, p.Savings); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "WORDS::"); err != nil {
		return err
	}
	for i := range best {
		if _, err := fmt.Fprintf(w, "\t!FSTR?%d\n", i); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, ".ENDI")
	return err
}

// restore substitutes the engine's sentinel runes back to their literal
// space/quote/newline characters (spec.md §6 "space, quote, LF are
// restored").
func restore(key string) string {
	s := strings.ReplaceAll(key, string(alphabet.SpaceSentinel), " ")
	s = strings.ReplaceAll(s, string(alphabet.QuoteSentinel), "\"")
	s = strings.ReplaceAll(s, string(alphabet.NewlineSentinel), "\n")
	return s
}
