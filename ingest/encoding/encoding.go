// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package encoding resolves the character set of ingested source text
// (spec.md §6): auto-detect UTF-8 by strict decode, falling back to
// Latin-1, or take an explicit override from the CLI's -c0/-cu/-c1 flags.
package encoding

import "unicode/utf8"

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "ingest/encoding: " + string(e) }

// Charset selects how Decode interprets raw bytes.
type Charset int

const (
	// Auto tries UTF-8 first, falling back to Latin-1 on invalid input.
	Auto Charset = iota
	// UTF8 forces UTF-8 interpretation (-cu); the bytes are taken as they
	// are, without validation.
	UTF8
	// Latin1 forces one-byte-per-character Latin-1 interpretation (-c1, -c0).
	Latin1
)

// Decode interprets data under charset, returning the resulting text.
func Decode(data []byte, charset Charset) string {
	switch charset {
	case UTF8:
		return string(data)
	case Latin1:
		return latin1ToString(data)
	default:
		if utf8.Valid(data) {
			return string(data)
		}
		return latin1ToString(data)
	}
}

func latin1ToString(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
