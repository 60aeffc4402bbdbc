// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package corpus

import (
	"testing"

	"github.com/ifzabbrev/zabbrev/gsuffix"
	"github.com/stretchr/testify/require"
)

func TestRoundingUnit(t *testing.T) {
	tests := []struct {
		name     string
		packed   bool
		version  int
		forceR3  bool
		expected int
	}{
		{"inline always R3 regardless of version", false, 8, false, 3},
		{"inline always R3 even with low version", false, 1, false, 3},
		{"packed version 1-3 is R3", true, 3, false, 3},
		{"packed version 4 is R6", true, 4, false, 6},
		{"packed version 7 is R6", true, 7, false, 6},
		{"packed version 8 is R12", true, 8, false, 12},
		{"forceR3 overrides packed high version", true, 8, true, 3},
		{"forceR3 is a no-op on inline strings", false, 8, true, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &StringRecord{Packed: tc.packed}
			require.Equal(t, tc.expected, RoundingUnit(s, tc.version, tc.forceR3))
		})
	}
}

func TestConcatAssignsLatin1IdentityBytes(t *testing.T) {
	c := New()
	_, err := c.AddString("abc", false, false, NoRoutine)
	require.NoError(t, err)

	data, err := c.Concat()
	require.NoError(t, err)
	require.Equal(t, []byte{'a', 'b', 'c', gsuffix.Separator}, data)
}

func TestConcatInternsNonLatin1Runes(t *testing.T) {
	c := New()
	_, err := c.AddString("caf€", false, false, NoRoutine)
	require.NoError(t, err)

	data, err := c.Concat()
	require.NoError(t, err)
	require.Len(t, data, 5) // 4 runes + separator
	require.Equal(t, rune('€'), c.RuneAt(data[3]))
}

func TestConcatReturnsErrTooManySymbols(t *testing.T) {
	c := New()
	// 256 distinct characters exceed the 255 byte values left once the
	// separator (0x0B) claims one slot.
	count := 0
	for r := rune(1); count < 256; r++ {
		if byte(r) == gsuffix.Separator {
			continue
		}
		_, err := c.AddString(string(r), false, false, NoRoutine)
		require.NoError(t, err)
		count++
	}

	_, err := c.Concat()
	require.ErrorIs(t, err, ErrTooManySymbols)
}

func TestAddStringRejectsSeparatorInText(t *testing.T) {
	c := New()
	_, err := c.AddString(string(rune(gsuffix.Separator)), false, false, NoRoutine)
	require.ErrorIs(t, err, ErrSeparatorInText)
}
