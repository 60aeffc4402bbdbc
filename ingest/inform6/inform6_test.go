// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package inform6

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ifzabbrev/zabbrev/alphabet"
	"github.com/ifzabbrev/zabbrev/corpus"
	"github.com/stretchr/testify/require"
)

func TestScanClassifiesLinesByTag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gametext.txt")
	content := "I:[Compiled Z-machine version 5]\n" +
		"O:Class\n" +
		"O:Object\n" +
		"O:Routine\n" +
		"O:String\n" +
		"O:a real object description\n" +
		"G:a global string\n" +
		"H:a routine string\n" +
		"I: without inline strings size: 40 \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	res, err := Scan(path)
	require.NoError(t, err)
	require.Equal(t, 5, res.Version)

	var objectCount, packedCount, routineCount int
	for _, s := range res.Corpus.Strings {
		if s.ObjectDescription {
			objectCount++
		}
		if s.Packed {
			packedCount++
		}
		if s.RoutineID != corpus.NoRoutine {
			routineCount++
		}
	}
	require.Equal(t, 1, objectCount, "the four metaclass O: lines must be dropped")
	require.Equal(t, 1, packedCount)
	require.Equal(t, 1, routineCount)
	require.Equal(t, 40, res.Corpus.RoutineSizes[0])
}

func TestSentinelizeMapsMarkers(t *testing.T) {
	got := sentinelize("a b^c~d")
	want := "a" + string(alphabet.SpaceSentinel) + "b" +
		string(alphabet.NewlineSentinel) + "c" +
		string(alphabet.QuoteSentinel) + "d"
	require.Equal(t, want, got)
}
