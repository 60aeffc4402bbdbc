// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package zap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestScanIgnoresFreqFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "game_freq.zap", `.GSTR STR?1,"should not appear"`+"\n")
	writeFile(t, dir, "game.zap", ".NEW 5\n"+
		`.GSTR STR?1,"a packed string"`+"\n"+
		`.STRL STR?2,"an object description"`+"\n"+
		`PRINTI "an inline string",CR`+"\n")

	res, err := Scan(dir)
	require.NoError(t, err)
	require.Equal(t, 5, res.Version)
	require.Len(t, res.Corpus.Strings, 3)
	require.True(t, res.Corpus.Strings[0].Packed)
	require.True(t, res.Corpus.Strings[1].ObjectDescription)
	require.False(t, res.Corpus.Strings[2].Packed)
	require.False(t, res.Corpus.Strings[2].ObjectDescription)
}

func TestExtractBracketedHandlesDoubledQuote(t *testing.T) {
	text, ok := extractBracketed(`.GSTR STR?1,"she said ""hi"" today"`)
	require.True(t, ok)
	require.Equal(t, `she said "hi" today`, text)
}
