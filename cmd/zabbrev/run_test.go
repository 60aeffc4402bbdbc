// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ifzabbrev/zabbrev/ingest/encoding"
	"github.com/ifzabbrev/zabbrev/refine"
	"github.com/stretchr/testify/require"
)

func TestParseCharset(t *testing.T) {
	require.Equal(t, encoding.UTF8, parseCharset("utf8"))
	require.Equal(t, encoding.Latin1, parseCharset("latin1"))
	require.Equal(t, encoding.Auto, parseCharset("auto"))
	require.Equal(t, encoding.Auto, parseCharset(""))
}

func TestParseCompressLevel(t *testing.T) {
	level, passes, deep := parseCompressLevel("0", refine.LevelNormal)
	require.Equal(t, refine.LevelNone, level)
	require.Equal(t, refine.DefaultNumPasses, passes)
	require.Equal(t, refine.DefaultNumDeepPasses, deep)

	level, passes, _ = parseCompressLevel("2:5000", refine.LevelNormal)
	require.Equal(t, refine.LevelNormal, level)
	require.Equal(t, 5000, passes)

	level, passes, deep = parseCompressLevel("3:100:20", refine.LevelNormal)
	require.Equal(t, refine.LevelMaximum, level)
	require.Equal(t, 100, passes)
	require.Equal(t, 20, deep)

	level, _, _ = parseCompressLevel("", refine.LevelBoundary)
	require.Equal(t, refine.LevelBoundary, level)
}

func TestResolveDialect(t *testing.T) {
	require.Equal(t, "inform", resolveDialect("input", true))
	require.Equal(t, "zap", resolveDialect("2", false))
	require.Equal(t, "inform", resolveDialect("inform", false))
	require.Equal(t, "input", resolveDialect("garbage", false))
}

func TestParseA2ArgRespectsReservedSlots(t *testing.T) {
	custom := "0123456789.,!?_#'\"/\\-:()"[:23]
	out, err := parseA2Arg(custom)
	require.NoError(t, err)
	require.Equal(t, rune(0), out[0])
	require.Equal(t, '\n', out[1])
	require.Equal(t, '"', out[19])
}

func TestParseA2ArgWrongLengthErrors(t *testing.T) {
	_, err := parseA2Arg("short")
	require.Error(t, err)
}

func TestDecodeToTempRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte{'h', 0xe9, 'l', 'l', 'o'}, 0o644))

	decoded, cleanup, err := decodeToTemp(path, encoding.Auto)
	require.NoError(t, err)
	defer cleanup()

	got, err := os.ReadFile(decoded)
	require.NoError(t, err)
	require.Equal(t, "héllo", string(got))
}

func TestDecodeToTempEmptyPathIsNoop(t *testing.T) {
	got, cleanup, err := decodeToTemp("", encoding.Auto)
	require.NoError(t, err)
	defer cleanup()
	require.Empty(t, got)
}
