// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package zconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingPathReturnsDefault(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), config)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), config)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	want := DefaultConfig()
	want.Selection.N = 48
	want.Selection.ThrowBackLowScorers = true
	want.Output.Dialect = "zap"

	require.NoError(t, Save(want, path))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
