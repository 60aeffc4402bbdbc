// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package diagnostics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCorpusFingerprintDeterministic(t *testing.T) {
	texts := [][]byte{[]byte("the cat sat"), []byte("the dog ran")}
	a := CorpusFingerprint(texts)
	b := CorpusFingerprint(texts)
	require.Equal(t, a, b)
}

func TestCorpusFingerprintOrderSensitive(t *testing.T) {
	a := CorpusFingerprint([][]byte{[]byte("the cat"), []byte("the dog")})
	b := CorpusFingerprint([][]byte{[]byte("the dog"), []byte("the cat")})
	require.NotEqual(t, a, b)
}

func TestCompareGenericCodecsReportsBothCodecs(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox "), 100)
	results := CompareGenericCodecs(data)
	require.Len(t, results, 2)
	require.Equal(t, "flate", results[0].Name)
	require.Equal(t, "xz", results[1].Name)
	require.Greater(t, results[0].CompressedSize, 0)
}

func TestSnapshotRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := Snapshot{
		Stage:          "Selected",
		CandidateCount: 42,
		SelectedKeys:   []string{"the·", "and·"},
		TotalBytes:     1024,
		NaiveSavings:   256,
		Fingerprint:    0xdeadbeef,
	}
	require.NoError(t, WriteSnapshot(&buf, want))

	got, err := ReadSnapshot(&buf)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
