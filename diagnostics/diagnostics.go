// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package diagnostics is the run's logging, fingerprinting and optional
// codec-comparison surface (spec.md §7, §9). Its logger is grounded on
// Consensys-gnark's logger package: a package-level zerolog.Logger with
// Set/Disable/Logger accessors. CorpusFingerprint adapts the teacher's own
// bzip2/common.go CRC-combine trick outside of bzip2; CompareGenericCodecs
// adapts the teacher's internal/benchmark comparison harness to run against
// the ingested interactive-fiction corpus instead of synthetic payloads.
package diagnostics

import (
	"bytes"
	"hash/crc32"
	"io"
	"os"
	"strings"

	"github.com/dsnet/golib/hashmerge"
	"github.com/klauspost/compress/flate"
	"github.com/rs/zerolog"
	"github.com/ulikunitz/xz"
	"github.com/vmihailenco/msgpack/v5"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "diagnostics: " + string(e) }

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger()
	if strings.HasSuffix(os.Args[0], ".test") {
		logger = zerolog.Nop()
	}
}

// SetOutput changes the output of the global logger.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// Set overrides the global logger.
func Set(l zerolog.Logger) {
	logger = l
}

// Disable silences all logging.
func Disable() {
	logger = zerolog.Nop()
}

// Logger returns the package's logger.
func Logger() zerolog.Logger {
	return logger
}

// CorpusFingerprint computes a single CRC-32 checksum from a sequence of
// per-string byte slices by combining their individual CRCs (spec.md §3
// "Supplemented data"), letting the caller fingerprint a corpus without
// concatenating it into one buffer first.
func CorpusFingerprint(texts [][]byte) uint32 {
	var crc uint32
	for _, t := range texts {
		partial := crc32.ChecksumIEEE(t)
		crc = hashmerge.CombineCRC32(crc32.IEEE, crc, partial, int64(len(t)))
	}
	return crc
}

// CodecResult is one row of a CompareGenericCodecs report.
type CodecResult struct {
	Name           string
	CompressedSize int
}

// CompareGenericCodecs runs generic byte-oriented compressors (flate,
// LZMA/xz) over data and reports their output size, for comparison against
// the abbreviation-based savings this engine reports (spec.md §9: "informal
// sanity check, never a decision input"). Errors from either codec are
// folded into a zero-size result rather than aborting the run: this report
// is diagnostic only.
func CompareGenericCodecs(data []byte) []CodecResult {
	results := make([]CodecResult, 0, 2)

	var flateBuf bytes.Buffer
	if w, err := flate.NewWriter(&flateBuf, flate.BestCompression); err == nil {
		w.Write(data)
		w.Close()
		results = append(results, CodecResult{Name: "flate", CompressedSize: flateBuf.Len()})
	} else {
		results = append(results, CodecResult{Name: "flate"})
	}

	var xzBuf bytes.Buffer
	if w, err := xz.NewWriter(&xzBuf); err == nil {
		w.Write(data)
		w.Close()
		results = append(results, CodecResult{Name: "xz", CompressedSize: xzBuf.Len()})
	} else {
		results = append(results, CodecResult{Name: "xz"})
	}

	return results
}

// Snapshot is the msgpack-serialized state dumped by the CLI's --debug flag
// (spec.md §3 "Supplemented data"): a picture of the selection run at some
// point in the driver's lifecycle, for offline inspection.
type Snapshot struct {
	Stage          string
	CandidateCount int
	SelectedKeys   []string
	TotalBytes     int
	NaiveSavings   int
	Fingerprint    uint32
}

// WriteSnapshot serializes s to w in msgpack form (spec.md §DOMAIN STACK:
// grounded on wordserve's dictionary-loader use of msgpack for its own
// on-disk format).
func WriteSnapshot(w io.Writer, s Snapshot) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(s)
}

// ReadSnapshot deserializes a snapshot previously written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	dec := msgpack.NewDecoder(r)
	err := dec.Decode(&s)
	return s, err
}
