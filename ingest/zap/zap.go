// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package zap ingests ZAP assembly source (spec.md §6): every .zap file in
// a game directory not carrying "_freq" in its name, scanning .GSTR, .STRL,
// PRINTI and PRINTR directives for their bracketed string argument.
package zap

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ifzabbrev/zabbrev/alphabet"
	"github.com/ifzabbrev/zabbrev/corpus"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "ingest/zap: " + string(e) }

// Result is the outcome of a directory scan: the ingested corpus and any
// z-version the scan detected via .NEW.
type Result struct {
	Corpus  *corpus.Corpus
	Version int // 0 if no .NEW directive was seen
}

// Scan walks dir non-recursively, ingesting every eligible .zap file.
func Scan(dir string) (*Result, error) {
	cor := corpus.New()
	version := 0

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".zap") || strings.Contains(name, "_freq") {
			continue
		}
		v, err := scanFile(filepath.Join(dir, name), cor)
		if err != nil {
			return nil, err
		}
		if v != 0 {
			version = v
		}
	}
	return &Result{Corpus: cor, Version: version}, nil
}

func scanFile(path string, cor *corpus.Corpus) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	// Raw space and quote become the engine's sentinels (emit/zap restores them).
	sentinels := strings.NewReplacer(" ", string(alphabet.SpaceSentinel), "\"", string(alphabet.QuoteSentinel))

	version := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(trimmed, ".NEW"):
			fields := strings.Fields(trimmed)
			if len(fields) >= 2 {
				if n, err := strconv.Atoi(fields[1]); err == nil {
					version = n
				}
			}
		case strings.HasPrefix(trimmed, ".GSTR"):
			if text, ok := extractBracketed(trimmed); ok {
				if _, err := cor.AddString(sentinels.Replace(text), true, false, corpus.NoRoutine); err != nil {
					return version, err
				}
			}
		case strings.HasPrefix(trimmed, ".STRL"):
			if text, ok := extractBracketed(trimmed); ok {
				if _, err := cor.AddString(sentinels.Replace(text), false, true, corpus.NoRoutine); err != nil {
					return version, err
				}
			}
		case strings.HasPrefix(trimmed, "PRINTI"), strings.HasPrefix(trimmed, "PRINTR"):
			if text, ok := extractBracketed(trimmed); ok {
				if _, err := cor.AddString(sentinels.Replace(text), false, false, corpus.NoRoutine); err != nil {
					return version, err
				}
			}
		}
	}
	return version, scanner.Err()
}

// extractBracketed returns the quoted string argument of a directive line,
// treating a doubled quote as a single escaped quote (spec.md §6).
func extractBracketed(line string) (string, bool) {
	start := strings.IndexByte(line, '"')
	if start < 0 {
		return "", false
	}
	var sb strings.Builder
	i := start + 1
	for i < len(line) {
		if line[i] == '"' {
			if i+1 < len(line) && line[i+1] == '"' {
				sb.WriteByte('"')
				i += 2
				continue
			}
			return sb.String(), true
		}
		sb.WriteByte(line[i])
		i++
	}
	return sb.String(), true
}
