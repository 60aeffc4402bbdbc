// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package infodump ingests the combined output of Infodump (`-io`, object
// descriptions) and TXD (`-ag`, disassembly with inline PRINT strings) as a
// fallback source path when no Inform6 gametext.txt transcript is available
// (spec.md §6).
package infodump

import (
	"bufio"
	"os"
	"strings"

	"github.com/ifzabbrev/zabbrev/corpus"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "ingest/infodump: " + string(e) }

// Scan reads infodumpPath and txdPath, either of which may be empty to skip
// that half of the ingest.
func Scan(infodumpPath, txdPath string) (*corpus.Corpus, error) {
	cor := corpus.New()
	if infodumpPath != "" {
		if err := scanInfodump(infodumpPath, cor); err != nil {
			return nil, err
		}
	}
	if txdPath != "" {
		if err := scanTXD(txdPath, cor); err != nil {
			return nil, err
		}
	}
	return cor, nil
}

// scanInfodump reads Infodump's -io object-description listing, one
// `Description: "..."` line per object.
func scanInfodump(path string, cor *corpus.Corpus) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	const prefix = "Description: \""
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		text := strings.TrimSuffix(strings.TrimPrefix(line, prefix), "\"")
		if _, err := cor.AddString(text, false, true, corpus.NoRoutine); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// scanTXD reads TXD's -ag disassembly: PRINT/PRINT_RET strings in the code
// area are inline; a matching set of strings after "End of code" is packed
// and lives in high memory (spec.md §6).
func scanTXD(path string, cor *corpus.Corpus) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	afterCode := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "End of code" {
			afterCode = true
			continue
		}
		text, ok := extractPrint(line)
		if !ok {
			continue
		}
		if _, err := cor.AddString(text, afterCode, false, corpus.NoRoutine); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func extractPrint(line string) (string, bool) {
	for _, kw := range []string{"PRINT ", "PRINT_RET "} {
		if strings.HasPrefix(line, kw) {
			rest := strings.TrimSpace(strings.TrimPrefix(line, kw))
			return strings.Trim(rest, "\""), true
		}
	}
	return "", false
}
