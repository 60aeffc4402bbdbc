// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package inform6 ingests an Inform6 gametext.txt transcript (spec.md §6),
// produced by `inform6 -r $TRANSCRIPT_FORMAT=1`: one `X:text` line per
// string, X naming its source category.
package inform6

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ifzabbrev/zabbrev/alphabet"
	"github.com/ifzabbrev/zabbrev/corpus"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "ingest/inform6: " + string(e) }

// metaClassObjectCount is how many leading 'O' lines are the metaclass
// artifacts (Class, Object, Routine, String) defined before any user
// abbreviation exists, and so must be dropped (spec.md §6).
const metaClassObjectCount = 4

var (
	versionRe = regexp.MustCompile(`Compiled Z-machine version (\d+)`)
	sizeRe    = regexp.MustCompile(`without inline strings size: (\d+)`)
)

// Result is the outcome of a transcript scan.
type Result struct {
	Corpus  *corpus.Corpus
	Version int
}

// Scan reads the transcript at path.
func Scan(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cor := corpus.New()
	version := 0
	routineID := 0
	objectLines := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 2 || line[1] != ':' {
			continue
		}
		tag, text := line[0], line[2:]

		switch tag {
		case 'I':
			if m := versionRe.FindStringSubmatch(text); m != nil {
				version, _ = strconv.Atoi(m[1])
			}
			if m := sizeRe.FindStringSubmatch(text); m != nil {
				size, _ := strconv.Atoi(m[1])
				cor.RoutineSizes[routineID] = size
				routineID++
			}
		case 'G', 'V', 'S':
			if _, err := cor.AddString(sentinelize(text), true, false, corpus.NoRoutine); err != nil {
				return nil, err
			}
		case 'O':
			objectLines++
			if objectLines <= metaClassObjectCount {
				continue
			}
			if _, err := cor.AddString(sentinelize(text), false, true, corpus.NoRoutine); err != nil {
				return nil, err
			}
		case 'H':
			if _, err := cor.AddString(sentinelize(text), false, false, routineID); err != nil {
				return nil, err
			}
		case 'L', 'W':
			if _, err := cor.AddString(sentinelize(text), false, false, corpus.NoRoutine); err != nil {
				return nil, err
			}
		}
	}
	return &Result{Corpus: cor, Version: version}, scanner.Err()
}

// sentinelize maps a transcript's ^/~/space markers to the engine's LF,
// quote and space sentinel runes (spec.md §6).
func sentinelize(text string) string {
	var sb strings.Builder
	for _, r := range text {
		switch r {
		case '^':
			sb.WriteRune(alphabet.NewlineSentinel)
		case '~':
			sb.WriteRune(alphabet.QuoteSentinel)
		case ' ':
			sb.WriteRune(alphabet.SpaceSentinel)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
