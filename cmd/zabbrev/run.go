// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ifzabbrev/zabbrev"
	"github.com/ifzabbrev/zabbrev/alphabet"
	"github.com/ifzabbrev/zabbrev/corpus"
	"github.com/ifzabbrev/zabbrev/diagnostics"
	"github.com/ifzabbrev/zabbrev/emit/inform6"
	"github.com/ifzabbrev/zabbrev/emit/zap"
	"github.com/ifzabbrev/zabbrev/ingest/encoding"
	ingestinform6 "github.com/ifzabbrev/zabbrev/ingest/inform6"
	"github.com/ifzabbrev/zabbrev/ingest/infodump"
	ingestzap "github.com/ifzabbrev/zabbrev/ingest/zap"
	"github.com/ifzabbrev/zabbrev/refine"
	"github.com/ifzabbrev/zabbrev/selector"
	"github.com/ifzabbrev/zabbrev/zconfig"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// log returns an addressable copy of the diagnostics package logger so its
// pointer-receiver methods (Warn, Error, ...) can be called directly.
func log() *zerolog.Logger {
	l := diagnostics.Logger()
	return &l
}

func cmdRun(cmd *cobra.Command, args []string) {
	if fVerbose {
		diagnostics.Set(diagnostics.Logger().Level(zerolog.InfoLevel))
	} else {
		diagnostics.Set(diagnostics.Logger().Level(zerolog.WarnLevel))
	}

	config, err := zconfig.Load(cleanPath(fConfigPath))
	if err != nil {
		log().Warn().Err(err).Msg("failed to parse config file, using defaults")
	}
	applyFlagOverrides(cmd, config)

	target := cleanPath(args[0])
	if !dirExists(target) && !fileExists(target) {
		fatal("%s: not found", target)
	}

	charset := parseCharset(fCharset)

	cor, version, inform6Style, err := ingestCorpus(target, charset)
	if err != nil {
		log().Error().Err(err).Msg("ingest failed")
		os.Exit(-1)
	}
	if len(cor.Strings) == 0 {
		fmt.Fprintln(os.Stderr, "no strings found in", target)
		os.Exit(-1)
	}

	if version == 0 || cmd.Flags().Changed("version") {
		version = config.Selection.Version
	}
	if version == 0 {
		version = 5
	}

	model := buildModel(config)

	refineLevel, numPasses, numDeep := parseCompressLevel(fCompress, refine.Level(config.Selection.RefineLevel))

	n := config.Selection.N
	if n == 0 {
		n = selector.DefaultN
	}

	opts := zabbrev.Options{
		N:                   n,
		Version:             version,
		ForceR3:             config.Selection.ForceR3,
		ThrowBackLowScorers: config.Selection.ThrowBackLowScorers,
		RefineLevel:         refineLevel,
		NumPasses:           numPasses,
		NumDeepPasses:       numDeep,
		OnlyRefactor:        config.Output.OnlyRefactor,
		CustomAlphabet:      config.Alphabet.Enabled,
	}

	driver := zabbrev.NewDriver(cor, model, opts)
	if err := driver.Run(); err != nil {
		log().Error().Err(err).Msg("selection run failed")
		os.Exit(-1)
	}

	if fDebug != "" {
		writeDebugSnapshot(driver)
	}

	dialect := resolveDialect(config.Output.Dialect, inform6Style || config.Output.ForceInform6)
	if err := emitResult(driver, dialect); err != nil {
		log().Error().Err(err).Msg("emit failed")
		os.Exit(-1)
	}
	driver.MarkEmitted()
}

// applyFlagOverrides lets an explicitly-set CLI flag win over the loaded
// config file, and the config file win over the engine's own defaults
// (spec.md §6 "--config file ... CLI flags override values it sets").
func applyFlagOverrides(cmd *cobra.Command, config *zconfig.Config) {
	flags := cmd.Flags()
	if flags.Changed("n") {
		config.Selection.N = fN
	}
	if flags.Changed("version") {
		config.Selection.Version = fVersion
	}
	if flags.Changed("r3") {
		config.Selection.ForceR3 = fForceR3
	}
	if flags.Changed("b") {
		config.Selection.ThrowBackLowScorers = fThrowBack
	}
	if flags.Changed("a") {
		config.Alphabet.Enabled = fCustomAlpha
	}
	if flags.Changed("o") {
		config.Output.Dialect = fOutputDialect
	}
	if flags.Changed("onlyrefactor") {
		config.Output.OnlyRefactor = fOnlyRefactor
	}
	if flags.Changed("i") {
		config.Output.ForceInform6 = fForceInform6
	}
}

func resolveDialect(dialect string, forceInform6 bool) string {
	resolved := "input"
	switch dialect {
	case "0", "input", "":
	case "1", "inform":
		resolved = "inform"
	case "2", "zap", "ZAP":
		resolved = "zap"
	default:
		log().Warn().Str("dialect", dialect).Msg("unrecognized output dialect, defaulting to input style")
	}
	if resolved == "input" && forceInform6 {
		return "inform"
	}
	return resolved
}

func parseCharset(s string) encoding.Charset {
	switch strings.ToLower(s) {
	case "utf8", "u":
		return encoding.UTF8
	case "latin1", "c1", "c0":
		return encoding.Latin1
	default:
		return encoding.Auto
	}
}

// parseCompressLevel maps the -x flag onto a refine.Level and its pass
// budgets (spec.md §6 "-x0|-x1|-x2 [n]|-x3 [n1] [n2]"; defaults
// 10 000/1 000 per spec.md §4.F).
func parseCompressLevel(x string, configLevel refine.Level) (refine.Level, int, int) {
	numPasses, numDeep := refine.DefaultNumPasses, refine.DefaultNumDeepPasses
	if x == "" {
		return configLevel, numPasses, numDeep
	}
	fields := strings.Fields(strings.ReplaceAll(x, ":", " "))
	if len(fields) == 0 {
		return configLevel, numPasses, numDeep
	}
	switch fields[0] {
	case "0":
		return refine.LevelNone, numPasses, numDeep
	case "1":
		return refine.LevelBoundary, numPasses, numDeep
	case "2":
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				numPasses = n
			}
		}
		return refine.LevelNormal, numPasses, numDeep
	case "3":
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				numPasses = n
			}
		}
		if len(fields) > 2 {
			if n, err := strconv.Atoi(fields[2]); err == nil {
				numDeep = n
			}
		}
		return refine.LevelMaximum, numPasses, numDeep
	default:
		log().Warn().Str("x", x).Msg("unrecognized compression level, using config default")
		return configLevel, numPasses, numDeep
	}
}

func buildModel(config *zconfig.Config) *alphabet.Model {
	a0Str, a1Str, a2Str := fA0, fA1, fA2
	if a0Str == "" {
		a0Str = config.Alphabet.A0
	}
	if a1Str == "" {
		a1Str = config.Alphabet.A1
	}
	if a2Str == "" {
		a2Str = config.Alphabet.A2
	}
	if a0Str == "" && a1Str == "" && a2Str == "" {
		return alphabet.NewDefaultModel()
	}
	a0, err0 := parseAlphabetArg(a0Str, alphabet.DefaultA0[:])
	a1, err1 := parseAlphabetArg(a1Str, alphabet.DefaultA1[:])
	a2, err2 := parseA2Arg(a2Str)
	if err0 != nil || err1 != nil || err2 != nil {
		log().Warn().Msg("explicit alphabet argument has the wrong length, falling back to the default alphabet")
		return alphabet.NewDefaultModel()
	}
	var arr0, arr1 [26]rune
	copy(arr0[:], a0)
	copy(arr1[:], a1)
	return alphabet.NewModel(arr0, arr1, a2)
}

func parseAlphabetArg(s string, fallback []rune) ([]rune, error) {
	if s == "" {
		return fallback, nil
	}
	runes := []rune(s)
	if len(runes) != len(fallback) {
		return nil, fmt.Errorf("expected %d characters, got %d", len(fallback), len(runes))
	}
	return runes, nil
}

// a2ReservedIndices are the three DefaultA2 slots a custom alphabet may not
// reassign (spec.md §4.A: "three slots are reserved for an escape, newline,
// and quote"), so an explicit "-a2" argument supplies only the remaining 23
// characters (spec.md §6 "-a2 s23").
var a2ReservedIndices = map[int]bool{0: true, 1: true, 19: true}

func parseA2Arg(s string) ([26]rune, error) {
	var out [26]rune
	copy(out[:], alphabet.DefaultA2[:])
	if s == "" {
		return out, nil
	}
	runes := []rune(s)
	if len(runes) != 23 {
		return out, fmt.Errorf("expected 23 characters, got %d", len(runes))
	}
	i := 0
	for idx := range out {
		if a2ReservedIndices[idx] {
			continue
		}
		out[idx] = runes[i]
		i++
	}
	return out, nil
}

// ingestCorpus dispatches to the ZAP, Inform6 or Infodump+TXD adapter
// depending on flags and what target looks like (spec.md §6), applying the
// requested (or auto-detected) charset to every source file first.
func ingestCorpus(target string, charset encoding.Charset) (*corpus.Corpus, int, bool, error) {
	switch {
	case fInfodump != "" || fTXD != "":
		infodumpPath, cleanup1, err := decodeToTemp(cleanPath(fInfodump), charset)
		if err != nil {
			return nil, 0, false, err
		}
		defer cleanup1()
		txdPath, cleanup2, err := decodeToTemp(cleanPath(fTXD), charset)
		if err != nil {
			return nil, 0, false, err
		}
		defer cleanup2()
		cor, err := infodump.Scan(infodumpPath, txdPath)
		return cor, 0, false, err

	case fForceInform6 || looksLikeInform6(target):
		path := target
		if dirExists(target) {
			path = filepath.Join(target, "gametext.txt")
		}
		decoded, cleanup, err := decodeToTemp(path, charset)
		if err != nil {
			return nil, 0, false, err
		}
		defer cleanup()
		res, err := ingestinform6.Scan(decoded)
		if err != nil {
			return nil, 0, false, err
		}
		return res.Corpus, res.Version, true, nil

	default:
		dir := target
		if fileExists(target) {
			dir = filepath.Dir(target)
		}
		decodedDir, cleanup, err := decodeDirToTemp(dir, charset)
		if err != nil {
			return nil, 0, false, err
		}
		defer cleanup()
		res, err := ingestzap.Scan(decodedDir)
		if err != nil {
			return nil, 0, false, err
		}
		return res.Corpus, res.Version, false, nil
	}
}

func looksLikeInform6(target string) bool {
	if strings.HasSuffix(target, "gametext.txt") {
		return true
	}
	return fileExists(filepath.Join(target, "gametext.txt"))
}

// decodeToTemp copies path through ingest/encoding.Decode into a scratch
// file so a downstream scanner reading it with encoding/text conventions
// sees a clean UTF-8 stream regardless of the source's charset (spec.md §6
// "Encoding detection"). Returns path itself, unmodified, when it is empty.
func decodeToTemp(path string, charset encoding.Charset) (string, func(), error) {
	noop := func() {}
	if path == "" {
		return "", noop, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", noop, err
	}
	decoded := encoding.Decode(raw, charset)
	f, err := os.CreateTemp("", "zabbrev-decode-*"+filepath.Ext(path))
	if err != nil {
		return "", noop, err
	}
	if _, err := f.WriteString(decoded); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", noop, err
	}
	f.Close()
	return f.Name(), func() { os.Remove(f.Name()) }, nil
}

func decodeDirToTemp(dir string, charset encoding.Charset) (string, func(), error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", func() {}, err
	}
	tmp, err := os.MkdirTemp("", "zabbrev-decode-dir-")
	if err != nil {
		return "", func() {}, err
	}
	cleanup := func() { os.RemoveAll(tmp) }
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".zap") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return "", cleanup, err
		}
		decoded := encoding.Decode(raw, charset)
		if err := os.WriteFile(filepath.Join(tmp, entry.Name()), []byte(decoded), 0o644); err != nil {
			return "", cleanup, err
		}
	}
	return tmp, cleanup, nil
}

func writeDebugSnapshot(d *zabbrev.Driver) {
	f, err := os.Create(cleanPath(fDebug))
	if err != nil {
		log().Warn().Err(err).Msg("could not open --debug output path")
		return
	}
	defer f.Close()

	keys := make([]string, len(d.Best))
	for i, p := range d.Best {
		keys[i] = p.Key
	}
	snap := diagnostics.Snapshot{
		Stage:          d.State.String(),
		CandidateCount: len(d.Candidates),
		SelectedKeys:   keys,
		TotalBytes:     d.TotalBytes,
		Fingerprint:    d.Fingerprint,
	}
	if err := diagnostics.WriteSnapshot(f, snap); err != nil {
		log().Warn().Err(err).Msg("failed to write --debug snapshot")
	}
}

func emitResult(d *zabbrev.Driver, dialect string) error {
	list := d.Best
	if d.Options.OnlyRefactor {
		list = d.LongHints
	}
	switch dialect {
	case "zap":
		return zap.Write(os.Stdout, list)
	case "inform":
		return inform6.Write(os.Stdout, list)
	default:
		return zap.Write(os.Stdout, list)
	}
}
