// Copyright 2026, The zabbrev Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// zabbrev is a CLI tool that selects text abbreviations for a Z-machine
// game. Unlike gnark's multi-verb cmd package this is a single-purpose
// tool: rootCmd itself runs the pipeline, and flags are declared as
// package-level vars the way gnark declares fPkPath, fInputPath and
// friends.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	fN             int
	fCustomAlpha   bool
	fA0, fA1, fA2  string
	fForceR3       bool
	fVersion       int
	fCompress      string
	fThrowBack     bool
	fOutputDialect string
	fOnlyRefactor  bool
	fForceInform6  bool
	fInfodump      string
	fTXD           string
	fCharset       string
	fDebug         string
	fVerbose       bool
	fConfigPath    string
)

var rootCmd = &cobra.Command{
	Use:   "zabbrev [game-directory]",
	Short: "selects text abbreviations for a Z-machine game",
	Long: "zabbrev scans a compiled or transcribed Z-machine game's strings, " +
		"selects the abbreviation set that minimizes encoded text size under " +
		"the z-machine's rounding rules, and emits it as ZAP or Inform6 source.",
	Args: cobra.ExactArgs(1),
	Run:  cmdRun,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&fN, "n", 96, "number of abbreviations to select")
	rootCmd.PersistentFlags().BoolVar(&fCustomAlpha, "a", false, "build a custom alphabet (z-version 5+)")
	rootCmd.PersistentFlags().StringVar(&fA0, "a0", "", "explicit A0 alphabet (26 chars)")
	rootCmd.PersistentFlags().StringVar(&fA1, "a1", "", "explicit A1 alphabet (26 chars)")
	rootCmd.PersistentFlags().StringVar(&fA2, "a2", "", "explicit A2 alphabet (23 chars, excluding reserved slots)")
	rootCmd.PersistentFlags().BoolVar(&fForceR3, "r3", false, "force rounding unit 3 regardless of version")
	rootCmd.PersistentFlags().IntVar(&fVersion, "version", 0, "z-machine version 1-8 (auto-detected if 0)")
	rootCmd.PersistentFlags().StringVar(&fCompress, "x", "", "compression level: 0, 1, 2[:n], or 3[:n1:n2]")
	rootCmd.PersistentFlags().BoolVar(&fThrowBack, "b", false, "throw back low-scoring committed candidates during selection")
	rootCmd.PersistentFlags().StringVar(&fOutputDialect, "o", "input", "output dialect: input, inform, or zap")
	rootCmd.PersistentFlags().BoolVar(&fOnlyRefactor, "onlyrefactor", false, "skip selection, emit the long-duplicate report only")
	rootCmd.PersistentFlags().BoolVar(&fForceInform6, "i", false, "force Inform6 input style (auto-detected)")
	rootCmd.PersistentFlags().StringVar(&fInfodump, "infodump", "", "path to an Infodump -io listing")
	rootCmd.PersistentFlags().StringVar(&fTXD, "txd", "", "path to a TXD -ag disassembly")
	rootCmd.PersistentFlags().StringVar(&fCharset, "c", "auto", "input charset: auto, utf8, or latin1")
	rootCmd.PersistentFlags().StringVar(&fDebug, "debug", "", "write a msgpack pipeline snapshot to this path")
	rootCmd.PersistentFlags().BoolVarP(&fVerbose, "verbose", "v", false, "enable diagnostic logging")
	rootCmd.PersistentFlags().StringVar(&fConfigPath, "config", "", "load a TOML run configuration")
}

// Execute runs the root command and exits the process with a non-zero
// status if it fails; main's only job is to call this.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(-1)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, fmt.Sprintf(format, args...))
	os.Exit(-1)
}

func cleanPath(p string) string {
	if p == "" {
		return p
	}
	return filepath.Clean(p)
}
