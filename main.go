/*
 * lc3sim - Main process.
 *
 * Copyright (c) 2025, lc3sim contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/wpkelso/lc3sim/command/parser"
	"github.com/wpkelso/lc3sim/command/reader"
	"github.com/wpkelso/lc3sim/harness"
	logger "github.com/wpkelso/lc3sim/internal/logger"
	"github.com/wpkelso/lc3sim/loader"
	"github.com/wpkelso/lc3sim/machine"
	"github.com/wpkelso/lc3sim/machine/core"
	"github.com/wpkelso/lc3sim/machine/instrcache"
	"github.com/wpkelso/lc3sim/machine/rescache"
	"github.com/wpkelso/lc3sim/osimage"
)

var Logger *slog.Logger

func newBackend(name string) machine.Machine {
	switch name {
	case "core":
		return core.New()
	case "rescache":
		return rescache.New()
	case "instrcache":
		return instrcache.New()
	default:
		return nil
	}
}

func newHarness(name string) harness.Harness {
	switch name {
	case "stream":
		return harness.NewStreamIO(os.Stdin, os.Stdout)
	case "ignore":
		return harness.IgnoreIO{}
	case "fail":
		return harness.FailIO{}
	default:
		return nil
	}
}

func main() {
	optBackend := getopt.StringLong("backend", 'b', "core", "Executor backend: core, rescache, instrcache")
	optHarness := getopt.StringLong("io", 'i', "stream", "I/O harness: stream, ignore, fail")
	optNoOS := getopt.BoolLong("no-os", 0, "Skip installing the built-in OS trap handlers")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Echo every log record to stderr")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.SetParameters("object-file ...")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			slog.Error("cannot create log file", "path", *optLogFile, "error", err)
			os.Exit(1)
		}
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, *optDebug))
	slog.SetDefault(Logger)

	Logger.Info("lc3sim started", "backend", *optBackend, "io", *optHarness)

	m := newBackend(*optBackend)
	if m == nil {
		Logger.Error("unknown backend", "backend", *optBackend)
		os.Exit(1)
	}

	h := newHarness(*optHarness)
	if h == nil {
		Logger.Error("unknown io harness", "io", *optHarness)
		os.Exit(1)
	}

	if !*optNoOS {
		osimage.Install(m)
	}

	for _, path := range getopt.Args() {
		f, err := os.Open(path)
		if err != nil {
			Logger.Error("cannot open object file", "path", path, "error", err)
			os.Exit(1)
		}
		n, err := loader.LoadInto(f, m)
		f.Close()
		if err != nil {
			Logger.Error("cannot load object file", "path", path, "error", err)
			os.Exit(1)
		}
		Logger.Info("loaded object file", "path", path, "words", n)
	}

	sess := parser.NewSession(m, h)
	reader.Console(sess)
}
