package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/config"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/engine"
)

// allWriter is any writer that handles every row stream.
type allWriter interface {
	engine.TickWriter
	engine.AttackWriter
	engine.ReportWriter
}

// tuiWriter holds the TUI writer when one was selected, so the run
// command can push admin status into it even through a MultiWriter.
var tuiWriter *engine.TUIWriter

// newWriters picks the output writer from the mode flag and env vars and
// optionally tees everything into JSONL log files. It returns the writers
// and a cleanup function to close any resources.
func newWriters(cfg *config.SimulationConfig, mode, logFile string) (engine.TickWriter, engine.AttackWriter, engine.ReportWriter, func(), error) {
	cleanup := func() {}

	base, closer, err := baseWriter(cfg, mode)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cleanup = closer

	if logFile == "" {
		return base, base, base, cleanup, nil
	}

	fw, err := engine.NewFileWriter(logFile, logFile+".attacks", logFile+".reports")
	if err != nil {
		closer()
		return nil, nil, nil, nil, err
	}
	mw := engine.NewMultiWriter(
		[]engine.TickWriter{base, fw},
		[]engine.AttackWriter{base, fw},
		[]engine.ReportWriter{base, fw},
	)
	cleanup = func() {
		fw.Close()
		closer()
	}
	return mw, mw, mw, cleanup, nil
}

// baseWriter chooses the primary output writer. Mode "auto" picks the
// color writer on a terminal and JSON lines otherwise; GreptimeDB wins
// whenever its endpoint is configured and the mode is not forced local.
func baseWriter(cfg *config.SimulationConfig, mode string) (allWriter, func(), error) {
	noop := func() {}
	if endpoint := os.Getenv("GREPTIMEDB_ENDPOINT"); endpoint != "" && (mode == "auto" || mode == "greptime") {
		db := os.Getenv("GREPTIMEDB_DATABASE")
		if db == "" {
			db = "public"
		}
		w, err := engine.NewGreptimeDBWriter(endpoint, db)
		if err != nil {
			return nil, nil, err
		}
		return w, noop, nil
	}

	switch mode {
	case "json":
		return engine.NewJSONStdoutWriter(), noop, nil
	case "color":
		return engine.NewColorStdoutWriter(cfg), noop, nil
	case "tui":
		w := engine.NewTUIWriter(cfg)
		tuiWriter = w
		return w, func() { w.Close() }, nil
	case "greptime":
		return nil, nil, fmt.Errorf("output mode greptime requires GREPTIMEDB_ENDPOINT")
	case "auto":
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return engine.NewColorStdoutWriter(cfg), noop, nil
		}
		return engine.NewJSONStdoutWriter(), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown output mode %q (auto, json, color, tui, greptime)", mode)
	}
}

// newTickWriter creates a tick writer only, for replay.
func newTickWriter(cfg *config.SimulationConfig, mode string) (engine.TickWriter, func(), error) {
	w, closer, err := baseWriter(cfg, mode)
	return w, closer, err
}
