package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/engine"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/telemetry"
)

func TestNewWritersJSONMode(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	tw, aw, rw, cleanup, err := newWriters(nil, "json", "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := tw.(*engine.JSONStdoutWriter); !ok {
		t.Fatalf("expected *engine.JSONStdoutWriter, got %T", tw)
	}
	if _, ok := aw.(*engine.JSONStdoutWriter); !ok {
		t.Fatalf("expected attack writer *engine.JSONStdoutWriter, got %T", aw)
	}
	if _, ok := rw.(*engine.JSONStdoutWriter); !ok {
		t.Fatalf("expected report writer *engine.JSONStdoutWriter, got %T", rw)
	}
}

func TestNewWritersGreptimeFallback(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	_, _, _, cleanup, err := newWriters(nil, "greptime", "")
	if err == nil {
		cleanup()
		t.Fatalf("expected error for greptime mode without endpoint")
	}
}

func TestNewWritersUnknownMode(t *testing.T) {
	_, _, _, _, err := newWriters(nil, "punchcard", "")
	if err == nil {
		t.Fatalf("expected error for unknown output mode")
	}
}

func TestNewWritersLogFile(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "ticks.log")
	tw, aw, _, cleanup, err := newWriters(nil, "json", path)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := tw.(*engine.MultiWriter); !ok {
		t.Fatalf("expected *engine.MultiWriter, got %T", tw)
	}

	row := telemetry.TickRow{SessionID: "s1", Level: "first-blood", Tick: 1, Timestamp: time.Now()}
	if err := tw.WriteTick(row); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	event := telemetry.AttackRow{SessionID: "s1", AttackID: "a1", Type: "ddos", Event: "launched", Timestamp: time.Now()}
	if err := aw.WriteAttack(event); err != nil {
		t.Fatalf("write attack failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected log file to be non-empty")
	}
	attackInfo, err := os.Stat(path + ".attacks")
	if err != nil {
		t.Fatalf("stat attacks failed: %v", err)
	}
	if attackInfo.Size() == 0 {
		t.Fatalf("expected attack file to be non-empty")
	}
}
