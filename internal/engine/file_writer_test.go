package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/telemetry"
)

func TestFileWriter(t *testing.T) {
	dir := t.TempDir()
	ts := time.Unix(0, 0).UTC()

	tickPath := filepath.Join(dir, "ticks.json")
	attackPath := filepath.Join(dir, "attacks.json")
	reportPath := filepath.Join(dir, "reports.json")

	fw, err := NewFileWriter(tickPath, attackPath, reportPath)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}

	tickRow := telemetry.TickRow{SessionID: "s1", Tick: 3, Credits: 42.5, ThreatLevel: 2, Timestamp: ts}
	attackRow := telemetry.AttackRow{SessionID: "s1", AttackID: "a1", Type: "ddos", Event: telemetry.AttackHit, Final: 12, Timestamp: ts}
	reportRow := telemetry.ReportRow{SessionID: "s1", ReportsSent: 1, CreditsEarned: 1100, Timestamp: ts}

	if err := fw.WriteTick(tickRow); err != nil {
		t.Fatalf("WriteTick: %v", err)
	}
	if err := fw.WriteAttack(attackRow); err != nil {
		t.Fatalf("WriteAttack: %v", err)
	}
	if err := fw.WriteReport(reportRow); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	fw.Close()

	data, err := os.ReadFile(tickPath)
	if err != nil {
		t.Fatalf("read ticks: %v", err)
	}
	var gotTick telemetry.TickRow
	if err := json.Unmarshal(data, &gotTick); err != nil {
		t.Fatalf("decode tick: %v", err)
	}
	if gotTick.Tick != tickRow.Tick || gotTick.Credits != tickRow.Credits {
		t.Fatalf("unexpected tick row: %#v", gotTick)
	}

	data, err = os.ReadFile(attackPath)
	if err != nil {
		t.Fatalf("read attacks: %v", err)
	}
	var gotAttack telemetry.AttackRow
	if err := json.Unmarshal(data, &gotAttack); err != nil {
		t.Fatalf("decode attack: %v", err)
	}
	if gotAttack.AttackID != attackRow.AttackID || gotAttack.Event != attackRow.Event {
		t.Fatalf("unexpected attack row: %#v", gotAttack)
	}

	data, err = os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read reports: %v", err)
	}
	var gotReport telemetry.ReportRow
	if err := json.Unmarshal(data, &gotReport); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if gotReport.CreditsEarned != reportRow.CreditsEarned {
		t.Fatalf("unexpected report row: %#v", gotReport)
	}
}

func TestFileWriterSkipsDisabledStreams(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWriter(filepath.Join(dir, "ticks.json"), "", "")
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	defer fw.Close()

	if err := fw.WriteAttack(telemetry.AttackRow{AttackID: "a1"}); err != nil {
		t.Fatalf("WriteAttack on disabled stream: %v", err)
	}
	if err := fw.WriteReport(telemetry.ReportRow{SessionID: "s1"}); err != nil {
		t.Fatalf("WriteReport on disabled stream: %v", err)
	}
}
