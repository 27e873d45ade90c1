package engine

import (
	"context"
	"testing"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/telemetry"
)

type mockGreptimeClient struct {
	table *table.Table
}

func (m *mockGreptimeClient) Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error) {
	if len(tables) > 0 {
		m.table = tables[0]
	}
	return &gpb.GreptimeResponse{}, nil
}

func TestGreptimeWriterTicks(t *testing.T) {
	ts := time.Unix(0, 0).UTC()
	rows := []telemetry.TickRow{
		{
			SessionID:   "s1",
			Level:       "first-blood",
			Tick:        7,
			Credits:     123.5,
			ThreatLevel: 3,
			Timestamp:   ts,
		},
	}

	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, tickTable: "grid_ticks"}

	if err := w.WriteTicks(rows); err != nil {
		t.Fatalf("WriteTicks: %v", err)
	}
	if m.table == nil {
		t.Fatalf("expected table to be captured")
	}

	got := m.table.GetRows().Rows[0].Values
	if v := got[0].GetStringValue(); v != "s1" {
		t.Fatalf("session_id = %s, want s1", v)
	}
	if v := got[1].GetStringValue(); v != "first-blood" {
		t.Fatalf("level = %s, want first-blood", v)
	}
	if v := got[2].GetI64Value(); v != 7 {
		t.Fatalf("tick = %d, want 7", v)
	}
}

func TestGreptimeWriterAttackEvents(t *testing.T) {
	rows := []telemetry.AttackRow{{
		SessionID: "s1",
		AttackID:  "a1",
		Type:      "ddos",
		Event:     telemetry.AttackHit,
		Severity:  1.4,
		Raw:       90,
		Final:     31.5,
		Timestamp: time.Unix(0, 0).UTC(),
	}}

	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, attackTable: "attack_events"}

	if err := w.WriteAttacks(rows); err != nil {
		t.Fatalf("WriteAttacks: %v", err)
	}
	if m.table == nil {
		t.Fatalf("expected table to be captured")
	}
	got := m.table.GetRows().Rows[0].Values
	if v := got[1].GetStringValue(); v != "a1" {
		t.Fatalf("attack_id = %s, want a1", v)
	}
	if v := got[3].GetStringValue(); v != telemetry.AttackHit {
		t.Fatalf("event = %s, want %s", v, telemetry.AttackHit)
	}
}

func TestGreptimeWriterReports(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, reportTable: "intel_reports"}

	row := telemetry.ReportRow{
		SessionID:     "s1",
		ReportsSent:   1,
		CostPaid:      200,
		CreditsEarned: 1100,
		Milestone:     "first report",
		Timestamp:     time.Unix(0, 0).UTC(),
	}
	if err := w.WriteReport(row); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if m.table == nil {
		t.Fatalf("expected table to be captured")
	}
	got := m.table.GetRows().Rows[0].Values
	if v := got[4].GetStringValue(); v != "first report" {
		t.Fatalf("milestone = %s, want %q", v, "first report")
	}
}
