package engine

import (
	"testing"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/telemetry"
)

type collectAllWriter struct {
	ticks   []telemetry.TickRow
	attacks []telemetry.AttackRow
	reports []telemetry.ReportRow
	batches int
}

func (c *collectAllWriter) WriteTick(r telemetry.TickRow) error {
	c.ticks = append(c.ticks, r)
	return nil
}

func (c *collectAllWriter) WriteAttack(r telemetry.AttackRow) error {
	c.attacks = append(c.attacks, r)
	return nil
}

func (c *collectAllWriter) WriteReport(r telemetry.ReportRow) error {
	c.reports = append(c.reports, r)
	return nil
}

// batchCollectWriter also implements the batch interfaces.
type batchCollectWriter struct {
	collectAllWriter
}

func (b *batchCollectWriter) WriteTicks(rows []telemetry.TickRow) error {
	b.batches++
	b.ticks = append(b.ticks, rows...)
	return nil
}

func (b *batchCollectWriter) WriteAttacks(rows []telemetry.AttackRow) error {
	b.batches++
	b.attacks = append(b.attacks, rows...)
	return nil
}

func TestMultiWriterFanOut(t *testing.T) {
	a := &collectAllWriter{}
	b := &collectAllWriter{}
	mw := NewMultiWriter([]TickWriter{a, b}, []AttackWriter{a, b}, []ReportWriter{a})

	if err := mw.WriteTick(telemetry.TickRow{Tick: 1}); err != nil {
		t.Fatalf("WriteTick: %v", err)
	}
	if err := mw.WriteAttack(telemetry.AttackRow{AttackID: "x"}); err != nil {
		t.Fatalf("WriteAttack: %v", err)
	}
	if err := mw.WriteReport(telemetry.ReportRow{ReportsSent: 1}); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	if len(a.ticks) != 1 || len(b.ticks) != 1 {
		t.Fatalf("tick not fanned out: %d/%d", len(a.ticks), len(b.ticks))
	}
	if len(a.attacks) != 1 || len(b.attacks) != 1 {
		t.Fatalf("attack not fanned out: %d/%d", len(a.attacks), len(b.attacks))
	}
	if len(a.reports) != 1 || len(b.reports) != 0 {
		t.Fatalf("report fan-out wrong: %d/%d", len(a.reports), len(b.reports))
	}
}

func TestMultiWriterUsesBatchInterface(t *testing.T) {
	plain := &collectAllWriter{}
	batch := &batchCollectWriter{}
	mw := NewMultiWriter([]TickWriter{plain, batch}, []AttackWriter{batch}, nil)

	rows := []telemetry.TickRow{{Tick: 1}, {Tick: 2}}
	if err := mw.WriteTicks(rows); err != nil {
		t.Fatalf("WriteTicks: %v", err)
	}
	if len(plain.ticks) != 2 {
		t.Fatalf("plain writer rows = %d, want 2", len(plain.ticks))
	}
	if batch.batches != 1 || len(batch.ticks) != 2 {
		t.Fatalf("batch writer batches=%d rows=%d", batch.batches, len(batch.ticks))
	}

	attacks := []telemetry.AttackRow{{AttackID: "a"}, {AttackID: "b"}}
	if err := mw.WriteAttacks(attacks); err != nil {
		t.Fatalf("WriteAttacks: %v", err)
	}
	if batch.batches != 2 || len(batch.attacks) != 2 {
		t.Fatalf("attack batch not used: batches=%d rows=%d", batch.batches, len(batch.attacks))
	}
}
