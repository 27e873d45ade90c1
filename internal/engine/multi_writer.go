package engine

import "github.com/remeadows/ProjectPlaguev1-sub001/internal/telemetry"

// MultiWriter fan-outs tick, attack, and report rows to multiple writers.
type MultiWriter struct {
	tickWriters   []TickWriter
	attackWriters []AttackWriter
	reportWriters []ReportWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(tws []TickWriter, aws []AttackWriter, rws []ReportWriter) *MultiWriter {
	return &MultiWriter{tickWriters: tws, attackWriters: aws, reportWriters: rws}
}

// WriteTick sends a tick row to all tick writers.
func (mw *MultiWriter) WriteTick(row telemetry.TickRow) error {
	for _, w := range mw.tickWriters {
		if err := w.WriteTick(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteTicks sends multiple tick rows to all tick writers, using batch
// mode where supported.
func (mw *MultiWriter) WriteTicks(rows []telemetry.TickRow) error {
	for _, w := range mw.tickWriters {
		if bw, ok := w.(batchTickWriter); ok {
			if err := bw.WriteTicks(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteTick(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteAttack sends an attack event row to all attack writers.
func (mw *MultiWriter) WriteAttack(row telemetry.AttackRow) error {
	for _, w := range mw.attackWriters {
		if err := w.WriteAttack(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteAttacks sends multiple attack rows to all attack writers, using
// batch mode where supported.
func (mw *MultiWriter) WriteAttacks(rows []telemetry.AttackRow) error {
	for _, w := range mw.attackWriters {
		if bw, ok := w.(batchAttackWriter); ok {
			if err := bw.WriteAttacks(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteAttack(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteReport sends a report row to all report writers.
func (mw *MultiWriter) WriteReport(row telemetry.ReportRow) error {
	for _, w := range mw.reportWriters {
		if err := w.WriteReport(row); err != nil {
			return err
		}
	}
	return nil
}
