package engine

import "github.com/remeadows/ProjectPlaguev1-sub001/internal/telemetry"

// TickWriter is an interface to support different output writers for
// per-tick grid snapshots.
type TickWriter interface {
	WriteTick(telemetry.TickRow) error
}

// Optional: tick writers may support batch mode.
type batchTickWriter interface {
	WriteTicks([]telemetry.TickRow) error
}

// AttackWriter handles attack event rows.
type AttackWriter interface {
	WriteAttack(telemetry.AttackRow) error
}

// Optional: attack writers may support batch mode.
type batchAttackWriter interface {
	WriteAttacks([]telemetry.AttackRow) error
}

// ReportWriter handles intelligence report rows.
type ReportWriter interface {
	WriteReport(telemetry.ReportRow) error
}
