// Row structs with greptime tags for the simulation's output streams.
package telemetry

import (
	"os"
	"time"
)

// TickRow is one per-tick snapshot of the whole grid for GreptimeDB.
type TickRow struct {
	SessionID       string    `json:"session_id"` // TAG
	Level           string    `json:"level"`      // TAG
	Tick            int64     `json:"tick"`       // FIELD
	Credits         float64   `json:"credits"`
	LifetimeCredits float64   `json:"lifetime_credits"`
	IncomePerTick   float64   `json:"income_per_tick"`
	Produced        float64   `json:"produced"`
	Transferred     float64   `json:"transferred"`
	Dropped         float64   `json:"dropped"`
	Processed       float64   `json:"processed"`
	Buffer          float64   `json:"buffer"`
	FirewallHealth  float64   `json:"firewall_health"`
	ThreatLevel     int       `json:"threat_level"`
	NetDefense      int       `json:"net_defense"`
	EffectiveRisk   int       `json:"effective_risk"`
	ActiveAttacks   int       `json:"active_attacks"`
	DamageTaken     float64   `json:"damage_taken"`
	Footprint       float64   `json:"footprint"`
	ReportsSent     int       `json:"reports_sent"`
	Insane          bool      `json:"insane"`
	Timestamp       time.Time `json:"ts"` // TIME INDEX
}

// TickTableName is the GreptimeDB table for tick rows, overridable via
// the GREPTIMEDB_TABLE environment variable.
var TickTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_TABLE"); env != "" {
		return env
	}
	return "grid_ticks"
}()

func (TickRow) TableName() string {
	return TickTableName
}

// Attack event kinds.
const (
	AttackLaunched = "launched"
	AttackHit      = "hit"
	AttackSurvived = "survived"
)

// AttackRow describes one attack event: a launch, a per-tick hit after
// mitigation, or an expiry. UI animation and audio cues key off these.
type AttackRow struct {
	SessionID     string    `json:"session_id"` // TAG
	AttackID      string    `json:"attack_id"`  // TAG
	Type          string    `json:"type"`       // TAG
	Event         string    `json:"event"`      // FIELD
	Severity      float64   `json:"severity"`
	Raw           float64   `json:"raw"`
	Absorbed      float64   `json:"absorbed"`
	Final         float64   `json:"final"`
	CreditDrain   float64   `json:"credit_drain"`
	BandwidthCut  float64   `json:"bandwidth_cut"`
	ProcessingCut float64   `json:"processing_cut"`
	ThreatLevel   int       `json:"threat_level"`
	Timestamp     time.Time `json:"ts"` // TIME INDEX
}

// AttackTableName is the GreptimeDB table for attack events.
var AttackTableName = func() string {
	if env := os.Getenv("ATTACK_EVENT_TABLE"); env != "" {
		return env
	}
	return "attack_events"
}()

func (AttackRow) TableName() string {
	return AttackTableName
}

// ReportRow records a submitted intelligence report.
type ReportRow struct {
	SessionID     string    `json:"session_id"` // TAG
	ReportsSent   int       `json:"reports_sent"`
	CostPaid      float64   `json:"cost_paid"`
	CreditsEarned float64   `json:"credits_earned"`
	Milestone     string    `json:"milestone,omitempty"`
	Timestamp     time.Time `json:"ts"` // TIME INDEX
}

// ReportTableName is the GreptimeDB table for report rows.
var ReportTableName = func() string {
	if env := os.Getenv("INTEL_REPORT_TABLE"); env != "" {
		return env
	}
	return "intel_reports"
}()

func (ReportRow) TableName() string {
	return ReportTableName
}
