package engine

import (
	"context"
	"log"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/telemetry"
)

// greptimeClient is the slice of the ingester client the writer needs.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter sends tick, attack, and report rows to GreptimeDB
// via the ingester client.
type GreptimeDBWriter struct {
	client      greptimeClient
	tickTable   string
	attackTable string
	reportTable string
}

// NewGreptimeDBWriter creates a new GreptimeDB writer.
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(endpoint).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &GreptimeDBWriter{
		client:      client,
		tickTable:   telemetry.TickRow{}.TableName(),
		attackTable: telemetry.AttackRow{}.TableName(),
		reportTable: telemetry.ReportRow{}.TableName(),
	}, nil
}

// WriteTick inserts a single tick row.
func (w *GreptimeDBWriter) WriteTick(row telemetry.TickRow) error {
	return w.WriteTicks([]telemetry.TickRow{row})
}

// WriteTicks inserts multiple tick rows in one call.
func (w *GreptimeDBWriter) WriteTicks(rows []telemetry.TickRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.tickTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("session_id", types.STRING)
	tbl.AddTagColumn("level", types.STRING)
	tbl.AddFieldColumn("tick", types.INT64)
	tbl.AddFieldColumn("credits", types.FLOAT64)
	tbl.AddFieldColumn("lifetime_credits", types.FLOAT64)
	tbl.AddFieldColumn("income_per_tick", types.FLOAT64)
	tbl.AddFieldColumn("produced", types.FLOAT64)
	tbl.AddFieldColumn("transferred", types.FLOAT64)
	tbl.AddFieldColumn("dropped", types.FLOAT64)
	tbl.AddFieldColumn("processed", types.FLOAT64)
	tbl.AddFieldColumn("buffer", types.FLOAT64)
	tbl.AddFieldColumn("firewall_health", types.FLOAT64)
	tbl.AddFieldColumn("threat_level", types.INT64)
	tbl.AddFieldColumn("net_defense", types.INT64)
	tbl.AddFieldColumn("effective_risk", types.INT64)
	tbl.AddFieldColumn("active_attacks", types.INT64)
	tbl.AddFieldColumn("damage_taken", types.FLOAT64)
	tbl.AddFieldColumn("footprint", types.FLOAT64)
	tbl.AddFieldColumn("reports_sent", types.INT64)
	tbl.AddFieldColumn("insane", types.BOOLEAN)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(
			r.SessionID, r.Level,
			r.Tick, r.Credits, r.LifetimeCredits, r.IncomePerTick,
			r.Produced, r.Transferred, r.Dropped, r.Processed, r.Buffer,
			r.FirewallHealth,
			int64(r.ThreatLevel), int64(r.NetDefense), int64(r.EffectiveRisk),
			int64(r.ActiveAttacks), r.DamageTaken,
			r.Footprint, int64(r.ReportsSent), r.Insane,
			r.Timestamp,
		); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeDBWriter] tick write failed: %v", err)
		return err
	}
	return nil
}

// WriteAttack inserts a single attack event row.
func (w *GreptimeDBWriter) WriteAttack(row telemetry.AttackRow) error {
	return w.WriteAttacks([]telemetry.AttackRow{row})
}

// WriteAttacks inserts multiple attack event rows in one call.
func (w *GreptimeDBWriter) WriteAttacks(rows []telemetry.AttackRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.attackTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("session_id", types.STRING)
	tbl.AddTagColumn("attack_id", types.STRING)
	tbl.AddTagColumn("type", types.STRING)
	tbl.AddFieldColumn("event", types.STRING)
	tbl.AddFieldColumn("severity", types.FLOAT64)
	tbl.AddFieldColumn("raw", types.FLOAT64)
	tbl.AddFieldColumn("absorbed", types.FLOAT64)
	tbl.AddFieldColumn("final", types.FLOAT64)
	tbl.AddFieldColumn("credit_drain", types.FLOAT64)
	tbl.AddFieldColumn("bandwidth_cut", types.FLOAT64)
	tbl.AddFieldColumn("processing_cut", types.FLOAT64)
	tbl.AddFieldColumn("threat_level", types.INT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(
			r.SessionID, r.AttackID, r.Type,
			r.Event, r.Severity, r.Raw, r.Absorbed, r.Final,
			r.CreditDrain, r.BandwidthCut, r.ProcessingCut,
			int64(r.ThreatLevel), r.Timestamp,
		); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeDBWriter] attack write failed: %v", err)
		return err
	}
	return nil
}

// WriteReport inserts a single intel report row.
func (w *GreptimeDBWriter) WriteReport(row telemetry.ReportRow) error {
	tbl, err := table.New(w.reportTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("session_id", types.STRING)
	tbl.AddFieldColumn("reports_sent", types.INT64)
	tbl.AddFieldColumn("cost_paid", types.FLOAT64)
	tbl.AddFieldColumn("credits_earned", types.FLOAT64)
	tbl.AddFieldColumn("milestone", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	if err := tbl.AddRow(
		row.SessionID, int64(row.ReportsSent),
		row.CostPaid, row.CreditsEarned, row.Milestone, row.Timestamp,
	); err != nil {
		return err
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeDBWriter] report write failed: %v", err)
		return err
	}
	return nil
}
