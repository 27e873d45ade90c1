package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/campaign"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/config"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/defense"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/intel"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/pipeline"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/rng"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/threat"
)

// Snapshot captures the full session state at a tick boundary. It is
// taken and restored only between ticks, never mid-step.
type Snapshot struct {
	SessionID string    `json:"session_id"`
	Level     string    `json:"level"`
	Seed      int64     `json:"seed"`
	Tick      int64     `json:"tick"`
	Insane    bool      `json:"insane"`
	TakenAt   time.Time `json:"taken_at"`

	Player   Player                `json:"player"`
	Grids    []*Grid               `json:"grids"`
	Firewall *pipeline.Firewall    `json:"firewall"`
	Stack    defense.StackSnapshot `json:"stack"`
	Threat   *threat.State         `json:"threat"`
	Ledger   *intel.Ledger         `json:"ledger"`
}

// Snapshot copies the engine's state. The copy shares nothing with the
// live engine, so it stays stable while ticks continue.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		SessionID: e.sessionID,
		Level:     e.level.Name,
		Seed:      e.seed,
		Tick:      e.tickCount,
		Insane:    e.insane,
		TakenAt:   e.now(),
		Player:    e.player,
		Stack:     e.stack.Snapshot(),
	}

	fw := *e.firewall
	snap.Firewall = &fw

	for _, g := range e.grids {
		src, link, sink := *g.Source, *g.Link, *g.Sink
		snap.Grids = append(snap.Grids, &Grid{Name: g.Name, Source: &src, Link: &link, Sink: &sink})
	}

	ts := *e.threat
	ts.Active = nil
	for _, a := range e.threat.Active {
		cp := *a
		ts.Active = append(ts.Active, &cp)
	}
	snap.Threat = &ts

	ledger := *e.ledger
	ledger.Claimed = make(map[string]bool, len(e.ledger.Claimed))
	for k, v := range e.ledger.Claimed {
		ledger.Claimed[k] = v
	}
	snap.Ledger = &ledger

	return snap
}

// NewFromSnapshot rebuilds an engine from a saved snapshot. Writers,
// metrics, and tick interval are supplied fresh; the restored run is
// reseeded from the snapshot's seed and tick, so it is deterministic
// per restore point but does not continue the original random stream.
func NewFromSnapshot(snap Snapshot, cfg *config.SimulationConfig, level *campaign.Level,
	w TickWriter, aw AttackWriter, rw ReportWriter, tickInterval time.Duration) (*Engine, error) {

	if level == nil || level.Name != snap.Level {
		return nil, fmt.Errorf("restore: snapshot is for campaign level %q", snap.Level)
	}
	if len(snap.Grids) == 0 || snap.Firewall == nil || snap.Threat == nil || snap.Ledger == nil {
		return nil, fmt.Errorf("restore: snapshot is incomplete")
	}

	r := rng.New(snap.Seed ^ snap.Tick)
	e := New(snap.SessionID, cfg, level, w, aw, rw, tickInterval, r, nil)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.seed = snap.Seed
	e.tickCount = snap.Tick
	e.insane = snap.Insane
	e.player = snap.Player
	e.grids = snap.Grids
	e.firewall = snap.Firewall
	e.stack = defense.RestoreStack(snap.Stack)
	e.threat = snap.Threat
	e.ledger = snap.Ledger
	if e.ledger.Claimed == nil {
		e.ledger.Claimed = make(map[string]bool)
	}
	e.threat.UpdateDefense(e.firewall, e.stack)
	return e, nil
}

// SaveSnapshot writes a snapshot to disk as indented JSON.
func SaveSnapshot(path string, snap Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
