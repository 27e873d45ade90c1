// Engine orchestrating the harvest pipeline and combat ticks
package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/campaign"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/config"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/defense"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/intel"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/metrics"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/pipeline"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/rng"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/telemetry"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/threat"
)

// disableTicks is how long a source stays dark after a disable roll.
const disableTicks = 3

// Grid is one runtime harvest chain.
type Grid struct {
	Name   string           `json:"name"`
	Source *pipeline.Source `json:"source"`
	Link   *pipeline.Link   `json:"link"`
	Sink   *pipeline.Sink   `json:"sink"`
}

// Player holds the operator's resources.
type Player struct {
	Credits         float64 `json:"credits"`
	LifetimeCredits float64 `json:"lifetime_credits"`
	IncomePerTick   float64 `json:"income_per_tick"`
}

// Engine owns the whole session state and advances it one atomic tick at
// a time. All randomness flows through its injected source; two engines
// built with the same seed and config produce identical runs.
type Engine struct {
	sessionID string
	cfg       *config.SimulationConfig
	level     *campaign.Level
	catalog   *defense.Catalog
	gen       *threat.Generator

	grids    []*Grid
	firewall *pipeline.Firewall
	stack    *defense.Stack
	threat   *threat.State
	ledger   *intel.Ledger
	player   Player

	insane       bool
	seed         int64
	rand         *rand.Rand
	now          func() time.Time
	tickCount    int64
	tickInterval time.Duration

	writer       TickWriter
	attackWriter AttackWriter
	reportWriter ReportWriter
	metrics      *metrics.Registry

	mu sync.Mutex
}

// New initializes an engine from configuration. A nil random source or
// clock falls back to a config-seeded source and the wall clock.
func New(sessionID string, cfg *config.SimulationConfig, level *campaign.Level,
	w TickWriter, aw AttackWriter, rw ReportWriter,
	tickInterval time.Duration, r *rand.Rand, now func() time.Time) *Engine {

	seed := cfg.Seed
	if r == nil {
		if seed == 0 {
			seed = rng.SeedOrNow()
		}
		r = rng.New(seed)
	}
	if now == nil {
		now = time.Now
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	e := &Engine{
		sessionID:    sessionID,
		cfg:          cfg,
		level:        level,
		catalog:      defense.BuiltInCatalog(),
		gen:          threat.NewGenerator(nil),
		firewall:     pipeline.NewFirewall(cfg.Firewall.Name, cfg.Firewall.BaseHealth, cfg.Firewall.BaseReduction),
		stack:        defense.NewStack(),
		threat:       threat.NewState(level.ThreatFloor),
		ledger:       intel.NewLedger(),
		insane:       cfg.InsaneMode,
		seed:         seed,
		rand:         r,
		now:          now,
		tickInterval: tickInterval,
		writer:       w,
		attackWriter: aw,
		reportWriter: rw,
	}
	e.player.Credits = level.StartingCredits

	for _, gc := range cfg.Grids {
		e.grids = append(e.grids, &Grid{
			Name:   gc.Name,
			Source: pipeline.NewSource(gc.Source.Name, gc.Source.Output, gc.Source.BaseRate),
			Link:   pipeline.NewLink(gc.Link.Name, gc.Link.BaseBandwidth),
			Sink:   pipeline.NewSink(gc.Sink.Name, gc.Sink.BaseRate, gc.Sink.ConversionRate, gc.Sink.BaseCapacity),
		})
	}
	e.threat.UpdateDefense(e.firewall, e.stack)
	return e
}

// SetCatalog swaps the defense application catalog, typically for one
// loaded from YAML. Must be called before the first tick.
func (e *Engine) SetCatalog(c *defense.Catalog) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if c != nil {
		e.catalog = c
	}
}

// AttachMetrics wires a prometheus registry into the tick loop.
func (e *Engine) AttachMetrics(m *metrics.Registry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.metrics = m
}

// SessionID identifies this run in every output row.
func (e *Engine) SessionID() string { return e.sessionID }

// Seed is the seed the engine's random source started from.
func (e *Engine) Seed() int64 { return e.seed }

// Tick is the engine's current tick count.
func (e *Engine) Tick() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickCount
}

// Victory evaluates the campaign level's win predicate, read-only.
func (e *Engine) Victory() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.level.Victory(e.player.LifetimeCredits, e.ledger.ReportsSent)
}

// ToggleInsane flips insane mode and returns the new state.
func (e *Engine) ToggleInsane() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.insane = !e.insane
	return e.insane
}

// Insane reports whether insane mode is active.
func (e *Engine) Insane() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.insane
}

// spend deducts cost from credits if affordable. Callers hold the lock.
func (e *Engine) spend(cost float64) bool {
	if cost < 0 || e.player.Credits < cost {
		return false
	}
	e.player.Credits -= cost
	return true
}

// UpgradeNode raises one node of a grid by a level, paying its upgrade
// cost. Kind is one of source, link, sink.
func (e *Engine) UpgradeNode(gridName string, kind pipeline.NodeKind) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	g := e.grid(gridName)
	if g == nil {
		return false
	}
	switch kind {
	case pipeline.KindSource:
		return e.spend(g.Source.UpgradeCost()) && g.Source.Upgrade()
	case pipeline.KindLink:
		return e.spend(g.Link.UpgradeCost()) && g.Link.Upgrade()
	case pipeline.KindSink:
		return e.spend(g.Sink.UpgradeCost()) && g.Sink.Upgrade()
	}
	return false
}

// UpgradeFirewall raises the firewall a level, paying its upgrade cost.
func (e *Engine) UpgradeFirewall() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spend(e.firewall.UpgradeCost()) && e.firewall.Upgrade()
}

// RepairFirewall pays the repair cost and restores full health.
func (e *Engine) RepairFirewall() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.spend(e.firewall.RepairCost()) {
		return false
	}
	e.firewall.Repair()
	return true
}

// DeployApplication buys a catalog entry and deploys it at level 1. The
// prerequisite must be the currently deployed application in that
// category, and the entry's tier must fit the campaign level.
func (e *Engine) DeployApplication(catalogID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	entry, ok := e.catalog.Entry(catalogID)
	if !ok {
		return fmt.Errorf("deploy: unknown catalog entry %q", catalogID)
	}
	if entry.Tier > e.level.MaxTier {
		return fmt.Errorf("deploy %s: tier %d exceeds campaign cap %d", entry.Name, entry.Tier, e.level.MaxTier)
	}
	if entry.Prerequisite != "" {
		cur := e.stack.Deployed(entry.Category)
		if cur == nil || cur.ID != entry.Prerequisite {
			return fmt.Errorf("deploy %s: requires %s deployed", entry.Name, entry.Prerequisite)
		}
	}
	if entry.Tier > e.stack.UnlockedTier(entry.Category) {
		if err := e.stack.UnlockTier(entry.Category, entry.Tier); err != nil {
			return err
		}
	}
	if !e.spend(entry.UnlockCost) {
		return fmt.Errorf("deploy %s: cannot afford %.0f credits", entry.Name, entry.UnlockCost)
	}
	return e.stack.Deploy(&defense.Application{
		ID:       entry.ID,
		Name:     entry.Name,
		Category: entry.Category,
		Tier:     entry.Tier,
		Level:    1,
	})
}

// UpgradeApplication levels the deployed application in a category,
// paying a cost derived from its defense points.
func (e *Engine) UpgradeApplication(cat defense.Category) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	app := e.stack.Deployed(cat)
	if app == nil {
		return false
	}
	cost := pipeline.UpgradeCost(app.DefensePoints(), app.Level)
	return e.spend(cost) && e.stack.Upgrade(cat)
}

// SubmitReport files an intelligence report by hand.
func (e *Engine) SubmitReport() (intel.ReportResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitReportLocked()
}

func (e *Engine) submitReportLocked() (intel.ReportResult, bool) {
	res, ok := e.ledger.SendReport()
	if !ok {
		return res, false
	}
	e.player.Credits += res.CreditsEarned
	e.player.LifetimeCredits += res.CreditsEarned

	if e.metrics != nil {
		e.metrics.ReportsTotal.Inc()
		e.metrics.CreditsEarnedTotal.Add(res.CreditsEarned)
		if res.Milestone != nil {
			e.metrics.MilestonesTotal.Inc()
		}
	}
	if e.reportWriter != nil {
		row := e.reportRow(res)
		_ = e.reportWriter.WriteReport(row)
	}
	return res, true
}

// InjectAttack launches a named attack type immediately, bypassing the
// probability roll. Severity still follows the current threat level and
// the engine's random source.
func (e *Engine) InjectAttack(typeName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	at, ok := e.gen.TypeByName(typeName)
	if !ok {
		return fmt.Errorf("inject: unknown attack type %q", typeName)
	}
	sev := threat.Info(e.threat.CurrentLevel).SeverityMultiplier * (0.8 + e.rand.Float64()*0.4)
	sev *= e.level.SeverityMultiplier(e.insane)
	e.threat.Launch(&threat.Attack{
		ID:             uuid.New().String(),
		Type:           at.Name,
		Severity:       sev,
		TicksRemaining: at.DurationTicks,
		StartedTick:    e.tickCount,
		StartedAt:      e.now().UTC(),
	})
	return nil
}

func (e *Engine) grid(name string) *Grid {
	for _, g := range e.grids {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (e *Engine) reportRow(res intel.ReportResult) telemetry.ReportRow {
	row := telemetry.ReportRow{
		SessionID:     e.sessionID,
		ReportsSent:   res.ReportsSent,
		CostPaid:      res.CostPaid,
		CreditsEarned: res.CreditsEarned,
		Timestamp:     e.now().UTC(),
	}
	if res.Milestone != nil {
		row.Milestone = res.Milestone.Name
	}
	return row
}
