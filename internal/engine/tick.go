package engine

import (
	"context"
	"time"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/logging"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/metrics"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/telemetry"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/threat"
)

// Run drives the tick loop and stops when the context is done.
func (e *Engine) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting engine", "session_id", e.sessionID, "level", e.level.Name,
		"seed", e.seed, "tick_interval", e.tickInterval)
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.Step(ctx)
		case <-ctx.Done():
			log.Info("stopping engine", "ticks", e.Tick())
			return
		}
	}
}

// Step advances the simulation by exactly one tick: pipeline, combat,
// regeneration, threat recomputation, intelligence. Observers never see
// a state between phases; the whole tick is one atomic transformation.
func (e *Engine) Step(ctx context.Context) {
	log := logging.FromContext(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.tickCount++
	now := e.now().UTC()
	var attackRows []telemetry.AttackRow

	// Phase 1: pipeline. Throttles and slowdowns set by last tick's
	// combat phase still apply here; they are re-derived below.
	var produced, transferred, dropped, processed float64
	income := 0.0
	for _, g := range e.grids {
		p := g.Source.Produce(e.tickCount, now)
		st := g.Link.Transfer(p, g.Sink.BufferRemaining())
		g.Sink.Receive(st.Transferred)
		res := g.Sink.Process()
		produced += p.Amount
		transferred += st.Transferred
		dropped += st.Dropped
		processed += res.Processed
		income += res.Credits
	}
	income *= e.ledger.IncomeMultiplier() * e.level.IncomeMultiplier(e.insane)
	e.player.Credits += income
	e.player.LifetimeCredits += income
	e.player.IncomePerTick = income

	// Phase 2: combat. Age out finished attacks first; they are booked
	// as survived in phase 5.
	survived := e.threat.Age()

	knobs := e.level.Knobs(e.insane)
	knobs.FrequencyReduction = 0 // defense reduces damage, not frequency
	if a := e.gen.TryGenerate(e.rand, e.threat.CurrentLevel, e.tickCount, knobs); a != nil {
		a.Severity *= e.level.SeverityMultiplier(e.insane)
		a.StartedAt = now
		e.threat.Launch(a)
		log.Debug("attack launched", "type", a.Type, "severity", a.Severity)
		attackRows = append(attackRows, e.attackRow(a, telemetry.AttackLaunched, nil, now))
		if e.metrics != nil {
			e.metrics.AttacksTotal.WithLabelValues(a.Type).Inc()
		}
	}

	var bandwidthCut, processingCut float64
	var absorbed, mitigated, taken float64
	drained := 0.0
	for _, a := range e.threat.Active {
		at, ok := e.gen.TypeByName(a.Type)
		if !ok {
			continue
		}
		td := e.threat.ResolveAttack(a, at, e.firewall, e.player.IncomePerTick)
		drained += td.CreditDrain
		absorbed += td.Absorbed
		mitigated += td.AfterFirewall - td.Final
		taken += td.Final
		if td.BandwidthCut > bandwidthCut {
			bandwidthCut = td.BandwidthCut
		}
		if td.ProcessingCut > processingCut {
			processingCut = td.ProcessingCut
		}
		if td.DisableChance > 0 && e.rand.Float64()*100 < td.DisableChance {
			g := e.grids[e.rand.Intn(len(e.grids))]
			g.Source.Disable(disableTicks)
			log.Debug("source disabled", "grid", g.Name, "attack", a.Type)
		}
		attackRows = append(attackRows, e.attackRow(a, telemetry.AttackHit, &td, now))
	}
	e.player.Credits -= drained
	if e.player.Credits < 0 {
		e.player.Credits = 0
	}
	for _, g := range e.grids {
		g.Link.Throttle = bandwidthCut
		g.Sink.Slowdown = processingCut
	}

	// Phase 3: firewall regeneration.
	e.firewall.Regenerate()

	// Phase 4: threat and net-defense recomputation.
	e.threat.UpdateThreatLevel(e.player.LifetimeCredits, e.level.ThreatFloor)
	e.threat.UpdateDefense(e.firewall, e.stack)

	// Phase 5: intelligence accrual and automated reporting.
	for _, a := range survived {
		e.ledger.Accrue(a.Severity, e.stack.TotalDetectionBonus(), e.stack.TotalIntelMultiplier())
		attackRows = append(attackRows, e.attackRow(a, telemetry.AttackSurvived, nil, now))
	}
	if e.stack.MaxAutomation() >= e.cfg.AutomationThreshold && e.cfg.AutomationThreshold > 0 {
		if e.ledger.CanSendReport() {
			if res, ok := e.submitReportLocked(); ok {
				log.Debug("report auto-submitted", "reports_sent", res.ReportsSent)
			}
		}
	}

	e.updateMetrics(income, drained, absorbed, mitigated, taken)
	e.writeRows(ctx, telemetry.TickRow{
		SessionID:       e.sessionID,
		Level:           e.level.Name,
		Tick:            e.tickCount,
		Credits:         e.player.Credits,
		LifetimeCredits: e.player.LifetimeCredits,
		IncomePerTick:   income,
		Produced:        produced,
		Transferred:     transferred,
		Dropped:         dropped,
		Processed:       processed,
		Buffer:          e.totalBuffer(),
		FirewallHealth:  e.firewall.CurrentHealth,
		ThreatLevel:     e.threat.CurrentLevel,
		NetDefense:      e.threat.Defense.NetDefenseLevel,
		EffectiveRisk:   e.threat.EffectiveRisk(),
		ActiveAttacks:   len(e.threat.Active),
		DamageTaken:     e.threat.Stats.DamageTaken,
		Footprint:       e.ledger.FootprintData,
		ReportsSent:     e.ledger.ReportsSent,
		Insane:          e.insane,
		Timestamp:       now,
	}, attackRows)
}

func (e *Engine) totalBuffer() float64 {
	var total float64
	for _, g := range e.grids {
		total += g.Sink.Buffer
	}
	return total
}

func (e *Engine) attackRow(a *threat.Attack, event string, td *threat.TickDamage, now time.Time) telemetry.AttackRow {
	row := telemetry.AttackRow{
		SessionID:   e.sessionID,
		AttackID:    a.ID,
		Type:        a.Type,
		Event:       event,
		Severity:    a.Severity,
		ThreatLevel: e.threat.CurrentLevel,
		Timestamp:   now,
	}
	if td != nil {
		row.Raw = td.Raw
		row.Absorbed = td.Absorbed
		row.Final = td.Final
		row.CreditDrain = td.CreditDrain
		row.BandwidthCut = td.BandwidthCut
		row.ProcessingCut = td.ProcessingCut
	}
	return row
}

func (e *Engine) updateMetrics(income, drained, absorbed, mitigated, taken float64) {
	if e.metrics == nil {
		return
	}
	m := e.metrics
	m.TicksTotal.Inc()
	m.CreditsEarnedTotal.Add(income)
	m.CreditsDrainedTotal.Add(drained)
	m.DamageTotal.WithLabelValues(metrics.LayerAbsorbed).Add(absorbed)
	m.DamageTotal.WithLabelValues(metrics.LayerMitigated).Add(mitigated)
	m.DamageTotal.WithLabelValues(metrics.LayerTaken).Add(taken)
	m.Credits.Set(e.player.Credits)
	m.IncomePerTick.Set(income)
	m.FirewallHealth.Set(e.firewall.CurrentHealth)
	m.ThreatLevel.Set(float64(e.threat.CurrentLevel))
	m.NetDefense.Set(float64(e.threat.Defense.NetDefenseLevel))
	m.ActiveAttacks.Set(float64(len(e.threat.Active)))
	m.Footprint.Set(e.ledger.FootprintData)
}

func (e *Engine) writeRows(ctx context.Context, tick telemetry.TickRow, attacks []telemetry.AttackRow) {
	log := logging.FromContext(ctx)
	if e.writer != nil {
		if err := e.writer.WriteTick(tick); err != nil {
			log.Error("tick write failed", "err", err)
		}
	}
	if e.attackWriter == nil || len(attacks) == 0 {
		return
	}
	if bw, ok := e.attackWriter.(batchAttackWriter); ok {
		if err := bw.WriteAttacks(attacks); err != nil {
			log.Error("attack batch write failed", "err", err)
		}
		return
	}
	for _, row := range attacks {
		if err := e.attackWriter.WriteAttack(row); err != nil {
			log.Error("attack write failed", "attack_id", row.AttackID, "err", err)
		}
	}
}
