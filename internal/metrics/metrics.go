// Package metrics exposes engine counters and gauges via prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the simulation engine.
type Registry struct {
	registry *prometheus.Registry

	TicksTotal          prometheus.Counter
	CreditsEarnedTotal  prometheus.Counter
	CreditsDrainedTotal prometheus.Counter
	AttacksTotal        *prometheus.CounterVec
	DamageTotal         *prometheus.CounterVec
	ReportsTotal        prometheus.Counter
	MilestonesTotal     prometheus.Counter

	Credits        prometheus.Gauge
	IncomePerTick  prometheus.Gauge
	FirewallHealth prometheus.Gauge
	ThreatLevel    prometheus.Gauge
	NetDefense     prometheus.Gauge
	ActiveAttacks  prometheus.Gauge
	Footprint      prometheus.Gauge
}

// New creates a Registry backed by its own prometheus registry, so two
// engines in one process never collide.
func New() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.TicksTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "plaguesim_ticks_total",
		Help: "Total simulation ticks executed",
	})
	r.CreditsEarnedTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "plaguesim_credits_earned_total",
		Help: "Total credits earned by the pipeline and reports",
	})
	r.CreditsDrainedTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "plaguesim_credits_drained_total",
		Help: "Total credits drained by attacks",
	})
	r.AttacksTotal = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "plaguesim_attacks_total",
		Help: "Attacks generated, by type",
	}, []string{"type"})
	r.DamageTotal = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "plaguesim_damage_total",
		Help: "Damage accounted per mitigation layer",
	}, []string{"layer"})
	r.ReportsTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "plaguesim_reports_sent_total",
		Help: "Intelligence reports submitted",
	})
	r.MilestonesTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "plaguesim_milestones_claimed_total",
		Help: "Report milestones claimed",
	})

	r.Credits = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "plaguesim_credits",
		Help: "Current spendable credits",
	})
	r.IncomePerTick = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "plaguesim_income_per_tick",
		Help: "Credits earned by the pipeline last tick",
	})
	r.FirewallHealth = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "plaguesim_firewall_health",
		Help: "Current firewall health",
	})
	r.ThreatLevel = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "plaguesim_threat_level",
		Help: "Current threat level (1-20)",
	})
	r.NetDefense = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "plaguesim_net_defense_level",
		Help: "Display-only net defense level (0-9)",
	})
	r.ActiveAttacks = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "plaguesim_active_attacks",
		Help: "Attacks currently in flight",
	})
	r.Footprint = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "plaguesim_footprint_data",
		Help: "Accrued footprint evidence",
	})
	return r
}

// Prometheus exposes the underlying registry for the /metrics handler.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// Damage layer labels.
const (
	LayerAbsorbed  = "firewall"
	LayerMitigated = "stack"
	LayerTaken     = "passed"
)
