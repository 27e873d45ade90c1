package threat

import "time"

// Envelope is an attack type's per-tick damage profile before severity
// and income scaling: raw damage pushed at the mitigation chain, a
// credit-drain factor applied to whatever survives the chain, and the
// throttling/disable pressure put on pipeline nodes.
type Envelope struct {
	BaseDamage    float64 `json:"base_damage" yaml:"base_damage"`
	CreditDrain   float64 `json:"credit_drain" yaml:"credit_drain"`
	BandwidthCut  float64 `json:"bandwidth_cut" yaml:"bandwidth_cut"`
	DisableChance float64 `json:"disable_chance" yaml:"disable_chance"`
	ProcessingCut float64 `json:"processing_cut" yaml:"processing_cut"`
}

// AttackType is one entry in the attack catalog.
type AttackType struct {
	Name           string   `json:"name" yaml:"name"`
	MinThreatLevel int      `json:"min_threat_level" yaml:"min_threat_level"`
	Weight         int      `json:"weight" yaml:"weight"`
	DurationTicks  int      `json:"duration_ticks" yaml:"duration_ticks"`
	Envelope       Envelope `json:"envelope" yaml:"envelope"`
}

// Attack is an in-flight threat event. TicksRemaining only ever counts
// down; at zero the attack has been survived.
type Attack struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Severity       float64   `json:"severity"`
	TicksRemaining int       `json:"ticks_remaining"`
	StartedTick    int64     `json:"started_tick"`
	StartedAt      time.Time `json:"started_at"`
}

// Catalog is the default attack-type table. Weights skew early sessions
// toward nuisance attacks; the heavy types only appear once the threat
// scale reaches them.
func Catalog() []AttackType {
	return []AttackType{
		{
			Name: "port_scan", MinThreatLevel: 1, Weight: 30, DurationTicks: 3,
			Envelope: Envelope{BaseDamage: 5, CreditDrain: 0.2, BandwidthCut: 0.05},
		},
		{
			Name: "phishing", MinThreatLevel: 1, Weight: 25, DurationTicks: 4,
			Envelope: Envelope{BaseDamage: 8, CreditDrain: 0.5, DisableChance: 2},
		},
		{
			Name: "malware_drop", MinThreatLevel: 2, Weight: 20, DurationTicks: 5,
			Envelope: Envelope{BaseDamage: 12, CreditDrain: 0.4, ProcessingCut: 0.10, DisableChance: 3},
		},
		{
			Name: "ddos", MinThreatLevel: 3, Weight: 18, DurationTicks: 6,
			Envelope: Envelope{BaseDamage: 15, CreditDrain: 0.1, BandwidthCut: 0.35},
		},
		{
			Name: "botnet_siege", MinThreatLevel: 5, Weight: 14, DurationTicks: 8,
			Envelope: Envelope{BaseDamage: 22, CreditDrain: 0.3, BandwidthCut: 0.25, ProcessingCut: 0.10},
		},
		{
			Name: "ransomware", MinThreatLevel: 7, Weight: 10, DurationTicks: 10,
			Envelope: Envelope{BaseDamage: 35, CreditDrain: 1.2, ProcessingCut: 0.30, DisableChance: 5},
		},
		{
			Name: "supply_chain", MinThreatLevel: 10, Weight: 7, DurationTicks: 12,
			Envelope: Envelope{BaseDamage: 50, CreditDrain: 0.8, BandwidthCut: 0.20, ProcessingCut: 0.20, DisableChance: 6},
		},
		{
			Name: "zero_day", MinThreatLevel: 13, Weight: 5, DurationTicks: 9,
			Envelope: Envelope{BaseDamage: 80, CreditDrain: 1.5, DisableChance: 10},
		},
		{
			Name: "apt_campaign", MinThreatLevel: 16, Weight: 3, DurationTicks: 16,
			Envelope: Envelope{BaseDamage: 120, CreditDrain: 2.0, BandwidthCut: 0.30, ProcessingCut: 0.30, DisableChance: 8},
		},
		{
			Name: "state_actor", MinThreatLevel: 19, Weight: 2, DurationTicks: 20,
			Envelope: Envelope{BaseDamage: 200, CreditDrain: 3.0, BandwidthCut: 0.40, ProcessingCut: 0.40, DisableChance: 12},
		},
	}
}

// IncomeScale blends a flat floor with income-proportional scaling so a
// high-income grid stays threatened without crushing a fresh one.
func IncomeScale(incomePerTick float64) float64 {
	s := incomePerTick / 10
	if s < 1 {
		s = 1
	}
	if s > 100 {
		s = 100
	}
	return 0.7 + 0.3*s
}
