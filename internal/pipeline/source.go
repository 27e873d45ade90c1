// Package pipeline models the harvest chain: sources produce raw data,
// links move it under a bandwidth cap, sinks buffer and convert it into
// credits, and the firewall soaks attack damage in front of all of them.
//
// Every operation is a total function over a clamped numeric domain.
// Nothing here draws randomness; stochastic behavior lives in the threat
// package and is fed in by the engine.
package pipeline

import "time"

// sourceYield is the per-level production multiplier.
const sourceYield = 1.5

// Packet is one tick's worth of harvested data.
type Packet struct {
	Amount    float64   `json:"amount"`
	Tick      int64     `json:"tick"`
	Timestamp time.Time `json:"ts"`
}

// Source is a data harvester. Its level only ever goes up; tier (derived
// from the base rate) caps how far.
type Source struct {
	Name     string  `json:"name"`
	Output   string  `json:"output"`
	BaseRate float64 `json:"base_rate"`
	Level    int     `json:"level"`

	// DisabledFor counts ticks the source stays dark after a successful
	// node-disable roll. Managed by the engine's combat phase.
	DisabledFor int `json:"disabled_for,omitempty"`
}

// NewSource builds a level-1 source.
func NewSource(name, output string, baseRate float64) *Source {
	if baseRate < 0 {
		baseRate = 0
	}
	return &Source{Name: name, Output: output, BaseRate: baseRate, Level: 1}
}

// Produce emits one packet for the given tick. A disabled source emits an
// empty packet and burns one disabled tick.
func (s *Source) Produce(tick int64, now time.Time) Packet {
	if s.DisabledFor > 0 {
		s.DisabledFor--
		return Packet{Tick: tick, Timestamp: now}
	}
	return Packet{
		Amount:    s.BaseRate * float64(s.Level) * sourceYield,
		Tick:      tick,
		Timestamp: now,
	}
}

// Tier derives the hardware tier from the base rate.
func (s *Source) Tier() int { return TierForBaseStat(KindSource, s.BaseRate) }

// MaxLevel is the level ceiling for the current tier.
func (s *Source) MaxLevel() int { return TierMaxLevel(s.Tier()) }

// UpgradeCost prices the next level.
func (s *Source) UpgradeCost() float64 { return UpgradeCost(s.BaseRate, s.Level) }

// Upgrade raises the level by one. It reports false at the tier ceiling;
// installing higher-tier hardware is the only way past it.
func (s *Source) Upgrade() bool {
	if s.Level >= s.MaxLevel() {
		return false
	}
	s.Level++
	return true
}

// Disable takes the source offline for n ticks. Longer outages win.
func (s *Source) Disable(n int) {
	if n > s.DisabledFor {
		s.DisabledFor = n
	}
}

// Disabled reports whether the source is currently dark.
func (s *Source) Disabled() bool { return s.DisabledFor > 0 }
