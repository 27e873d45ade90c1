// Package campaign defines the level configuration fed into the engine:
// starting resources, tier availability, victory thresholds, and the
// per-level attack tuning floors.
package campaign

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/threat"
)

// InsaneMultipliers harden a level when insane mode is on.
type InsaneMultipliers struct {
	AttackChance float64 `yaml:"attack_chance" json:"attack_chance"`
	Severity     float64 `yaml:"severity" json:"severity"`
	Income       float64 `yaml:"income" json:"income"`
}

// Level is one campaign mission. The engine reads it, never writes it.
type Level struct {
	Name            string            `yaml:"name" json:"name"`
	Description     string            `yaml:"description,omitempty" json:"description,omitempty"`
	StartingCredits float64           `yaml:"starting_credits" json:"starting_credits"`
	MaxTier         int               `yaml:"max_tier" json:"max_tier"`
	ThreatFloor     int               `yaml:"threat_floor" json:"threat_floor"`
	MinAttackChance float64           `yaml:"min_attack_chance" json:"min_attack_chance"`
	VictoryCredits  float64           `yaml:"victory_credits" json:"victory_credits"`
	VictoryReports  int               `yaml:"victory_reports" json:"victory_reports"`
	Insane          InsaneMultipliers `yaml:"insane" json:"insane"`
}

// Campaign is an ordered list of levels.
type Campaign struct {
	Levels []Level `yaml:"levels"`
}

// Load reads a YAML campaign definition from disk.
func Load(path string) (*Campaign, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read campaign: %w", err)
	}
	var c Campaign
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse campaign: %w", err)
	}
	return &c, nil
}

// Level looks a level up by name.
func (c *Campaign) Level(name string) (*Level, bool) {
	for i := range c.Levels {
		if c.Levels[i].Name == name {
			return &c.Levels[i], true
		}
	}
	return nil, false
}

// Knobs builds the attack-generation tuning for this level. Insane mode
// multiplies the chance floor and base rate.
func (l *Level) Knobs(insane bool) threat.Knobs {
	k := threat.DefaultKnobs()
	if l.MinAttackChance > 0 {
		k.MinimumChance = l.MinAttackChance
	}
	if insane && l.Insane.AttackChance > 0 {
		k.BaseChance *= l.Insane.AttackChance
		k.MinimumChance *= l.Insane.AttackChance
	}
	return k
}

// SeverityMultiplier is the extra severity factor for this level.
func (l *Level) SeverityMultiplier(insane bool) float64 {
	if insane && l.Insane.Severity > 0 {
		return l.Insane.Severity
	}
	return 1
}

// IncomeMultiplier is the income factor for this level.
func (l *Level) IncomeMultiplier(insane bool) float64 {
	if insane && l.Insane.Income > 0 {
		return l.Insane.Income
	}
	return 1
}

// Victory is the read-only win predicate the engine evaluates after each
// tick: enough lifetime credits and enough reports filed.
func (l *Level) Victory(lifetimeCredits float64, reportsSent int) bool {
	if lifetimeCredits < l.VictoryCredits {
		return false
	}
	return reportsSent >= l.VictoryReports
}
