package pipeline

const (
	firewallYield = 1.5 // per-level max health multiplier

	firewallReductionCap      = 0.6
	firewallReductionPerLevel = 0.05
	firewallRegenFraction     = 0.02
	firewallRepairRate        = 0.5
)

// AbsorbResult describes what the firewall did with one chunk of damage.
type AbsorbResult struct {
	Reduced     float64 `json:"reduced"`
	Absorbed    float64 `json:"absorbed"`
	PassThrough float64 `json:"pass_through"`
}

// Firewall is a damage-absorbing health pool sitting in front of the
// grid. It trims incoming damage by a flat percentage, soaks what it can
// into its health, and passes the rest on to the next mitigation layer.
type Firewall struct {
	Name          string  `json:"name"`
	BaseHealth    float64 `json:"base_health"`
	CurrentHealth float64 `json:"current_health"`
	BaseReduction float64 `json:"base_reduction"`
	Level         int     `json:"level"`
}

// NewFirewall builds a level-1 firewall at full health.
func NewFirewall(name string, baseHealth, baseReduction float64) *Firewall {
	if baseHealth < 0 {
		baseHealth = 0
	}
	if baseReduction < 0 {
		baseReduction = 0
	}
	f := &Firewall{Name: name, BaseHealth: baseHealth, BaseReduction: baseReduction, Level: 1}
	f.CurrentHealth = f.MaxHealth()
	return f
}

// MaxHealth is the health ceiling at the current level.
func (f *Firewall) MaxHealth() float64 {
	return f.BaseHealth * float64(f.Level) * firewallYield
}

// DamageReduction is the flat percentage trimmed off incoming damage
// before absorption, capped at 60%.
func (f *Firewall) DamageReduction() float64 {
	r := f.BaseReduction + float64(f.Level)*firewallReductionPerLevel
	if r > firewallReductionCap {
		return firewallReductionCap
	}
	return r
}

// HealthRatio is current health over max, in [0,1].
func (f *Firewall) HealthRatio() float64 {
	max := f.MaxHealth()
	if max <= 0 {
		return 0
	}
	return f.CurrentHealth / max
}

// AbsorbDamage pushes damage through the reduction and health pool.
// Whatever health cannot soak passes through to the caller. Total over
// the clamped domain: any non-negative damage yields a valid result.
func (f *Firewall) AbsorbDamage(damage float64) AbsorbResult {
	if damage < 0 {
		damage = 0
	}
	reduced := damage * (1 - f.DamageReduction())
	absorbed := reduced
	if absorbed > f.CurrentHealth {
		absorbed = f.CurrentHealth
	}
	f.CurrentHealth -= absorbed
	return AbsorbResult{Reduced: reduced, Absorbed: absorbed, PassThrough: reduced - absorbed}
}

// Regenerate restores a slice of max health, once per tick, and returns
// how much came back.
func (f *Firewall) Regenerate() float64 {
	missing := f.MaxHealth() - f.CurrentHealth
	if missing <= 0 {
		return 0
	}
	regen := f.MaxHealth() * firewallRegenFraction * float64(f.Level)
	if regen > missing {
		regen = missing
	}
	f.CurrentHealth += regen
	return regen
}

// RepairCost prices an instant full restore.
func (f *Firewall) RepairCost() float64 {
	missing := f.MaxHealth() - f.CurrentHealth
	if missing < 0 {
		return 0
	}
	return missing * firewallRepairRate
}

// Repair restores health to full. Charging the repair cost is the
// caller's job.
func (f *Firewall) Repair() {
	f.CurrentHealth = f.MaxHealth()
}

// Tier derives the hardware tier from the base health.
func (f *Firewall) Tier() int { return TierForBaseStat(KindFirewall, f.BaseHealth) }

// MaxLevel is the level ceiling for the current tier.
func (f *Firewall) MaxLevel() int { return TierMaxLevel(f.Tier()) }

// UpgradeCost prices the next level.
func (f *Firewall) UpgradeCost() float64 { return UpgradeCost(f.BaseHealth, f.Level) }

// Upgrade raises the level by one, refusing at the tier ceiling. Current
// health carries over; the larger pool fills back via regeneration.
func (f *Firewall) Upgrade() bool {
	if f.Level >= f.MaxLevel() {
		return false
	}
	f.Level++
	return true
}
