// Package defense models the defense stack: per-category security
// applications whose points, damage reduction, detection and automation
// values aggregate into the grid's second mitigation layer.
package defense

import "math"

// Category slots a deployed application. Each category holds at most one.
type Category string

const (
	CategoryFirewall   Category = "firewall"
	CategorySIEM       Category = "siem"
	CategoryEndpoint   Category = "endpoint"
	CategoryIDS        Category = "ids"
	CategoryNetwork    Category = "network"
	CategoryEncryption Category = "encryption"
)

// Categories lists every slot in catalog order.
var Categories = []Category{
	CategoryFirewall,
	CategorySIEM,
	CategoryEndpoint,
	CategoryIDS,
	CategoryNetwork,
	CategoryEncryption,
}

// TierCount is the number of application tiers across the progression.
const TierCount = 25

// Application is one deployed security product at a tier and level.
type Application struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Tier     int      `json:"tier"`
	Level    int      `json:"level"`
}

// tierReductionCap is the per-application damage-reduction ceiling by
// tier. T1-T4 step 5% apiece, then +2% per tier from T7 up to 68% at T25.
func tierReductionCap(tier int) float64 {
	switch {
	case tier <= 0:
		return 0
	case tier <= 4:
		return 0.05 * float64(tier)
	case tier == 5:
		return 0.25
	case tier == 6:
		return 0.30
	case tier >= TierCount:
		return 0.68
	default:
		return 0.30 + 0.02*float64(tier-6)
	}
}

// TierMaxLevel is the level ceiling for an application of the given tier.
func TierMaxLevel(tier int) int {
	if tier < 1 {
		tier = 1
	}
	if tier > TierCount {
		tier = TierCount
	}
	return 10 + 2*(tier-1)
}

// DefensePoints scores the application: points double with every tier.
func (a *Application) DefensePoints() float64 {
	return float64(a.Level) * 10 * math.Pow(2, float64(a.Tier-1))
}

// DamageReduction approaches the tier cap as the application levels up:
// half the cap at level 0, the full cap at level 25.
func (a *Application) DamageReduction() float64 {
	cap := tierReductionCap(a.Tier)
	r := cap * (0.5 + 0.02*float64(a.Level))
	if r > cap {
		return cap
	}
	return r
}

// Per-category base values feeding the intelligence ledger. Detection
// finds evidence, automation submits reports, intel multiplies yield.
var categoryProfiles = map[Category]struct {
	detection  float64
	automation int
	intel      float64
}{
	CategoryFirewall:   {detection: 0.05, automation: 0, intel: 1.0},
	CategorySIEM:       {detection: 0.25, automation: 2, intel: 1.5},
	CategoryEndpoint:   {detection: 0.15, automation: 1, intel: 1.1},
	CategoryIDS:        {detection: 0.30, automation: 1, intel: 1.25},
	CategoryNetwork:    {detection: 0.10, automation: 0, intel: 1.05},
	CategoryEncryption: {detection: 0.02, automation: 0, intel: 1.0},
}

// DetectionBonus is the category's footprint-detection contribution,
// growing slightly with tier.
func (a *Application) DetectionBonus() float64 {
	p, ok := categoryProfiles[a.Category]
	if !ok {
		return 0
	}
	return p.detection * (1 + 0.1*float64(a.Tier-1))
}

// AutomationLevel is the category's report-automation contribution.
// Only SIEM-class tooling automates aggressively.
func (a *Application) AutomationLevel() int {
	p, ok := categoryProfiles[a.Category]
	if !ok {
		return 0
	}
	if a.Tier >= 10 {
		return p.automation + 1
	}
	return p.automation
}

// IntelMultiplier scales footprint yield from survived attacks.
func (a *Application) IntelMultiplier() float64 {
	p, ok := categoryProfiles[a.Category]
	if !ok {
		return 1
	}
	return p.intel
}
