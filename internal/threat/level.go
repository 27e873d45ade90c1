// Package threat maps grid progress to hostile pressure: an ordinal
// threat scale, stochastic attack generation, and per-tick combat
// resolution through the mitigation chain.
package threat

// LevelCount is the top of the threat scale.
const LevelCount = 20

// LevelInfo tunes one step of the threat scale. AttackChance is a base
// percentage per tick before the generator's knobs apply.
type LevelInfo struct {
	Level              int     `json:"level"`
	Name               string  `json:"name"`
	AttackChance       float64 `json:"attack_chance"`
	SeverityMultiplier float64 `json:"severity_multiplier"`
	MinCredits         float64 `json:"min_credits"`
}

// The scale covers the full 25-tier economy, so the credit thresholds
// span ten orders of magnitude while chance and severity climb gently.
// AttackChance is the full per-level base chance: roughly proportional
// to the level itself, so pressure keeps climbing all the way up.
var levels = [LevelCount]LevelInfo{
	{1, "script kiddies", 1.0, 1.0, 0},
	{2, "opportunists", 1.5, 1.1, 1_000},
	{3, "botnet probes", 2.0, 1.2, 10_000},
	{4, "credential farmers", 3.0, 1.35, 50_000},
	{5, "organized crews", 4.0, 1.5, 250_000},
	{6, "darknet brokers", 5.0, 1.7, 1_000_000},
	{7, "ransomware cells", 6.5, 1.9, 5_000_000},
	{8, "corporate raiders", 8.0, 2.2, 25_000_000},
	{9, "mercenary groups", 10.0, 2.5, 100_000_000},
	{10, "syndicates", 12.0, 2.9, 500_000_000},
	{11, "rival cartels", 14.0, 3.3, 2_500_000_000},
	{12, "insider networks", 17.0, 3.8, 10_000_000_000},
	{13, "contracted APTs", 20.0, 4.4, 50_000_000_000},
	{14, "state proxies", 24.0, 5.0, 250_000_000_000},
	{15, "intelligence agencies", 28.0, 5.8, 1_000_000_000_000},
	{16, "cyber commands", 33.0, 6.6, 5_000_000_000_000},
	{17, "allied taskforces", 38.0, 7.6, 25_000_000_000_000},
	{18, "global dragnets", 44.0, 8.7, 100_000_000_000_000},
	{19, "coordinated states", 50.0, 10.0, 500_000_000_000_000},
	{20, "total war", 60.0, 12.0, 2_500_000_000_000_000},
}

// Info returns the tuning row for a level, clamped into the scale.
func Info(level int) LevelInfo {
	if level < 1 {
		level = 1
	}
	if level > LevelCount {
		level = LevelCount
	}
	return levels[level-1]
}

// LevelForCredits maps cumulative lifetime credits to a threat level.
func LevelForCredits(lifetime float64) int {
	level := 1
	for _, li := range levels {
		if lifetime >= li.MinCredits {
			level = li.Level
		}
	}
	return level
}

// NetDefenseMax caps the display-only net defense scale.
const NetDefenseMax = 9

// NetDefenseLevel rates firewall quality on a 0..9 scale: its tier plus
// a fifth of its level, minus a penalty when health is low. It feeds the
// risk readout only; attack probability never sees it.
func NetDefenseLevel(fwTier, fwLevel int, healthRatio float64) int {
	score := fwTier + fwLevel/5
	switch {
	case healthRatio < 0.25:
		score -= 3
	case healthRatio < 0.50:
		score -= 2
	case healthRatio < 0.75:
		score--
	}
	if score < 0 {
		return 0
	}
	if score > NetDefenseMax {
		return NetDefenseMax
	}
	return score
}

// EffectiveRisk is the number shown on the risk dial: threat minus net
// defense, floored at 1. Display only.
func EffectiveRisk(threatLevel, netDefense int) int {
	r := threatLevel - netDefense
	if r < 1 {
		return 1
	}
	return r
}
