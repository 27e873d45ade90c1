package pipeline

import "math"

// TierCount is the number of hardware tiers across the whole progression.
const TierCount = 25

// upgradeGrowth is the per-level cost multiplier shared by every node kind.
const upgradeGrowth = 1.18

// NodeKind identifies which threshold table applies to a node's base stat.
type NodeKind string

const (
	KindSource   NodeKind = "source"
	KindLink     NodeKind = "link"
	KindSink     NodeKind = "sink"
	KindFirewall NodeKind = "firewall"
)

// Base-stat thresholds per tier. A node whose base stat reaches
// tierThresholds[k][t-1] is tier t hardware. The tables grow roughly 2.5x
// per tier so the 25 tiers span ten orders of magnitude.
var tierThresholds = map[NodeKind][TierCount]float64{
	KindSource: {
		10, 25, 60, 150, 400,
		1_000, 2_500, 6_000, 15_000, 40_000,
		100_000, 250_000, 600_000, 1_500_000, 4_000_000,
		10_000_000, 25_000_000, 60_000_000, 150_000_000, 400_000_000,
		1_000_000_000, 2_500_000_000, 6_000_000_000, 15_000_000_000, 40_000_000_000,
	},
	KindLink: {
		10, 25, 60, 150, 400,
		1_000, 2_500, 6_000, 15_000, 40_000,
		100_000, 250_000, 600_000, 1_500_000, 4_000_000,
		10_000_000, 25_000_000, 60_000_000, 150_000_000, 400_000_000,
		1_000_000_000, 2_500_000_000, 6_000_000_000, 15_000_000_000, 40_000_000_000,
	},
	KindSink: {
		8, 20, 50, 120, 300,
		800, 2_000, 5_000, 12_000, 30_000,
		80_000, 200_000, 500_000, 1_200_000, 3_000_000,
		8_000_000, 20_000_000, 50_000_000, 120_000_000, 300_000_000,
		800_000_000, 2_000_000_000, 5_000_000_000, 12_000_000_000, 30_000_000_000,
	},
	KindFirewall: {
		100, 250, 600, 1_500, 4_000,
		10_000, 25_000, 60_000, 150_000, 400_000,
		1_000_000, 2_500_000, 6_000_000, 15_000_000, 40_000_000,
		100_000_000, 250_000_000, 600_000_000, 1_500_000_000, 4_000_000_000,
		10_000_000_000, 25_000_000_000, 60_000_000_000, 150_000_000_000, 400_000_000_000,
	},
}

// TierForBaseStat maps a node's base stat to its hardware tier (1..25).
// Stats below the first threshold still count as tier 1.
func TierForBaseStat(kind NodeKind, base float64) int {
	table, ok := tierThresholds[kind]
	if !ok {
		return 1
	}
	tier := 1
	for t := 0; t < TierCount; t++ {
		if base >= table[t] {
			tier = t + 1
		}
	}
	return tier
}

// TierMaxLevel is the level ceiling a node of the given tier can reach
// before the next hardware tier has to be installed.
func TierMaxLevel(tier int) int {
	if tier < 1 {
		tier = 1
	}
	if tier > TierCount {
		tier = TierCount
	}
	return 25 + 5*(tier-1)
}

// UpgradeCost is the credit price of raising a node from level to level+1.
// Every node kind shares the same exponential curve.
func UpgradeCost(base float64, level int) float64 {
	if base < 0 {
		return 0
	}
	if level < 0 {
		level = 0
	}
	return base * math.Pow(upgradeGrowth, float64(level))
}
