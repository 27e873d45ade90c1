package threat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoClampsToScale(t *testing.T) {
	assert.Equal(t, 1, Info(0).Level)
	assert.Equal(t, 1, Info(-5).Level)
	assert.Equal(t, LevelCount, Info(99).Level)
	assert.Equal(t, "syndicates", Info(10).Name)
}

func TestLevelTableMonotonic(t *testing.T) {
	for i := 1; i < LevelCount; i++ {
		prev, cur := Info(i), Info(i+1)
		assert.Greater(t, cur.MinCredits, prev.MinCredits, "level %d", i+1)
		assert.GreaterOrEqual(t, cur.AttackChance, prev.AttackChance, "level %d", i+1)
		assert.Greater(t, cur.SeverityMultiplier, prev.SeverityMultiplier, "level %d", i+1)
	}
}

func TestLevelForCredits(t *testing.T) {
	assert.Equal(t, 1, LevelForCredits(0))
	assert.Equal(t, 1, LevelForCredits(999))
	assert.Equal(t, 2, LevelForCredits(1_000))
	assert.Equal(t, 5, LevelForCredits(300_000))
	assert.Equal(t, 20, LevelForCredits(1e18))
}

func TestNetDefenseLevelClamped(t *testing.T) {
	assert.Equal(t, 0, NetDefenseLevel(1, 1, 0.1)) // 1+0-3 clamps up to 0
	assert.Equal(t, 1, NetDefenseLevel(1, 1, 1.0))
	assert.Equal(t, 2, NetDefenseLevel(1, 5, 1.0))
	assert.Equal(t, 9, NetDefenseLevel(20, 50, 1.0)) // clamps down to 9
}

func TestNetDefenseHealthPenalty(t *testing.T) {
	full := NetDefenseLevel(5, 10, 1.0)
	assert.Equal(t, full-1, NetDefenseLevel(5, 10, 0.6))
	assert.Equal(t, full-2, NetDefenseLevel(5, 10, 0.3))
	assert.Equal(t, full-3, NetDefenseLevel(5, 10, 0.1))
}

func TestEffectiveRiskFloorsAtOne(t *testing.T) {
	assert.Equal(t, 1, EffectiveRisk(3, 9))
	assert.Equal(t, 11, EffectiveRisk(20, 9))
	assert.Equal(t, 1, EffectiveRisk(1, 0))
}
