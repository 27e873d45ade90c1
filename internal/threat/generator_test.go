package threat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/rng"
)

// forced generates on every tick; silent never does.
var (
	forced = Knobs{BaseChance: 1, MinimumChance: 100, FrequencyMultiplier: 1}
	silent = Knobs{BaseChance: 0, MinimumChance: 0, FrequencyMultiplier: 1}
)

func TestEffectiveChanceFloorsAtMinimum(t *testing.T) {
	k := Knobs{BaseChance: 0.1, MinimumChance: 2, FrequencyMultiplier: 1}
	assert.InDelta(t, 2, k.EffectiveChance(1), 1e-9)
	assert.InDelta(t, 6, k.EffectiveChance(30), 1e-9) // level clamps to 20, chance 60

	k.FrequencyReduction = 0.5
	assert.InDelta(t, 3, k.EffectiveChance(30), 1e-9)
}

func TestTryGenerateMissedRollYieldsNoAttack(t *testing.T) {
	g := NewGenerator(nil)
	r := rng.New(1)
	for i := 0; i < 200; i++ {
		assert.Nil(t, g.TryGenerate(r, 20, int64(i), silent))
	}
}

func TestTryGenerateRespectsMinThreatLevel(t *testing.T) {
	g := NewGenerator(nil)
	r := rng.New(7)
	for i := 0; i < 200; i++ {
		a := g.TryGenerate(r, 1, int64(i), forced)
		require.NotNil(t, a)
		at, ok := g.TypeByName(a.Type)
		require.True(t, ok)
		assert.LessOrEqual(t, at.MinThreatLevel, 1, "type %s needs level %d", at.Name, at.MinThreatLevel)
	}
}

func TestTryGenerateEmptyCatalogYieldsNoAttack(t *testing.T) {
	g := NewGenerator([]AttackType{{Name: "late", MinThreatLevel: 15, Weight: 10, DurationTicks: 1}})
	r := rng.New(3)
	assert.Nil(t, g.TryGenerate(r, 1, 0, forced))
}

func TestTryGenerateDeterministicGivenSeed(t *testing.T) {
	g := NewGenerator(nil)
	a := g.TryGenerate(rng.New(42), 10, 0, forced)
	b := g.TryGenerate(rng.New(42), 10, 0, forced)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, a.Type, b.Type)
	assert.Equal(t, a.Severity, b.Severity)
	assert.Equal(t, a.TicksRemaining, b.TicksRemaining)
}

func TestTryGenerateSeverityWithinJitterBand(t *testing.T) {
	g := NewGenerator(nil)
	r := rng.New(11)
	base := Info(8).SeverityMultiplier
	for i := 0; i < 200; i++ {
		a := g.TryGenerate(r, 8, int64(i), forced)
		require.NotNil(t, a)
		assert.GreaterOrEqual(t, a.Severity, base*0.8)
		assert.Less(t, a.Severity, base*1.2)
	}
}

func TestTryGenerateWeightWalkMatchesCatalogOrder(t *testing.T) {
	// Two entries, weights 3 and 1: draws 0..2 pick the first, 3 the
	// second. Exercise enough rolls that both appear.
	g := NewGenerator([]AttackType{
		{Name: "common", MinThreatLevel: 1, Weight: 3, DurationTicks: 1},
		{Name: "rare", MinThreatLevel: 1, Weight: 1, DurationTicks: 1},
	})
	r := rng.New(5)
	counts := map[string]int{}
	for i := 0; i < 400; i++ {
		a := g.TryGenerate(r, 1, int64(i), forced)
		require.NotNil(t, a)
		counts[a.Type]++
	}
	assert.Positive(t, counts["common"])
	assert.Positive(t, counts["rare"])
	assert.Greater(t, counts["common"], counts["rare"])
}
