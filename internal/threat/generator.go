package threat

import (
	"math/rand"

	"github.com/google/uuid"
)

// Knobs tune attack generation per campaign level. FrequencyReduction
// survives from an earlier balance pass where defense points slowed the
// attack rate; current call sites always pass zero.
type Knobs struct {
	BaseChance          float64 `yaml:"base_chance" json:"base_chance"`
	MinimumChance       float64 `yaml:"minimum_chance" json:"minimum_chance"`
	FrequencyMultiplier float64 `yaml:"frequency_multiplier" json:"frequency_multiplier"`
	FrequencyReduction  float64 `yaml:"frequency_reduction" json:"frequency_reduction"`
}

// DefaultKnobs is the baseline tuning used when a campaign level does
// not override it.
func DefaultKnobs() Knobs {
	return Knobs{BaseChance: 1.0, MinimumChance: 1.0, FrequencyMultiplier: 1.0}
}

// Generator rolls for new attacks against a catalog. All randomness
// comes from the *rand.Rand handed into each call, never from package
// state, so runs replay bit-for-bit.
type Generator struct {
	catalog []AttackType
}

// NewGenerator builds a generator over the given catalog; nil means the
// built-in one.
func NewGenerator(catalog []AttackType) *Generator {
	if catalog == nil {
		catalog = Catalog()
	}
	return &Generator{catalog: catalog}
}

// Catalog returns the generator's attack-type table.
func (g *Generator) Catalog() []AttackType { return g.catalog }

// TypeByName looks up an attack type, for injected attacks.
func (g *Generator) TypeByName(name string) (AttackType, bool) {
	for _, at := range g.catalog {
		if at.Name == name {
			return at, true
		}
	}
	return AttackType{}, false
}

// EffectiveChance is the per-tick attack probability in percent. The
// threat-level table supplies the level-proportional base; the knobs
// scale it per campaign.
func (k Knobs) EffectiveChance(level int) float64 {
	c := k.BaseChance * Info(level).AttackChance * k.FrequencyMultiplier * (1 - k.FrequencyReduction)
	if c < k.MinimumChance {
		return k.MinimumChance
	}
	return c
}

// TryGenerate rolls for a new attack at the given threat level. It
// returns nil when the roll misses or no catalog entry is eligible.
//
// Selection is cumulative-weight sampling over the eligible entries in
// catalog order: a uniform draw in [0,total) walks the list subtracting
// weights until it goes negative. The same draw against the same catalog
// always picks the same entry.
func (g *Generator) TryGenerate(r *rand.Rand, level int, tick int64, k Knobs) *Attack {
	roll := r.Float64() * 100
	if roll >= k.EffectiveChance(level) {
		return nil
	}

	var eligible []AttackType
	total := 0
	for _, at := range g.catalog {
		if level >= at.MinThreatLevel && at.Weight > 0 {
			eligible = append(eligible, at)
			total += at.Weight
		}
	}
	if total == 0 {
		return nil
	}

	draw := r.Intn(total)
	var chosen AttackType
	for _, at := range eligible {
		draw -= at.Weight
		if draw < 0 {
			chosen = at
			break
		}
	}

	severity := Info(level).SeverityMultiplier * (0.8 + r.Float64()*0.4)
	return &Attack{
		ID:             uuid.New().String(),
		Type:           chosen.Name,
		Severity:       severity,
		TicksRemaining: chosen.DurationTicks,
		StartedTick:    tick,
	}
}
