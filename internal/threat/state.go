package threat

import (
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/defense"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/pipeline"
)

// netDefenseShare is the damage fraction shaved per net-defense level in
// the last link of the mitigation chain.
const netDefenseShare = 0.03

// Stats accumulates combat outcomes over a session.
type Stats struct {
	AttacksGenerated int     `json:"attacks_generated"`
	AttacksSurvived  int     `json:"attacks_survived"`
	DamageRaw        float64 `json:"damage_raw"`
	DamageAbsorbed   float64 `json:"damage_absorbed"`
	DamageMitigated  float64 `json:"damage_mitigated"`
	DamageTaken      float64 `json:"damage_taken"`
	CreditsDrained   float64 `json:"credits_drained"`
}

// DefenseSnapshot freezes the mitigation inputs recomputed each tick.
type DefenseSnapshot struct {
	FirewallReduction float64 `json:"firewall_reduction"`
	StackReduction    float64 `json:"stack_reduction"`
	NetDefenseLevel   int     `json:"net_defense_level"`
	DefensePoints     float64 `json:"defense_points"`
}

// TickDamage traces one attack's damage through the chain for a single
// tick: firewall absorption first, then the stack percentage, then the
// net-defense percentage.
type TickDamage struct {
	AttackID      string  `json:"attack_id"`
	Type          string  `json:"type"`
	Raw           float64 `json:"raw"`
	AfterFirewall float64 `json:"after_firewall"`
	AfterStack    float64 `json:"after_stack"`
	Final         float64 `json:"final"`
	Absorbed      float64 `json:"absorbed"`
	CreditDrain   float64 `json:"credit_drain"`
	BandwidthCut  float64 `json:"bandwidth_cut"`
	ProcessingCut float64 `json:"processing_cut"`
	DisableChance float64 `json:"disable_chance"`
}

// State is the per-session threat aggregate. It has a single owner (the
// engine) and is mutated only inside a tick.
type State struct {
	CurrentLevel int             `json:"current_level"`
	Active       []*Attack       `json:"active"`
	Stats        Stats           `json:"stats"`
	Defense      DefenseSnapshot `json:"defense"`
}

// NewState starts a session at the given threat floor.
func NewState(floor int) *State {
	if floor < 1 {
		floor = 1
	}
	if floor > LevelCount {
		floor = LevelCount
	}
	return &State{CurrentLevel: floor}
}

// UpdateThreatLevel raises the stored level to whichever is higher: the
// level earned by lifetime credits or the campaign floor. It never
// lowers the level within a session.
func (st *State) UpdateThreatLevel(lifetimeCredits float64, campaignFloor int) int {
	level := LevelForCredits(lifetimeCredits)
	if campaignFloor > level {
		level = campaignFloor
	}
	if level > LevelCount {
		level = LevelCount
	}
	if level > st.CurrentLevel {
		st.CurrentLevel = level
	}
	return st.CurrentLevel
}

// UpdateDefense recomputes the mitigation snapshot from the live layers.
func (st *State) UpdateDefense(fw *pipeline.Firewall, stack *defense.Stack) {
	st.Defense = DefenseSnapshot{
		FirewallReduction: fw.DamageReduction(),
		StackReduction:    stack.TotalDamageReduction(),
		NetDefenseLevel:   NetDefenseLevel(fw.Tier(), fw.Level, fw.HealthRatio()),
		DefensePoints:     stack.TotalDefensePoints(),
	}
}

// EffectiveRisk is the display-only risk readout for the current state.
func (st *State) EffectiveRisk() int {
	return EffectiveRisk(st.CurrentLevel, st.Defense.NetDefenseLevel)
}

// Launch registers a freshly generated attack.
func (st *State) Launch(a *Attack) {
	if a == nil {
		return
	}
	st.Active = append(st.Active, a)
	st.Stats.AttacksGenerated++
}

// Age burns one tick off every active attack and returns the ones that
// just expired. An expired attack was survived.
func (st *State) Age() []*Attack {
	var expired []*Attack
	remaining := st.Active[:0]
	for _, a := range st.Active {
		a.TicksRemaining--
		if a.TicksRemaining <= 0 {
			a.TicksRemaining = 0
			expired = append(expired, a)
			st.Stats.AttacksSurvived++
			continue
		}
		remaining = append(remaining, a)
	}
	st.Active = remaining
	return expired
}

// ResolveAttack pushes one active attack's per-tick envelope through the
// mitigation chain and books the result into the session stats. The
// firewall takes its hit here; applying the credit drain and the node
// penalties is the engine's job.
func (st *State) ResolveAttack(a *Attack, at AttackType, fw *pipeline.Firewall, incomePerTick float64) TickDamage {
	scale := a.Severity * IncomeScale(incomePerTick)
	raw := at.Envelope.BaseDamage * scale

	abs := fw.AbsorbDamage(raw)
	afterStack := abs.PassThrough * (1 - st.Defense.StackReduction)
	final := afterStack * (1 - netDefenseShare*float64(st.Defense.NetDefenseLevel))

	// Node pressure shrinks with the stack reduction only; the firewall
	// pool soaks damage, it cannot un-throttle a link.
	soften := 1 - st.Defense.StackReduction
	td := TickDamage{
		AttackID:      a.ID,
		Type:          a.Type,
		Raw:           raw,
		AfterFirewall: abs.PassThrough,
		AfterStack:    afterStack,
		Final:         final,
		Absorbed:      abs.Absorbed,
		CreditDrain:   final * at.Envelope.CreditDrain,
		BandwidthCut:  clampFraction(at.Envelope.BandwidthCut * a.Severity * soften),
		ProcessingCut: clampFraction(at.Envelope.ProcessingCut * a.Severity * soften),
		DisableChance: at.Envelope.DisableChance * a.Severity * soften,
	}

	st.Stats.DamageRaw += td.Raw
	st.Stats.DamageAbsorbed += td.Absorbed
	st.Stats.DamageMitigated += td.Raw - td.Final
	st.Stats.DamageTaken += td.Final
	st.Stats.CreditsDrained += td.CreditDrain
	return td
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 0.95 {
		return 0.95
	}
	return f
}
