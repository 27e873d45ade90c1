package defense

import "fmt"

// Band ceilings for the stack's summed damage reduction, indexed by the
// highest deployed tier. Even a fully kitted T25 stack lets 5% through.
func bandCap(tier int) float64 {
	switch {
	case tier <= 4:
		return 0.60
	case tier == 5:
		return 0.70
	case tier == 6:
		return 0.80
	case tier <= 10:
		return 0.85
	case tier <= 15:
		return 0.90
	case tier <= 20:
		return 0.93
	default:
		return 0.95
	}
}

// Stack aggregates at most one deployed application per category.
type Stack struct {
	deployed     map[Category]*Application
	unlockedTier map[Category]int
}

// NewStack builds an empty stack with tier 1 unlocked in every category.
func NewStack() *Stack {
	unlocked := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		unlocked[c] = 1
	}
	return &Stack{
		deployed:     make(map[Category]*Application),
		unlockedTier: unlocked,
	}
}

// Deployed returns the application in a category, or nil.
func (s *Stack) Deployed(c Category) *Application {
	return s.deployed[c]
}

// StackSnapshot is the serializable form of a Stack.
type StackSnapshot struct {
	Deployed      []Application    `json:"deployed"`
	UnlockedTiers map[Category]int `json:"unlocked_tiers"`
}

// Snapshot copies the stack's state in Categories order.
func (s *Stack) Snapshot() StackSnapshot {
	snap := StackSnapshot{UnlockedTiers: make(map[Category]int, len(s.unlockedTier))}
	for c, t := range s.unlockedTier {
		snap.UnlockedTiers[c] = t
	}
	for _, c := range Categories {
		if app := s.deployed[c]; app != nil {
			snap.Deployed = append(snap.Deployed, *app)
		}
	}
	return snap
}

// RestoreStack rebuilds a Stack from a snapshot. Unlocked tiers default
// to 1 for any category the snapshot does not mention.
func RestoreStack(snap StackSnapshot) *Stack {
	s := NewStack()
	for c, t := range snap.UnlockedTiers {
		if t > s.unlockedTier[c] {
			s.unlockedTier[c] = t
		}
	}
	for i := range snap.Deployed {
		app := snap.Deployed[i]
		s.deployed[app.Category] = &app
	}
	return s
}

// UnlockedTier is the highest tier available in a category.
func (s *Stack) UnlockedTier(c Category) int {
	return s.unlockedTier[c]
}

// Deploy installs an application into its category slot, replacing any
// previous one. Deploying above the category's unlocked tier is refused.
func (s *Stack) Deploy(app *Application) error {
	if app == nil {
		return fmt.Errorf("deploy: nil application")
	}
	if _, ok := s.unlockedTier[app.Category]; !ok {
		return fmt.Errorf("deploy %s: unknown category %q", app.Name, app.Category)
	}
	if app.Tier > s.unlockedTier[app.Category] {
		return fmt.Errorf("deploy %s: tier %d not unlocked in %s (have %d)",
			app.Name, app.Tier, app.Category, s.unlockedTier[app.Category])
	}
	if max := TierMaxLevel(app.Tier); app.Level > max {
		app.Level = max
	}
	s.deployed[app.Category] = app
	return nil
}

// UnlockTier opens tier n in a category. It requires tier n-1 already
// unlocked and the deployed application in that category sitting at tier
// n-1's max level; anything else is an error, never a silent pass.
func (s *Stack) UnlockTier(c Category, n int) error {
	cur, ok := s.unlockedTier[c]
	if !ok {
		return fmt.Errorf("unlock tier: unknown category %q", c)
	}
	if n < 2 || n > TierCount {
		return fmt.Errorf("unlock tier: tier %d out of range", n)
	}
	if n != cur+1 {
		return fmt.Errorf("unlock tier %d in %s: tier %d must be unlocked first", n, c, n-1)
	}
	app := s.deployed[c]
	if app == nil {
		return fmt.Errorf("unlock tier %d in %s: nothing deployed", n, c)
	}
	if app.Tier != n-1 || app.Level < TierMaxLevel(n-1) {
		return fmt.Errorf("unlock tier %d in %s: deployed %s is tier %d level %d, need tier %d at level %d",
			n, c, app.Name, app.Tier, app.Level, n-1, TierMaxLevel(n-1))
	}
	s.unlockedTier[c] = n
	return nil
}

// Upgrade raises the deployed application's level by one, refusing past
// the tier ceiling. It reports whether the upgrade happened.
func (s *Stack) Upgrade(c Category) bool {
	app := s.deployed[c]
	if app == nil {
		return false
	}
	if app.Level >= TierMaxLevel(app.Tier) {
		return false
	}
	app.Level++
	return true
}

// HighestTier is the highest deployed tier across all categories.
func (s *Stack) HighestTier() int {
	tier := 0
	for _, app := range s.deployed {
		if app.Tier > tier {
			tier = app.Tier
		}
	}
	return tier
}

// TotalDefensePoints sums points across all deployed applications.
func (s *Stack) TotalDefensePoints() float64 {
	var total float64
	for _, app := range s.deployed {
		total += app.DefensePoints()
	}
	return total
}

// TotalDamageReduction sums per-application reductions, hard-capped by
// the tier band of the highest deployed application.
func (s *Stack) TotalDamageReduction() float64 {
	if len(s.deployed) == 0 {
		return 0
	}
	var total float64
	for _, app := range s.deployed {
		total += app.DamageReduction()
	}
	if cap := bandCap(s.HighestTier()); total > cap {
		return cap
	}
	return total
}

// AttackFrequencyReduction maps total points into [0, 0.5]. The formula
// survives from an earlier balance pass; call sites feed the generator a
// zero instead, since defense investment reduces damage, not frequency.
func (s *Stack) AttackFrequencyReduction() float64 {
	r := s.TotalDefensePoints() / 10000
	if r > 0.5 {
		return 0.5
	}
	return r
}

// TotalDetectionBonus sums detection contributions for footprint accrual.
func (s *Stack) TotalDetectionBonus() float64 {
	var total float64
	for _, app := range s.deployed {
		total += app.DetectionBonus()
	}
	return total
}

// MaxAutomation is the strongest automation level across the stack.
func (s *Stack) MaxAutomation() int {
	best := 0
	for _, app := range s.deployed {
		if a := app.AutomationLevel(); a > best {
			best = a
		}
	}
	return best
}

// TotalIntelMultiplier multiplies every deployed application's intel
// factor. An empty stack multiplies by one.
func (s *Stack) TotalIntelMultiplier() float64 {
	total := 1.0
	for _, app := range s.deployed {
		total *= app.IntelMultiplier()
	}
	return total
}
