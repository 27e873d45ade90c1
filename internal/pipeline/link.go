package pipeline

const (
	linkYield = 1.4 // per-level bandwidth multiplier

	// Excess data on a saturated link is nearly all lost no matter how
	// good the hardware is: loss sits in [0.80, 0.98]. The tiny
	// remainder simply vanishes as deliberate economic friction.
	linkLossFloor    = 0.80
	linkLossPerLevel = 0.02
)

// TransferStats records what happened to the last packet through a link.
type TransferStats struct {
	Incoming    float64 `json:"incoming"`
	Transferred float64 `json:"transferred"`
	Dropped     float64 `json:"dropped"`
}

// Vanished is the slice of the packet that neither arrived nor counted as
// dropped. It is intentionally not conserved.
func (t TransferStats) Vanished() float64 {
	v := t.Incoming - t.Transferred - t.Dropped
	if v < 0 {
		return 0
	}
	return v
}

// Link is a bandwidth-limited uplink between a source and a sink.
type Link struct {
	Name          string        `json:"name"`
	BaseBandwidth float64       `json:"base_bandwidth"`
	Level         int           `json:"level"`
	LastStats     TransferStats `json:"last_stats"`

	// Throttle is the fraction of bandwidth currently cut by active
	// attacks. Set and cleared each tick by the engine's combat phase.
	Throttle float64 `json:"throttle,omitempty"`
}

// NewLink builds a level-1 link.
func NewLink(name string, baseBandwidth float64) *Link {
	if baseBandwidth < 0 {
		baseBandwidth = 0
	}
	return &Link{Name: name, BaseBandwidth: baseBandwidth, Level: 1}
}

// Bandwidth is the uncut per-tick capacity at the current level.
func (l *Link) Bandwidth() float64 {
	return l.BaseBandwidth * float64(l.Level) * linkYield
}

// LossFraction is the share of excess data that is destroyed outright.
func (l *Link) LossFraction() float64 {
	f := 1 - linkLossPerLevel*float64(l.Level)
	if f < linkLossFloor {
		return linkLossFloor
	}
	return f
}

// Transfer pushes a packet toward a sink that can accept at most
// maxAcceptable. Whatever exceeds the effective bandwidth is mostly
// destroyed; the rest of the excess vanishes without appearing in the
// stats. The result is also retained in LastStats.
func (l *Link) Transfer(p Packet, maxAcceptable float64) TransferStats {
	if maxAcceptable < 0 {
		maxAcceptable = 0
	}
	eff := l.Bandwidth() * (1 - l.Throttle)
	if eff > maxAcceptable {
		eff = maxAcceptable
	}
	if eff < 0 {
		eff = 0
	}

	incoming := p.Amount
	if incoming < 0 {
		incoming = 0
	}
	transferred := incoming
	if transferred > eff {
		transferred = eff
	}
	excess := incoming - transferred
	dropped := excess * l.LossFraction()

	l.LastStats = TransferStats{Incoming: incoming, Transferred: transferred, Dropped: dropped}
	return l.LastStats
}

// Tier derives the hardware tier from the base bandwidth.
func (l *Link) Tier() int { return TierForBaseStat(KindLink, l.BaseBandwidth) }

// MaxLevel is the level ceiling for the current tier.
func (l *Link) MaxLevel() int { return TierMaxLevel(l.Tier()) }

// UpgradeCost prices the next level.
func (l *Link) UpgradeCost() float64 { return UpgradeCost(l.BaseBandwidth, l.Level) }

// Upgrade raises the level by one, refusing at the tier ceiling.
func (l *Link) Upgrade() bool {
	if l.Level >= l.MaxLevel() {
		return false
	}
	l.Level++
	return true
}
