package pipeline

const sinkYield = 1.3 // per-level processing multiplier

// ProcessResult is one tick's worth of conversion work.
type ProcessResult struct {
	Processed float64 `json:"processed"`
	Credits   float64 `json:"credits"`
}

// Sink buffers delivered data and converts it into credits.
type Sink struct {
	Name           string  `json:"name"`
	BaseRate       float64 `json:"base_rate"`
	ConversionRate float64 `json:"conversion_rate"`
	BaseCapacity   float64 `json:"base_capacity"`
	Level          int     `json:"level"`
	Buffer         float64 `json:"buffer"`

	// Slowdown is the fraction of processing capacity currently cut by
	// active attacks. Set and cleared each tick by the engine's combat
	// phase.
	Slowdown float64 `json:"slowdown,omitempty"`
}

// NewSink builds a level-1 sink with an empty buffer.
func NewSink(name string, baseRate, conversionRate, baseCapacity float64) *Sink {
	if baseRate < 0 {
		baseRate = 0
	}
	if conversionRate < 0 {
		conversionRate = 0
	}
	if baseCapacity < 0 {
		baseCapacity = 0
	}
	return &Sink{
		Name:           name,
		BaseRate:       baseRate,
		ConversionRate: conversionRate,
		BaseCapacity:   baseCapacity,
		Level:          1,
	}
}

// Capacity is the buffer ceiling at the current level.
func (s *Sink) Capacity() float64 {
	return s.BaseCapacity * float64(s.Level)
}

// BufferRemaining is how much more data the buffer can take this tick.
func (s *Sink) BufferRemaining() float64 {
	r := s.Capacity() - s.Buffer
	if r < 0 {
		return 0
	}
	return r
}

// ProcessingRate is the per-tick conversion throughput, after any attack
// slowdown.
func (s *Sink) ProcessingRate() float64 {
	return s.BaseRate * float64(s.Level) * sinkYield * (1 - s.Slowdown)
}

// Receive buffers up to BufferRemaining of amount and returns how much
// was actually accepted. The rest stays on the caller's side of the wire.
func (s *Sink) Receive(amount float64) float64 {
	if amount < 0 {
		amount = 0
	}
	accepted := amount
	if r := s.BufferRemaining(); accepted > r {
		accepted = r
	}
	s.Buffer += accepted
	return accepted
}

// Process drains the buffer at the processing rate and converts the
// drained data into credits.
func (s *Sink) Process() ProcessResult {
	processed := s.Buffer
	if rate := s.ProcessingRate(); processed > rate {
		processed = rate
	}
	if processed < 0 {
		processed = 0
	}
	s.Buffer -= processed
	return ProcessResult{Processed: processed, Credits: processed * s.ConversionRate}
}

// Tier derives the hardware tier from the base rate.
func (s *Sink) Tier() int { return TierForBaseStat(KindSink, s.BaseRate) }

// MaxLevel is the level ceiling for the current tier.
func (s *Sink) MaxLevel() int { return TierMaxLevel(s.Tier()) }

// UpgradeCost prices the next level.
func (s *Sink) UpgradeCost() float64 { return UpgradeCost(s.BaseRate, s.Level) }

// Upgrade raises the level by one, refusing at the tier ceiling. The
// buffer carries over untouched; capacity only ever grows.
func (s *Sink) Upgrade() bool {
	if s.Level >= s.MaxLevel() {
		return false
	}
	s.Level++
	return true
}
