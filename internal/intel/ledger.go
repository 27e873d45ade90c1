// Package intel is the footprint/report economy: survived attacks leave
// evidence, evidence buys intelligence reports, and report milestones
// grant permanent grid-wide bonuses.
package intel

const (
	baseReportCost   = 200
	reportCostGrowth = 0.05
	baseFootprint    = 10
	baseReportCredit = 100
)

// Milestone is a one-time report-count threshold with a permanent
// reward. Credits pay out on the claiming report; the multipliers apply
// to every tick after it.
type Milestone struct {
	Reports             int     `json:"reports"`
	Name                string  `json:"name"`
	Credits             float64 `json:"credits"`
	IncomeMultiplier    float64 `json:"income_multiplier"`
	FootprintMultiplier float64 `json:"footprint_multiplier"`
	ReportCreditBonus   float64 `json:"report_credit_bonus"`
}

// Milestones lists the claimable thresholds in ascending order.
var Milestones = []Milestone{
	{Reports: 1, Name: "first report", Credits: 1000, IncomeMultiplier: 1.0, FootprintMultiplier: 1.0},
	{Reports: 5, Name: "pattern emerges", Credits: 5000, IncomeMultiplier: 1.02, FootprintMultiplier: 1.0},
	{Reports: 10, Name: "known informant", Credits: 20_000, IncomeMultiplier: 1.05, FootprintMultiplier: 1.1},
	{Reports: 25, Name: "trusted source", Credits: 100_000, IncomeMultiplier: 1.08, FootprintMultiplier: 1.2, ReportCreditBonus: 50},
	{Reports: 50, Name: "analyst desk", Credits: 750_000, IncomeMultiplier: 1.12, FootprintMultiplier: 1.35, ReportCreditBonus: 150},
	{Reports: 100, Name: "intelligence hub", Credits: 5_000_000, IncomeMultiplier: 1.2, FootprintMultiplier: 1.5, ReportCreditBonus: 500},
	{Reports: 250, Name: "shadow agency", Credits: 100_000_000, IncomeMultiplier: 1.35, FootprintMultiplier: 2.0, ReportCreditBonus: 2500},
}

// ReportResult is what one submitted report paid out.
type ReportResult struct {
	CreditsEarned float64    `json:"credits_earned"`
	CostPaid      float64    `json:"cost_paid"`
	ReportsSent   int        `json:"reports_sent"`
	Milestone     *Milestone `json:"milestone,omitempty"`
}

// Ledger tracks footprint evidence and submitted reports for one
// session. Mutated only by its owning engine, once per tick at most.
type Ledger struct {
	FootprintData float64         `json:"footprint_data"`
	ReportsSent   int             `json:"reports_sent"`
	Claimed       map[string]bool `json:"claimed"`
}

// NewLedger starts an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{Claimed: make(map[string]bool)}
}

// ReportCost rises with every report sent, never falls.
func (l *Ledger) ReportCost() float64 {
	return baseReportCost * (1 + reportCostGrowth*float64(l.ReportsSent))
}

// CanSendReport reports whether the next report is affordable.
func (l *Ledger) CanSendReport() bool {
	return l.FootprintData >= l.ReportCost()
}

// Accrue books evidence from a survived attack: base yield scaled by
// attack severity, the stack's detection bonus, its intel multiplier,
// and any milestone footprint bonus already earned.
func (l *Ledger) Accrue(severity, detectionBonus, intelMultiplier float64) float64 {
	if severity < 0 {
		severity = 0
	}
	gained := baseFootprint * severity * (1 + detectionBonus) * intelMultiplier * l.FootprintMultiplier()
	l.FootprintData += gained
	return gained
}

// SendReport spends the current report cost, bumps the counter, pays the
// report credit, and claims the next milestone if its threshold was just
// crossed. It reports false, untouched, when footprint cannot cover the
// cost.
func (l *Ledger) SendReport() (ReportResult, bool) {
	cost := l.ReportCost()
	if l.FootprintData < cost {
		return ReportResult{}, false
	}
	l.FootprintData -= cost
	l.ReportsSent++

	res := ReportResult{
		CreditsEarned: baseReportCredit + l.ReportCreditBonus(),
		CostPaid:      cost,
		ReportsSent:   l.ReportsSent,
	}
	for i := range Milestones {
		m := Milestones[i]
		if l.ReportsSent >= m.Reports && !l.Claimed[m.Name] {
			l.Claimed[m.Name] = true
			res.CreditsEarned += m.Credits
			res.Milestone = &m
			break
		}
	}
	return res, true
}

// IncomeMultiplier is the product of all claimed milestone income
// bonuses, applied by the engine to pipeline credits.
func (l *Ledger) IncomeMultiplier() float64 {
	total := 1.0
	for _, m := range Milestones {
		if l.Claimed[m.Name] && m.IncomeMultiplier > 0 {
			total *= m.IncomeMultiplier
		}
	}
	return total
}

// FootprintMultiplier is the product of all claimed milestone footprint
// bonuses.
func (l *Ledger) FootprintMultiplier() float64 {
	total := 1.0
	for _, m := range Milestones {
		if l.Claimed[m.Name] && m.FootprintMultiplier > 0 {
			total *= m.FootprintMultiplier
		}
	}
	return total
}

// ReportCreditBonus is the summed flat bonus added to every report.
func (l *Ledger) ReportCreditBonus() float64 {
	var total float64
	for _, m := range Milestones {
		if l.Claimed[m.Name] {
			total += m.ReportCreditBonus
		}
	}
	return total
}
