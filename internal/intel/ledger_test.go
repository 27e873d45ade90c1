package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCostMonotonic(t *testing.T) {
	l := NewLedger()
	assert.InDelta(t, 200, l.ReportCost(), 1e-9)
	prev := l.ReportCost()
	for i := 0; i < 50; i++ {
		l.ReportsSent++
		cost := l.ReportCost()
		assert.Greater(t, cost, prev)
		prev = cost
	}
}

func TestSendReportFailsWhenUnaffordable(t *testing.T) {
	l := NewLedger()
	l.FootprintData = 199
	_, ok := l.SendReport()
	assert.False(t, ok)
	assert.InDelta(t, 199, l.FootprintData, 1e-9)
	assert.Zero(t, l.ReportsSent)
}

func TestFirstReportClaimsMilestone(t *testing.T) {
	// Footprint 200, no reports sent: cost is exactly 200; sending zeroes
	// the footprint, claims "first report", and pays 100 + 1000 credits.
	l := NewLedger()
	l.FootprintData = 200
	require.True(t, l.CanSendReport())

	res, ok := l.SendReport()
	require.True(t, ok)
	assert.Zero(t, l.FootprintData)
	assert.Equal(t, 1, l.ReportsSent)
	assert.InDelta(t, 200, res.CostPaid, 1e-9)
	assert.InDelta(t, 1100, res.CreditsEarned, 1e-9)
	require.NotNil(t, res.Milestone)
	assert.Equal(t, "first report", res.Milestone.Name)
}

func TestSendReportDeductsExactlyCost(t *testing.T) {
	l := NewLedger()
	l.ReportsSent = 3
	cost := l.ReportCost()
	l.FootprintData = cost + 17

	res, ok := l.SendReport()
	require.True(t, ok)
	assert.InDelta(t, 17, l.FootprintData, 1e-9)
	assert.Equal(t, 4, l.ReportsSent)
	assert.Equal(t, 4, res.ReportsSent)
}

func TestMilestonesClaimedAtMostOnce(t *testing.T) {
	l := NewLedger()
	claimed := map[string]int{}
	for i := 0; i < 300; i++ {
		l.FootprintData = l.ReportCost()
		res, ok := l.SendReport()
		require.True(t, ok)
		if res.Milestone != nil {
			claimed[res.Milestone.Name]++
		}
	}
	require.Len(t, claimed, len(Milestones))
	for name, n := range claimed {
		assert.Equal(t, 1, n, "milestone %q", name)
	}
}

func TestAccrueScalesWithDetectionAndIntel(t *testing.T) {
	l := NewLedger()
	base := l.Accrue(1, 0, 1)
	assert.InDelta(t, 10, base, 1e-9)

	boosted := l.Accrue(2, 0.5, 1.5)
	assert.InDelta(t, 10*2*1.5*1.5, boosted, 1e-9)
	assert.InDelta(t, base+boosted, l.FootprintData, 1e-9)

	assert.Zero(t, l.Accrue(-3, 1, 1))
}

func TestMilestoneBonusesCompound(t *testing.T) {
	l := NewLedger()
	assert.InDelta(t, 1.0, l.IncomeMultiplier(), 1e-9)
	assert.InDelta(t, 1.0, l.FootprintMultiplier(), 1e-9)
	assert.Zero(t, l.ReportCreditBonus())

	l.Claimed["known informant"] = true
	l.Claimed["trusted source"] = true
	assert.InDelta(t, 1.05*1.08, l.IncomeMultiplier(), 1e-9)
	assert.InDelta(t, 1.1*1.2, l.FootprintMultiplier(), 1e-9)
	assert.InDelta(t, 50, l.ReportCreditBonus(), 1e-9)

	// Footprint bonus feeds back into accrual.
	gained := l.Accrue(1, 0, 1)
	assert.InDelta(t, 10*1.1*1.2, gained, 1e-9)
}

func TestReportCreditBonusAppliesToLaterReports(t *testing.T) {
	l := NewLedger()
	l.Claimed["first report"] = true
	l.Claimed["pattern emerges"] = true
	l.Claimed["known informant"] = true
	l.Claimed["trusted source"] = true // +50 per report
	l.ReportsSent = 30
	l.FootprintData = l.ReportCost()

	res, ok := l.SendReport()
	require.True(t, ok)
	// 100 base + 50 flat bonus; the next milestone (50 reports) is still
	// out of reach, so no lump sum.
	assert.InDelta(t, 150, res.CreditsEarned, 1e-9)
	assert.Nil(t, res.Milestone)
}
