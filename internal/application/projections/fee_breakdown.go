package projections

import (
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/performance"
)

// FeeBreakdownMemberFinder is the repository surface the breakdown needs.
type FeeBreakdownMemberFinder interface {
	FindByID(id string) (*member.Member, bool)
}

// FeeBreakdownQuery names the member and the billing month.
type FeeBreakdownQuery struct {
	MemberID string
	Month    performance.Month
}

// FeeBreakdownDeps holds dependencies for the fee breakdown projection.
type FeeBreakdownDeps struct {
	Members FeeBreakdownMemberFinder
}

// FeeBreakdown itemizes one month's fee. Discount and penalty are mutually
// exclusive: a goal-achieved month gets the discount and never the penalty,
// regardless of rating.
type FeeBreakdown struct {
	MemberID       string
	MemberName     string
	Kind           string
	Month          performance.Month
	BaseFee        float64
	VariantExtra   float64
	Subtotal       float64
	Discount       float64
	Penalty        float64
	Total          float64
	HasPerformance bool
}

// QueryFeeBreakdown itemizes the monthly fee the same way MonthlyFee
// computes it, so the displayed lines always sum to the charged total.
func QueryFeeBreakdown(query FeeBreakdownQuery, deps FeeBreakdownDeps) (FeeBreakdown, bool) {
	m, ok := deps.Members.FindByID(query.MemberID)
	if !ok {
		return FeeBreakdown{}, false
	}

	b := FeeBreakdown{
		MemberID:     m.ID,
		MemberName:   m.FullName(),
		Kind:         m.Kind,
		Month:        query.Month,
		BaseFee:      m.BaseFee,
		VariantExtra: m.VariantExtra(),
	}
	b.Subtotal = b.BaseFee + b.VariantExtra

	if p, found := m.PerformanceFor(query.Month); found {
		b.HasPerformance = true
		if p.GoalAchieved {
			b.Discount = b.Subtotal * member.GoalDiscountRate
		} else if p.Rating <= member.LowRatingMax {
			b.Penalty = member.LowRatingPenalty
		}
	}

	b.Total = b.Subtotal - b.Discount + b.Penalty
	if b.Total < 0 {
		b.Total = 0
	}
	return b, true
}
