package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/performance"
)

// RecordPerformanceInput carries one month's evaluation for a member.
type RecordPerformanceInput struct {
	MemberID     string
	Month        performance.Month
	GoalAchieved bool
	Rating       int
	Notes        string
}

// RecordPerformanceDeps holds dependencies for recording a performance.
type RecordPerformanceDeps struct {
	Repo  *member.Repository
	Store SnapshotStore
}

// RecordPerformanceResult reports the stored entry and any defaults the
// constructor substituted.
type RecordPerformanceResult struct {
	Performance performance.Performance
	Coercions   []performance.Coercion
}

// ExecuteRecordPerformance upserts the month's evaluation on the member and
// saves a snapshot. Recording the same month again replaces the entry; the
// history never holds two entries for one month.
func ExecuteRecordPerformance(ctx context.Context, input RecordPerformanceInput, deps RecordPerformanceDeps) (RecordPerformanceResult, error) {
	m, ok := deps.Repo.FindByID(input.MemberID)
	if !ok {
		return RecordPerformanceResult{}, ErrMemberNotFound
	}

	// Build against the member's canonical ID: the lookup is
	// case-insensitive, attachment is exact.
	p, coercions := performance.New(m.ID, input.Month, input.GoalAchieved, input.Rating, input.Notes)
	for _, c := range coercions {
		slog.Warn("performance_input_coerced", "member_id", m.ID, "field", c.Field, "detail", c.Message)
	}

	m.UpsertPerformance(p)

	if err := saveSnapshot(ctx, deps.Store, deps.Repo); err != nil {
		return RecordPerformanceResult{}, fmt.Errorf("save snapshot: %w", err)
	}

	slog.Info("performance_recorded", "member_id", m.ID, "month", p.Month.String(), "rating", p.Rating, "goal", p.GoalAchieved)
	return RecordPerformanceResult{Performance: p, Coercions: coercions}, nil
}
