package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gymdesk/internal/domain/member"
)

// EditDetailsInput carries the new personal details. Zero values keep the
// existing ones: an empty name, a non-positive age, or a zero join date
// leaves that field unchanged.
type EditDetailsInput struct {
	MemberID  string
	FirstName string
	LastName  string
	Age       int
	JoinDate  time.Time
}

// ExecuteEditDetails rebuilds the member with edited personal details,
// keeping the ID, variant, fee parameters, and performance history, and
// saves a snapshot.
func ExecuteEditDetails(ctx context.Context, input EditDetailsInput, deps ConvertMemberDeps) (*member.Member, error) {
	old, ok := deps.Repo.FindByID(input.MemberID)
	if !ok {
		return nil, ErrMemberNotFound
	}

	firstName := old.FirstName
	if input.FirstName != "" {
		firstName = input.FirstName
	}
	lastName := old.LastName
	if input.LastName != "" {
		lastName = input.LastName
	}
	age := old.Age
	if input.Age > 0 {
		age = input.Age
	}
	joinDate := old.JoinDate
	if !input.JoinDate.IsZero() {
		joinDate = input.JoinDate
	}

	updated := rebuildSameKind(old, firstName, lastName, age, joinDate, old.BaseFee)
	installReplacement(deps.Repo, old, updated)

	if err := saveSnapshot(ctx, deps.Store, deps.Repo); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	slog.Info("member_details_edited", "id", updated.ID, "name", updated.FullName())
	return updated, nil
}
