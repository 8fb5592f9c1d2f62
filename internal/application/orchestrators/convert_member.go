package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gymdesk/internal/domain/member"
)

// ConvertMemberInput carries the target variant and its fee parameters for a
// conversion. The member keeps its ID and profile fields.
type ConvertMemberInput struct {
	MemberID   string
	TargetKind string
	BaseFee    float64

	SessionsPerMonth int
	FeePerSession    float64

	SpaAccess         bool
	PremiumServiceFee float64
}

// ConvertMemberDeps holds dependencies for the conversion orchestrators.
type ConvertMemberDeps struct {
	Repo  *member.Repository
	Store SnapshotStore
}

// ExecuteConvertMember rebuilds the member as the target variant with the
// same ID and profile, copies the full performance history onto the new
// instance, installs it, and saves a snapshot.
// POST: The stored member has the target kind, the same ID, and an
// unchanged performance history
func ExecuteConvertMember(ctx context.Context, input ConvertMemberInput, deps ConvertMemberDeps) (*member.Member, error) {
	old, ok := deps.Repo.FindByID(input.MemberID)
	if !ok {
		return nil, ErrMemberNotFound
	}

	updated, err := buildMember(old.ID, input.TargetKind, old.FirstName, old.LastName,
		old.Age, old.JoinDate, input.BaseFee,
		input.SessionsPerMonth, input.FeePerSession,
		input.SpaAccess, input.PremiumServiceFee)
	if err != nil {
		return nil, err
	}

	installReplacement(deps.Repo, old, updated)

	if err := saveSnapshot(ctx, deps.Store, deps.Repo); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	slog.Info("member_converted", "id", updated.ID, "from", old.Kind, "to", updated.Kind)
	return updated, nil
}

// ChangeBaseFeeInput names the member and its new base fee.
type ChangeBaseFeeInput struct {
	MemberID string
	BaseFee  float64
}

// ExecuteChangeBaseFee rebuilds the member with a new base fee, keeping the
// variant and its fee parameters, and saves a snapshot.
func ExecuteChangeBaseFee(ctx context.Context, input ChangeBaseFeeInput, deps ConvertMemberDeps) (*member.Member, error) {
	old, ok := deps.Repo.FindByID(input.MemberID)
	if !ok {
		return nil, ErrMemberNotFound
	}

	updated := rebuildSameKind(old, old.FirstName, old.LastName, old.Age, old.JoinDate, input.BaseFee)
	installReplacement(deps.Repo, old, updated)

	if err := saveSnapshot(ctx, deps.Store, deps.Repo); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	slog.Info("member_base_fee_changed", "id", updated.ID, "base_fee", input.BaseFee)
	return updated, nil
}

// rebuildSameKind constructs a member of old's variant with the given
// profile fields and base fee, carrying the variant fee parameters over.
func rebuildSameKind(old *member.Member, firstName, lastName string, age int, joinDate time.Time, baseFee float64) *member.Member {
	switch old.Kind {
	case member.KindPersonalTraining:
		return member.NewPersonalTraining(old.ID, firstName, lastName, age, joinDate, baseFee,
			old.SessionsPerMonth, old.FeePerSession)
	case member.KindPremium:
		return member.NewPremium(old.ID, firstName, lastName, age, joinDate, baseFee,
			old.SpaAccess, old.PremiumServiceFee)
	default:
		return member.NewRegular(old.ID, firstName, lastName, age, joinDate, baseFee)
	}
}

// installReplacement copies old's history onto updated month by month, then
// swaps it into the repository. If the replace unexpectedly misses (the ID
// is unchanged, so it should not), it falls back to delete-then-add.
func installReplacement(repo *member.Repository, old, updated *member.Member) {
	for _, p := range old.History() {
		updated.UpsertPerformance(p)
	}
	if !repo.Replace(old.ID, updated) {
		repo.Delete(old.ID)
		repo.Add(updated)
	}
}
