package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gymdesk/internal/domain/member"
)

// AddMemberInput carries the already-validated typed values for a new
// member. Variant fields beyond the chosen Kind are ignored.
type AddMemberInput struct {
	Kind      string
	FirstName string
	LastName  string
	Age       int
	JoinDate  time.Time
	BaseFee   float64

	SessionsPerMonth int
	FeePerSession    float64

	SpaAccess         bool
	PremiumServiceFee float64
}

// AddMemberDeps holds dependencies for the add-member orchestrator.
type AddMemberDeps struct {
	Repo       *member.Repository
	Store      SnapshotStore
	GenerateID func() string
}

// ExecuteAddMember creates a member with a generated ID, inserts it, and
// saves a snapshot.
// PRE: input values are syntactically valid (the console layer re-prompts)
// POST: On success the repository holds the new member and both snapshot
// files are rewritten
func ExecuteAddMember(ctx context.Context, input AddMemberInput, deps AddMemberDeps) (*member.Member, error) {
	generate := deps.GenerateID
	if generate == nil {
		generate = NewMemberID
	}

	m, err := buildMember(generate(), input.Kind, input.FirstName, input.LastName,
		input.Age, input.JoinDate, input.BaseFee,
		input.SessionsPerMonth, input.FeePerSession,
		input.SpaAccess, input.PremiumServiceFee)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if !deps.Repo.Add(m) {
		return nil, ErrDuplicateID
	}

	if err := saveSnapshot(ctx, deps.Store, deps.Repo); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	slog.Info("member_added", "id", m.ID, "kind", m.Kind, "name", m.FullName())
	return m, nil
}

// buildMember constructs the variant named by kind.
func buildMember(id, kind, firstName, lastName string, age int, joinDate time.Time, baseFee float64,
	sessionsPerMonth int, feePerSession float64, spaAccess bool, premiumServiceFee float64) (*member.Member, error) {
	switch kind {
	case member.KindRegular:
		return member.NewRegular(id, firstName, lastName, age, joinDate, baseFee), nil
	case member.KindPersonalTraining:
		return member.NewPersonalTraining(id, firstName, lastName, age, joinDate, baseFee, sessionsPerMonth, feePerSession), nil
	case member.KindPremium:
		return member.NewPremium(id, firstName, lastName, age, joinDate, baseFee, spaAccess, premiumServiceFee), nil
	default:
		return nil, member.ErrUnknownKind
	}
}
