package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"gymdesk/internal/domain/member"
)

// DeleteMemberInput names the member to remove.
type DeleteMemberInput struct {
	MemberID string
}

// DeleteMemberDeps holds dependencies for the delete orchestrator.
type DeleteMemberDeps struct {
	Repo  *member.Repository
	Store SnapshotStore
}

// ExecuteDeleteMember removes the member and saves a snapshot.
// POST: Returns ErrMemberNotFound when no ID matched; the snapshot is only
// rewritten after a successful removal
func ExecuteDeleteMember(ctx context.Context, input DeleteMemberInput, deps DeleteMemberDeps) error {
	if !deps.Repo.Delete(input.MemberID) {
		return ErrMemberNotFound
	}

	if err := saveSnapshot(ctx, deps.Store, deps.Repo); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	slog.Info("member_deleted", "id", input.MemberID)
	return nil
}
