package orchestrators

import (
	"context"
	"errors"

	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/performance"
)

// SnapshotStore is the persistence boundary the orchestrators write through.
// Both the CSV and the SQLite record stores satisfy it.
type SnapshotStore interface {
	LoadMembers(ctx context.Context) ([]*member.Member, error)
	LoadPerformances(ctx context.Context) ([]performance.Performance, error)
	SaveMembers(ctx context.Context, members []*member.Member) error
	SavePerformances(ctx context.Context, performances []performance.Performance) error
}

// Shared orchestrator errors.
var (
	ErrMemberNotFound = errors.New("member not found")
	ErrDuplicateID    = errors.New("a member with that ID already exists")
)

// FlattenPerformances collects every member's history in roster order, the
// shape the performances snapshot is written in.
func FlattenPerformances(members []*member.Member) []performance.Performance {
	var all []performance.Performance
	for _, m := range members {
		all = append(all, m.History()...)
	}
	return all
}

// saveSnapshot overwrites both snapshot files from the repository's current
// state: the member set and the flattened performance histories.
func saveSnapshot(ctx context.Context, store SnapshotStore, repo *member.Repository) error {
	members := repo.All()
	if err := store.SaveMembers(ctx, members); err != nil {
		return err
	}
	return store.SavePerformances(ctx, FlattenPerformances(members))
}
