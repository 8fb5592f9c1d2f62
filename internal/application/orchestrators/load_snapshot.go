package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"gymdesk/internal/domain/member"
)

// LoadSnapshotInput controls whether the performances file is merged in.
type LoadSnapshotInput struct {
	SkipPerformances bool
}

// LoadSnapshotDeps holds dependencies for the load orchestrator.
type LoadSnapshotDeps struct {
	Repo  *member.Repository
	Store SnapshotStore
}

// LoadSnapshotResult reports what the load brought in.
type LoadSnapshotResult struct {
	Members      int
	Performances int
	Attached     int
	Dropped      int // performances whose member ID matched no loaded member
}

// ExecuteLoadSnapshot loads the member set, optionally merges the
// performances file into it by member ID, and replaces the repository's
// contents. The load is all-or-nothing: on any store error the repository
// keeps its prior state.
func ExecuteLoadSnapshot(ctx context.Context, input LoadSnapshotInput, deps LoadSnapshotDeps) (LoadSnapshotResult, error) {
	members, err := deps.Store.LoadMembers(ctx)
	if err != nil {
		return LoadSnapshotResult{}, fmt.Errorf("load members: %w", err)
	}

	result := LoadSnapshotResult{Members: len(members)}

	if !input.SkipPerformances {
		performances, err := deps.Store.LoadPerformances(ctx)
		if err != nil {
			return LoadSnapshotResult{}, fmt.Errorf("load performances: %w", err)
		}
		result.Performances = len(performances)
		result.Attached = member.AttachPerformances(members, performances)
		result.Dropped = result.Performances - result.Attached
	}

	deps.Repo.ReplaceAll(members)

	slog.Info("snapshot_loaded",
		"members", result.Members,
		"performances", result.Performances,
		"attached", result.Attached,
		"dropped", result.Dropped,
	)
	return result, nil
}

// ExecuteSaveSnapshot writes the repository's members and their flattened
// performance histories through the store, overwriting prior contents.
func ExecuteSaveSnapshot(ctx context.Context, deps LoadSnapshotDeps) error {
	if err := saveSnapshot(ctx, deps.Store, deps.Repo); err != nil {
		return err
	}
	slog.Info("snapshot_saved", "members", deps.Repo.Len())
	return nil
}
