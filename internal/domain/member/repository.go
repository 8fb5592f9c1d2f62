package member

import "strings"

// Repository is the in-memory member collection: at most one member per ID,
// compared case-insensitively, iteration in insertion order. It is built and
// passed explicitly — there is no shared global instance — and assumes a
// single synchronous caller, so no locking.
type Repository struct {
	members []*Member
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Add inserts a member.
// POST: Returns false for a nil member or an already-present ID (any case);
// the existing entry is never mutated
func (r *Repository) Add(m *Member) bool {
	if m == nil {
		return false
	}
	if _, ok := r.FindByID(m.ID); ok {
		return false
	}
	r.members = append(r.members, m)
	return true
}

// Delete removes the member whose ID matches case-insensitively.
// POST: Returns true iff a member was removed
func (r *Repository) Delete(id string) bool {
	for i, m := range r.members {
		if strings.EqualFold(m.ID, id) {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns the member whose ID matches case-insensitively.
func (r *Repository) FindByID(id string) (*Member, bool) {
	for _, m := range r.members {
		if strings.EqualFold(m.ID, id) {
			return m, true
		}
	}
	return nil, false
}

// FindByName returns every member whose full name contains the given text,
// case-insensitively, in repository iteration order.
func (r *Repository) FindByName(name string) []*Member {
	needle := strings.ToLower(name)
	var results []*Member
	for _, m := range r.members {
		if strings.Contains(strings.ToLower(m.FullName()), needle) {
			results = append(results, m)
		}
	}
	return results
}

// Replace installs updated in place of the member matching id. When updated
// carries no performance history of its own, the old entry's history is
// copied over first, so a conversion that forgot to copy history does not
// silently lose it. Callers that merged history themselves are left alone.
// POST: Returns true iff a member with the given ID was found
func (r *Repository) Replace(id string, updated *Member) bool {
	for i, old := range r.members {
		if strings.EqualFold(old.ID, id) {
			if updated.HistorySize() == 0 {
				for _, p := range old.History() {
					updated.UpsertPerformance(p)
				}
			}
			r.members[i] = updated
			return true
		}
	}
	return false
}

// ReplaceAll clears the repository and installs the given members verbatim.
// Used when bulk-loading a snapshot.
func (r *Repository) ReplaceAll(newMembers []*Member) {
	r.members = append(r.members[:0:0], newMembers...)
}

// All returns the members in iteration order. The returned slice is a copy;
// the members themselves are shared.
func (r *Repository) All() []*Member {
	out := make([]*Member, len(r.members))
	copy(out, r.members)
	return out
}

// Len returns the number of members.
func (r *Repository) Len() int {
	return len(r.members)
}

// IsEmpty reports whether the repository holds no members.
func (r *Repository) IsEmpty() bool {
	return len(r.members) == 0
}
