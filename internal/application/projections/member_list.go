package projections

import (
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/performance"
)

// MemberLister is the repository surface the roster projection needs.
type MemberLister interface {
	All() []*member.Member
	FindByName(name string) []*member.Member
}

// MemberListQuery filters the roster. An empty Search returns everyone.
type MemberListQuery struct {
	Search string
}

// MemberListDeps holds dependencies for the roster projection.
type MemberListDeps struct {
	Members MemberLister
}

// MemberListEntry is one roster line with the member's latest evaluation.
type MemberListEntry struct {
	ID             string
	Name           string
	Kind           string
	Summary        string
	AverageRating  float64
	Months         int
	Latest         performance.Performance
	HasLatest      bool
	LatestPositive bool
}

// QueryMemberList returns roster entries in repository order, filtered by a
// case-insensitive name substring when Search is set.
func QueryMemberList(query MemberListQuery, deps MemberListDeps) []MemberListEntry {
	var members []*member.Member
	if query.Search == "" {
		members = deps.Members.All()
	} else {
		members = deps.Members.FindByName(query.Search)
	}

	entries := make([]MemberListEntry, 0, len(members))
	for _, m := range members {
		entry := MemberListEntry{
			ID:            m.ID,
			Name:          m.FullName(),
			Kind:          m.Kind,
			Summary:       m.Summary(),
			AverageRating: m.AverageRating(),
			Months:        m.HistorySize(),
		}
		if latest, ok := m.LatestPerformance(); ok {
			entry.Latest = latest
			entry.HasLatest = true
			entry.LatestPositive = latest.IsPositive()
		}
		entries = append(entries, entry)
	}
	return entries
}
