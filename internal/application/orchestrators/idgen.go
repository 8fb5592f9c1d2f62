package orchestrators

import "github.com/google/uuid"

// NewMemberID returns a member identifier in the fixed short random form
// "M" plus 8 hex characters. Orchestrators take ID generation as a
// dependency so tests can substitute deterministic IDs; this is the default.
func NewMemberID() string {
	return "M" + uuid.NewString()[:8]
}
