package member

import (
	"errors"
	"fmt"
	"time"

	"gymdesk/internal/domain/performance"
)

// Kind constants identify the membership variant. The values double as the
// "type" column of the persisted member format.
const (
	KindRegular          = "REGULAR"
	KindPersonalTraining = "PT"
	KindPremium          = "PREMIUM"
)

// Fee adjustment rule: at most one of the two applies per month, and the
// goal-achieved discount wins over the low-rating penalty.
const (
	GoalDiscountRate = 0.10
	LowRatingMax     = 2
	LowRatingPenalty = 10.0
)

// Domain errors
var (
	ErrEmptyID        = errors.New("member ID is required")
	ErrEmptyFirstName = errors.New("first name is required")
	ErrEmptyLastName  = errors.New("last name is required")
	ErrZeroJoinDate   = errors.New("join date is required")
	ErrUnknownKind    = errors.New("unknown member kind")
)

// Member is a gym membership record: a profile, a fee policy selected by
// Kind, and an owned history of monthly performance entries. The history is
// unexported so the one-entry-per-month and matching-member invariants
// cannot be bypassed.
type Member struct {
	ID        string
	FirstName string
	LastName  string
	Age       int
	JoinDate  time.Time
	BaseFee   float64
	Kind      string

	// Personal-training fields (KindPersonalTraining only).
	SessionsPerMonth int
	FeePerSession    float64

	// Premium fields (KindPremium only).
	SpaAccess         bool
	PremiumServiceFee float64

	history []performance.Performance
}

// NewRegular builds a regular member with a known ID. ID generation for
// freshly created members is the caller's concern (see the orchestrators'
// GenerateID dependency); uniqueness is the Repository's.
func NewRegular(id, firstName, lastName string, age int, joinDate time.Time, baseFee float64) *Member {
	return &Member{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Age:       age,
		JoinDate:  joinDate,
		BaseFee:   baseFee,
		Kind:      KindRegular,
	}
}

// NewPersonalTraining builds a personal-training member with a known ID.
func NewPersonalTraining(id, firstName, lastName string, age int, joinDate time.Time, baseFee float64, sessionsPerMonth int, feePerSession float64) *Member {
	return &Member{
		ID:               id,
		FirstName:        firstName,
		LastName:         lastName,
		Age:              age,
		JoinDate:         joinDate,
		BaseFee:          baseFee,
		Kind:             KindPersonalTraining,
		SessionsPerMonth: sessionsPerMonth,
		FeePerSession:    feePerSession,
	}
}

// NewPremium builds a premium member with a known ID. The premium service
// fee is forced to zero when the member has no spa access.
func NewPremium(id, firstName, lastName string, age int, joinDate time.Time, baseFee float64, spaAccess bool, premiumServiceFee float64) *Member {
	if !spaAccess {
		premiumServiceFee = 0
	}
	return &Member{
		ID:                id,
		FirstName:         firstName,
		LastName:          lastName,
		Age:               age,
		JoinDate:          joinDate,
		BaseFee:           baseFee,
		Kind:              KindPremium,
		SpaAccess:         spaAccess,
		PremiumServiceFee: premiumServiceFee,
	}
}

// Validate checks if the Member has valid data. Age and base fee are left
// unconstrained here; callers wanting positivity enforce it at their own
// boundary.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (m *Member) Validate() error {
	if m.ID == "" {
		return ErrEmptyID
	}
	if m.FirstName == "" {
		return ErrEmptyFirstName
	}
	if m.LastName == "" {
		return ErrEmptyLastName
	}
	if m.JoinDate.IsZero() {
		return ErrZeroJoinDate
	}
	if m.Kind != KindRegular && m.Kind != KindPersonalTraining && m.Kind != KindPremium {
		return ErrUnknownKind
	}
	return nil
}

// FullName returns "First Last" as used by name search.
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// VariantExtra returns the monthly charge specific to the variant: sessions
// times per-session fee for personal training, the premium service fee for
// premium, zero for regular.
func (m *Member) VariantExtra() float64 {
	switch m.Kind {
	case KindPersonalTraining:
		return float64(m.SessionsPerMonth) * m.FeePerSession
	case KindPremium:
		return m.PremiumServiceFee
	default:
		return 0
	}
}

// MonthlyFee computes the fee for the given month: base fee plus variant
// extra, then at most one performance adjustment. A goal-achieved month gets
// a 10% discount; otherwise a rating of LowRatingMax or below adds a flat
// penalty. Months with no recorded entry are charged unadjusted.
// POST: Returns a fee >= 0
func (m *Member) MonthlyFee(month performance.Month) float64 {
	fee := m.BaseFee + m.VariantExtra()
	if p, ok := m.PerformanceFor(month); ok {
		if p.GoalAchieved {
			fee -= fee * GoalDiscountRate
		} else if p.Rating <= LowRatingMax {
			fee += LowRatingPenalty
		}
	}
	if fee < 0 {
		return 0
	}
	return fee
}

// AddPerformance appends a performance entry, rejecting entries that belong
// to a different member or duplicate an already-recorded month.
// POST: Returns true iff the entry was added
func (m *Member) AddPerformance(p performance.Performance) bool {
	if p.MemberID != m.ID {
		return false
	}
	for _, existing := range m.history {
		if existing.Month == p.Month {
			return false
		}
	}
	m.history = append(m.history, p)
	return true
}

// UpsertPerformance adds the entry, or replaces the existing entry for the
// same month. Entries belonging to a different member are rejected.
// POST: Returns true iff the entry was added or replaced
func (m *Member) UpsertPerformance(p performance.Performance) bool {
	if p.MemberID != m.ID {
		return false
	}
	for i, existing := range m.history {
		if existing.Month == p.Month {
			m.history[i] = p
			return true
		}
	}
	m.history = append(m.history, p)
	return true
}

// PerformanceFor returns the entry recorded for exactly the given month.
// There is no fallback to a nearby month.
func (m *Member) PerformanceFor(month performance.Month) (performance.Performance, bool) {
	for _, p := range m.history {
		if p.Month == month {
			return p, true
		}
	}
	return performance.Performance{}, false
}

// RemovePerformance deletes the entry for the given month.
// POST: Returns true iff an entry was removed
func (m *Member) RemovePerformance(month performance.Month) bool {
	for i, p := range m.history {
		if p.Month == month {
			m.history = append(m.history[:i], m.history[i+1:]...)
			return true
		}
	}
	return false
}

// LatestPerformance returns the most recently recorded entry, in insertion
// order.
func (m *Member) LatestPerformance() (performance.Performance, bool) {
	if len(m.history) == 0 {
		return performance.Performance{}, false
	}
	return m.history[len(m.history)-1], true
}

// AverageRating returns the mean rating across the history, or 0 when no
// performance has been recorded.
func (m *Member) AverageRating() float64 {
	if len(m.history) == 0 {
		return 0
	}
	total := 0
	for _, p := range m.history {
		total += p.Rating
	}
	return float64(total) / float64(len(m.history))
}

// History returns a copy of the performance history in insertion order. The
// member keeps exclusive ownership of the backing slice.
func (m *Member) History() []performance.Performance {
	out := make([]performance.Performance, len(m.history))
	copy(out, m.history)
	return out
}

// HistorySize returns the number of recorded months.
func (m *Member) HistorySize() int {
	return len(m.history)
}

// Summary returns the one-line roster form used by console listings.
func (m *Member) Summary() string {
	return fmt.Sprintf("ID: %s | %s | Joined: %s | Base Fee: $%.2f",
		m.ID, m.FullName(), m.JoinDate.Format("2006-01-02"), m.BaseFee)
}

// AttachPerformances merges separately loaded performance entries into their
// owning members: each entry is upserted by month into the member whose ID
// matches its MemberID exactly. Entries matching no member are dropped
// silently; this is the merge join between the two persisted record sets.
// POST: Returns the number of entries attached
func AttachPerformances(members []*Member, performances []performance.Performance) int {
	byID := make(map[string]*Member, len(members))
	for _, m := range members {
		if _, ok := byID[m.ID]; !ok {
			byID[m.ID] = m
		}
	}

	attached := 0
	for _, p := range performances {
		m, ok := byID[p.MemberID]
		if !ok {
			continue
		}
		if m.UpsertPerformance(p) {
			attached++
		}
	}
	return attached
}
