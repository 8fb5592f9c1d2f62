package performance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Rating bounds and the default substituted for out-of-range input.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

// Month identifies a calendar month (year + month). The zero value means
// "no month given". Comparable with ==, so it can key maps and drive
// replace-by-month semantics directly.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the Month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// CurrentMonth returns the Month containing the current time.
func CurrentMonth() Month {
	return MonthOf(time.Now())
}

// ParseMonth parses a YYYY-MM string.
// PRE: s is trimmed
// POST: Returns the parsed month, or an error for any other format
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, err
	}
	return MonthOf(t), nil
}

// IsZero reports whether no month was given.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// String formats the month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Coercion records one default substituted during construction, so that
// non-interactive callers can inspect what was coerced instead of relying
// on text printed to a terminal.
type Coercion struct {
	Field   string
	Message string
}

// Performance is one month's evaluation record for one member. Values are
// immutable once constructed; a changed evaluation is a new Performance that
// replaces the old one for that member and month.
type Performance struct {
	MemberID     string
	Month        Month
	GoalAchieved bool
	Rating       int
	Notes        string
}

// New builds a well-formed Performance from possibly-invalid input. It never
// fails: a blank member ID gets a generated UNKNOWN- placeholder, a zero
// month becomes the current month, and an out-of-range rating becomes
// DefaultRating. Every substitution is reported as a Coercion.
// POST: MemberID is non-blank, Month is set, Rating is within [MinRating, MaxRating]
func New(memberID string, month Month, goalAchieved bool, rating int, notes string) (Performance, []Coercion) {
	var coercions []Coercion

	if memberID == "" {
		memberID = "UNKNOWN-" + uuid.NewString()[:8]
		coercions = append(coercions, Coercion{
			Field:   "memberId",
			Message: "blank member ID replaced with " + memberID,
		})
	}
	if month.IsZero() {
		month = CurrentMonth()
		coercions = append(coercions, Coercion{
			Field:   "month",
			Message: "missing month replaced with " + month.String(),
		})
	}
	if rating < MinRating || rating > MaxRating {
		coercions = append(coercions, Coercion{
			Field:   "rating",
			Message: fmt.Sprintf("rating %d out of range [%d,%d], using %d", rating, MinRating, MaxRating, DefaultRating),
		})
		rating = DefaultRating
	}

	return Performance{
		MemberID:     memberID,
		Month:        month,
		GoalAchieved: goalAchieved,
		Rating:       rating,
		Notes:        notes,
	}, coercions
}

// SameRecord reports whether p and other are the same logical record.
// Identity is member ID plus month; achievement, rating, and notes are
// not part of identity.
func (p Performance) SameRecord(other Performance) bool {
	return p.MemberID == other.MemberID && p.Month == other.Month
}

// IsPositive reports whether the month counts as a positive performance:
// the goal was achieved or the rating is 4 or higher.
func (p Performance) IsPositive() bool {
	return p.GoalAchieved || p.Rating >= 4
}

// String returns a one-line summary for console display.
func (p Performance) String() string {
	return fmt.Sprintf("Month: %s, Goal Achieved: %t, Rating: %d, Notes: %s",
		p.Month, p.GoalAchieved, p.Rating, p.Notes)
}
