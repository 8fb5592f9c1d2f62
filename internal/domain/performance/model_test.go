package performance_test

import (
	"strings"
	"testing"
	"time"

	"gymdesk/internal/domain/performance"
)

func TestNewCoercions(t *testing.T) {
	jan := performance.Month{Year: 2024, Month: time.January}

	tests := []struct {
		name       string
		memberID   string
		month      performance.Month
		rating     int
		wantFields []string
	}{
		{
			name:       "clean input",
			memberID:   "M1",
			month:      jan,
			rating:     4,
			wantFields: nil,
		},
		{
			name:       "blank member ID",
			memberID:   "",
			month:      jan,
			rating:     3,
			wantFields: []string{"memberId"},
		},
		{
			name:       "missing month",
			memberID:   "M1",
			month:      performance.Month{},
			rating:     3,
			wantFields: []string{"month"},
		},
		{
			name:       "rating too low",
			memberID:   "M1",
			month:      jan,
			rating:     0,
			wantFields: []string{"rating"},
		},
		{
			name:       "rating too high",
			memberID:   "M1",
			month:      jan,
			rating:     9,
			wantFields: []string{"rating"},
		},
		{
			name:       "everything wrong",
			memberID:   "",
			month:      performance.Month{},
			rating:     -1,
			wantFields: []string{"memberId", "month", "rating"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, coercions := performance.New(tt.memberID, tt.month, false, tt.rating, "")

			if len(coercions) != len(tt.wantFields) {
				t.Fatalf("got %d coercions, want %d: %v", len(coercions), len(tt.wantFields), coercions)
			}
			for i, field := range tt.wantFields {
				if coercions[i].Field != field {
					t.Errorf("coercion %d field = %q, want %q", i, coercions[i].Field, field)
				}
			}

			if p.MemberID == "" {
				t.Error("MemberID should never be blank after construction")
			}
			if tt.memberID == "" && !strings.HasPrefix(p.MemberID, "UNKNOWN-") {
				t.Errorf("placeholder ID = %q, want UNKNOWN- prefix", p.MemberID)
			}
			if p.Month.IsZero() {
				t.Error("Month should never be zero after construction")
			}
			if p.Rating < performance.MinRating || p.Rating > performance.MaxRating {
				t.Errorf("Rating = %d, want within [%d,%d]", p.Rating, performance.MinRating, performance.MaxRating)
			}
		})
	}
}

func TestNewGeneratesDistinctPlaceholders(t *testing.T) {
	jan := performance.Month{Year: 2024, Month: time.January}
	a, _ := performance.New("", jan, false, 3, "")
	b, _ := performance.New("", jan, false, 3, "")
	if a.MemberID == b.MemberID {
		t.Errorf("two blank-ID records got the same placeholder %q", a.MemberID)
	}
}

func TestSameRecord(t *testing.T) {
	jan := performance.Month{Year: 2024, Month: time.January}
	feb := performance.Month{Year: 2024, Month: time.February}

	base, _ := performance.New("M1", jan, false, 3, "ok")
	sameMonth, _ := performance.New("M1", jan, true, 5, "different data")
	otherMonth, _ := performance.New("M1", feb, false, 3, "ok")
	otherMember, _ := performance.New("M2", jan, false, 3, "ok")

	if !base.SameRecord(sameMonth) {
		t.Error("records for the same member and month should be the same record")
	}
	if base.SameRecord(otherMonth) {
		t.Error("records for different months should not be the same record")
	}
	if base.SameRecord(otherMember) {
		t.Error("records for different members should not be the same record")
	}
}

func TestIsPositive(t *testing.T) {
	jan := performance.Month{Year: 2024, Month: time.January}
	tests := []struct {
		name   string
		goal   bool
		rating int
		want   bool
	}{
		{"goal achieved low rating", true, 1, true},
		{"rating four", false, 4, true},
		{"rating five", false, 5, true},
		{"rating three no goal", false, 3, false},
		{"rating one no goal", false, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := performance.New("M1", jan, tt.goal, tt.rating, "")
			if got := p.IsPositive(); got != tt.want {
				t.Errorf("IsPositive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	m, err := performance.ParseMonth("2024-03")
	if err != nil {
		t.Fatalf("ParseMonth: %v", err)
	}
	if m.Year != 2024 || m.Month != time.March {
		t.Errorf("got %v, want 2024 March", m)
	}
	if m.String() != "2024-03" {
		t.Errorf("String() = %q, want 2024-03", m.String())
	}

	for _, bad := range []string{"", "2024", "2024-13", "03-2024", "2024/03"} {
		if _, err := performance.ParseMonth(bad); err == nil {
			t.Errorf("ParseMonth(%q) should fail", bad)
		}
	}
}

func TestMonthOf(t *testing.T) {
	m := performance.MonthOf(time.Date(2023, time.November, 28, 15, 4, 5, 0, time.UTC))
	want := performance.Month{Year: 2023, Month: time.November}
	if m != want {
		t.Errorf("MonthOf = %v, want %v", m, want)
	}
	if m.IsZero() {
		t.Error("a real month should not be zero")
	}
	if !(performance.Month{}).IsZero() {
		t.Error("the zero Month should report IsZero")
	}
}
