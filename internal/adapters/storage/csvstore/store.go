// Package csvstore persists the member set and its performance histories as
// delimited text files, and restores them by re-attaching performances to
// members by ID.
package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/performance"
)

// Column headers of the two persisted files.
var (
	memberHeader = []string{
		"id", "type", "firstName", "lastName", "age", "joinDate", "baseFee",
		"sessionsPerMonth", "feePerSession", "spaAccess", "premiumServiceFee",
	}
	performanceHeader = []string{"memberId", "month", "goalAchieved", "rating", "notes"}
)

// Store reads and writes the CSV snapshot files. MembersPath and
// PerformancesPath are the fixed snapshot locations; the *File methods
// accept explicit paths for ad-hoc loads and timestamped exports.
type Store struct {
	MembersPath      string
	PerformancesPath string
}

// NewStore creates a Store bound to the given snapshot file paths.
func NewStore(membersPath, performancesPath string) *Store {
	return &Store{MembersPath: membersPath, PerformancesPath: performancesPath}
}

// LoadMembers loads the fixed members snapshot.
func (s *Store) LoadMembers(ctx context.Context) ([]*member.Member, error) {
	return s.LoadMembersFile(ctx, s.MembersPath)
}

// LoadPerformances loads the fixed performances snapshot.
func (s *Store) LoadPerformances(ctx context.Context) ([]performance.Performance, error) {
	return s.LoadPerformancesFile(ctx, s.PerformancesPath)
}

// SaveMembers overwrites the fixed members snapshot.
func (s *Store) SaveMembers(ctx context.Context, members []*member.Member) error {
	return s.SaveMembersFile(ctx, members, s.MembersPath)
}

// SavePerformances overwrites the fixed performances snapshot.
func (s *Store) SavePerformances(ctx context.Context, performances []performance.Performance) error {
	return s.SavePerformancesFile(ctx, performances, s.PerformancesPath)
}

// LoadMembersFile parses a members CSV. A missing file yields an empty set,
// not an error. Rows with fewer than 6 fields or an unknown type are
// skipped; bad age or fee values fall back to 0; a malformed join date
// fails the whole load.
func (s *Store) LoadMembersFile(_ context.Context, path string) ([]*member.Member, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open members file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read members file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var members []*member.Member
	for i, row := range rows[1:] { // skip header
		if len(row) < 6 {
			slog.Warn("member_row_skipped", "row", i+2, "reason", "too few fields")
			continue
		}

		id := field(row, 0)
		kind := strings.ToUpper(strings.TrimSpace(field(row, 1)))
		firstName := field(row, 2)
		lastName := field(row, 3)
		age := parseIntDefault(field(row, 4), 0)
		joinDate, err := time.Parse("2006-01-02", field(row, 5))
		if err != nil {
			return nil, fmt.Errorf("parse join date on row %d: %w", i+2, err)
		}
		baseFee := parseFloatDefault(field(row, 6), 0)

		var m *member.Member
		switch kind {
		case member.KindRegular:
			m = member.NewRegular(id, firstName, lastName, age, joinDate, baseFee)
		case member.KindPersonalTraining:
			sessions := parseIntDefault(field(row, 7), 0)
			perSession := parseFloatDefault(field(row, 8), 0)
			m = member.NewPersonalTraining(id, firstName, lastName, age, joinDate, baseFee, sessions, perSession)
		case member.KindPremium:
			spa := parseBool(field(row, 9))
			premium := parseFloatDefault(field(row, 10), 0)
			m = member.NewPremium(id, firstName, lastName, age, joinDate, baseFee, spa, premium)
		default:
			slog.Warn("member_row_skipped", "row", i+2, "reason", "unknown type", "type", kind)
			continue
		}
		members = append(members, m)
	}
	return members, nil
}

// LoadPerformancesFile parses a performances CSV. A missing file yields an
// empty set, not an error. Rows with fewer than 4 fields are skipped; an
// unparsable month becomes the current month and a bad rating becomes the
// default, both reported through the Performance constructor's coercions.
func (s *Store) LoadPerformancesFile(_ context.Context, path string) ([]performance.Performance, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open performances file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read performances file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var performances []performance.Performance
	for i, row := range rows[1:] {
		if len(row) < 4 {
			slog.Warn("performance_row_skipped", "row", i+2, "reason", "too few fields")
			continue
		}

		memberID := field(row, 0)
		month, _ := performance.ParseMonth(field(row, 1)) // zero month is coerced below
		achieved := parseBool(field(row, 2))
		rating := parseIntDefault(field(row, 3), performance.DefaultRating)
		notes := ""
		if len(row) >= 5 {
			notes = field(row, 4)
		}

		p, coercions := performance.New(memberID, month, achieved, rating, notes)
		for _, c := range coercions {
			slog.Warn("performance_row_coerced", "row", i+2, "field", c.Field, "detail", c.Message)
		}
		performances = append(performances, p)
	}
	return performances, nil
}

// SaveMembersFile writes the header and one row per member, creating parent
// directories and overwriting any existing file.
func (s *Store) SaveMembersFile(_ context.Context, members []*member.Member, path string) error {
	f, err := createTarget(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(memberHeader); err != nil {
		return fmt.Errorf("write members header: %w", err)
	}
	for _, m := range members {
		if err := w.Write(memberRow(m)); err != nil {
			return fmt.Errorf("write member row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush members file: %w", err)
	}
	return nil
}

// SavePerformancesFile writes the header and one row per performance entry,
// creating parent directories and overwriting any existing file.
func (s *Store) SavePerformancesFile(_ context.Context, performances []performance.Performance, path string) error {
	f, err := createTarget(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(performanceHeader); err != nil {
		return fmt.Errorf("write performances header: %w", err)
	}
	for _, p := range performances {
		row := []string{
			p.MemberID,
			p.Month.String(),
			strconv.FormatBool(p.GoalAchieved),
			strconv.Itoa(p.Rating),
			p.Notes,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write performance row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush performances file: %w", err)
	}
	return nil
}

// SaveMembersToNewFile writes members to a timestamped file in the given
// directory and returns the new file's path.
func (s *Store) SaveMembersToNewFile(ctx context.Context, members []*member.Member, dir string) (string, error) {
	path := filepath.Join(targetDir(dir), "members_"+nowStamp()+".csv")
	if err := s.SaveMembersFile(ctx, members, path); err != nil {
		return "", err
	}
	return path, nil
}

// SavePerformancesToNewFile writes performances to a timestamped file in the
// given directory and returns the new file's path.
func (s *Store) SavePerformancesToNewFile(ctx context.Context, performances []performance.Performance, dir string) (string, error) {
	path := filepath.Join(targetDir(dir), "performances_"+nowStamp()+".csv")
	if err := s.SavePerformancesFile(ctx, performances, path); err != nil {
		return "", err
	}
	return path, nil
}

// memberRow flattens a member to the persisted column order. Variant columns
// that do not apply are left empty.
func memberRow(m *member.Member) []string {
	sessions := ""
	perSession := ""
	spa := ""
	premium := ""
	switch m.Kind {
	case member.KindPersonalTraining:
		sessions = strconv.Itoa(m.SessionsPerMonth)
		perSession = formatFee(m.FeePerSession)
	case member.KindPremium:
		spa = strconv.FormatBool(m.SpaAccess)
		premium = formatFee(m.PremiumServiceFee)
	}
	return []string{
		m.ID,
		m.Kind,
		m.FirstName,
		m.LastName,
		strconv.Itoa(m.Age),
		m.JoinDate.Format("2006-01-02"),
		formatFee(m.BaseFee),
		sessions,
		perSession,
		spa,
		premium,
	}
}

func createTarget(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

func targetDir(dir string) string {
	if strings.TrimSpace(dir) == "" {
		return "."
	}
	return dir
}

func nowStamp() string {
	return time.Now().Format("20060102_150405")
}

func formatFee(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseIntDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseFloatDefault(s string, def float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// parseBool accepts the forms the original files carry: "true"/"yes" in any
// case are true, everything else is false.
func parseBool(s string) bool {
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "yes")
}
