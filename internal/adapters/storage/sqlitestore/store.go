// Package sqlitestore is the SQLite-backed record store. It carries the same
// load/save surface as the CSV store, with full-replace snapshot semantics
// inside a transaction.
package sqlitestore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gymdesk/internal/adapters/storage"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/performance"
)

// Store persists members and performances to SQLite.
type Store struct {
	db storage.SQLDB
}

// NewStore creates a Store on the given database.
func NewStore(db storage.SQLDB) *Store {
	return &Store{db: db}
}

// LoadMembers reads every member row, oldest insert first.
// POST: Returns the member set without performance histories attached
func (s *Store) LoadMembers(ctx context.Context) ([]*member.Member, error) {
	query := `SELECT id, kind, first_name, last_name, age, join_date, base_fee,
		sessions_per_month, fee_per_session, spa_access, premium_service_fee
		FROM member ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	var members []*member.Member
	for rows.Next() {
		var (
			id, kind, firstName, lastName, joinDate string
			age, sessions                           int
			baseFee, perSession, premiumFee         float64
			spa                                     bool
		)
		if err := rows.Scan(&id, &kind, &firstName, &lastName, &age, &joinDate,
			&baseFee, &sessions, &perSession, &spa, &premiumFee); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}

		join, err := time.Parse("2006-01-02", joinDate)
		if err != nil {
			return nil, fmt.Errorf("parse join date for %s: %w", id, err)
		}

		var m *member.Member
		switch kind {
		case member.KindRegular:
			m = member.NewRegular(id, firstName, lastName, age, join, baseFee)
		case member.KindPersonalTraining:
			m = member.NewPersonalTraining(id, firstName, lastName, age, join, baseFee, sessions, perSession)
		case member.KindPremium:
			m = member.NewPremium(id, firstName, lastName, age, join, baseFee, spa, premiumFee)
		default:
			slog.Warn("member_row_skipped", "id", id, "reason", "unknown kind", "kind", kind)
			continue
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// LoadPerformances reads every performance row. Malformed months and
// ratings go through the Performance constructor's coercions, same as the
// CSV loader.
func (s *Store) LoadPerformances(ctx context.Context) ([]performance.Performance, error) {
	query := `SELECT member_id, month, goal_achieved, rating, notes FROM performance ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query performances: %w", err)
	}
	defer rows.Close()

	var performances []performance.Performance
	for rows.Next() {
		var (
			memberID, monthText, notes string
			achieved                   bool
			rating                     int
		)
		if err := rows.Scan(&memberID, &monthText, &achieved, &rating, &notes); err != nil {
			return nil, fmt.Errorf("scan performance: %w", err)
		}

		month, _ := performance.ParseMonth(monthText) // zero month is coerced below
		p, coercions := performance.New(memberID, month, achieved, rating, notes)
		for _, c := range coercions {
			slog.Warn("performance_row_coerced", "member_id", memberID, "field", c.Field, "detail", c.Message)
		}
		performances = append(performances, p)
	}
	return performances, rows.Err()
}

// SaveMembers replaces the stored member set with the given one.
// POST: The member table holds exactly the given members
func (s *Store) SaveMembers(ctx context.Context, members []*member.Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM member"); err != nil {
		return fmt.Errorf("clear members: %w", err)
	}

	insert := `INSERT INTO member (id, kind, first_name, last_name, age, join_date, base_fee,
		sessions_per_month, fee_per_session, spa_access, premium_service_fee)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, m := range members {
		_, err := tx.ExecContext(ctx, insert,
			m.ID,
			m.Kind,
			m.FirstName,
			m.LastName,
			m.Age,
			m.JoinDate.Format("2006-01-02"),
			m.BaseFee,
			m.SessionsPerMonth,
			m.FeePerSession,
			m.SpaAccess,
			m.PremiumServiceFee,
		)
		if err != nil {
			return fmt.Errorf("insert member %s: %w", m.ID, err)
		}
	}

	return tx.Commit()
}

// SavePerformances replaces the stored performance set with the given one.
// POST: The performance table holds exactly the given entries
func (s *Store) SavePerformances(ctx context.Context, performances []performance.Performance) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM performance"); err != nil {
		return fmt.Errorf("clear performances: %w", err)
	}

	insert := `INSERT INTO performance (member_id, month, goal_achieved, rating, notes)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(member_id, month) DO UPDATE SET
		goal_achieved=excluded.goal_achieved, rating=excluded.rating, notes=excluded.notes`

	for _, p := range performances {
		_, err := tx.ExecContext(ctx, insert,
			p.MemberID,
			p.Month.String(),
			p.GoalAchieved,
			p.Rating,
			p.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert performance %s %s: %w", p.MemberID, p.Month, err)
		}
	}

	return tx.Commit()
}
