package sqlitestore_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"gymdesk/internal/adapters/storage"
	"gymdesk/internal/adapters/storage/sqlitestore"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/performance"
)

var joined = time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)

// openTestDB creates an in-memory SQLite database for testing. The pool is
// pinned to one connection so every query sees the same memory database.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return db
}

func TestMembersRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := sqlitestore.NewStore(openTestDB(t))

	saved := []*member.Member{
		member.NewRegular("M1", "Ana", "Silva", 30, joined, 100),
		member.NewPersonalTraining("M2", "Bo", "Chen", 25, joined, 50, 4, 10),
		member.NewPremium("M3", "Cy", "Dube", 40, joined, 80, true, 25),
	}
	if err := store.SaveMembers(ctx, saved); err != nil {
		t.Fatalf("SaveMembers: %v", err)
	}

	loaded, err := store.LoadMembers(ctx)
	if err != nil {
		t.Fatalf("LoadMembers: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("loaded %d members, want 3", len(loaded))
	}
	for i := range saved {
		if loaded[i].ID != saved[i].ID || loaded[i].Kind != saved[i].Kind {
			t.Errorf("member %d = %s/%s, want %s/%s", i, loaded[i].ID, loaded[i].Kind, saved[i].ID, saved[i].Kind)
		}
	}
	if loaded[1].SessionsPerMonth != 4 || loaded[1].FeePerSession != 10 {
		t.Errorf("personal-training fields lost: %+v", loaded[1])
	}
	if !loaded[2].SpaAccess || loaded[2].PremiumServiceFee != 25 {
		t.Errorf("premium fields lost: %+v", loaded[2])
	}
	if !loaded[0].JoinDate.Equal(joined) {
		t.Errorf("join date = %v, want %v", loaded[0].JoinDate, joined)
	}
}

func TestPerformancesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := sqlitestore.NewStore(openTestDB(t))
	jan := performance.Month{Year: 2024, Month: time.January}

	p, _ := performance.New("M1", jan, true, 5, "solid month")
	if err := store.SavePerformances(ctx, []performance.Performance{p}); err != nil {
		t.Fatalf("SavePerformances: %v", err)
	}

	loaded, err := store.LoadPerformances(ctx)
	if err != nil {
		t.Fatalf("LoadPerformances: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != p {
		t.Errorf("round trip changed the record: %+v, want %+v", loaded, p)
	}
}

func TestSaveReplacesPriorContents(t *testing.T) {
	ctx := context.Background()
	store := sqlitestore.NewStore(openTestDB(t))

	first := []*member.Member{member.NewRegular("M1", "Ana", "Silva", 30, joined, 100)}
	second := []*member.Member{member.NewRegular("M2", "Bo", "Chen", 25, joined, 80)}

	if err := store.SaveMembers(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveMembers(ctx, second); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadMembers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].ID != "M2" {
		t.Errorf("second save should fully replace the first, got %v", loaded)
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	ctx := context.Background()
	store := sqlitestore.NewStore(openTestDB(t))

	members, err := store.LoadMembers(ctx)
	if err != nil || len(members) != 0 {
		t.Errorf("LoadMembers on empty db = %v, %v; want empty, nil", members, err)
	}
	performances, err := store.LoadPerformances(ctx)
	if err != nil || len(performances) != 0 {
		t.Errorf("LoadPerformances on empty db = %v, %v; want empty, nil", performances, err)
	}
}

func TestSaveEmptySetClearsTables(t *testing.T) {
	ctx := context.Background()
	store := sqlitestore.NewStore(openTestDB(t))

	if err := store.SaveMembers(ctx, []*member.Member{
		member.NewRegular("M1", "Ana", "Silva", 30, joined, 100),
	}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveMembers(ctx, nil); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadMembers(ctx)
	if err != nil || len(loaded) != 0 {
		t.Errorf("saving an empty set should clear the table, got %v", loaded)
	}
}
