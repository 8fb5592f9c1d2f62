package member_test

import (
	"testing"
	"time"

	"gymdesk/internal/domain/member"
)

func regular(id, first, last string) *member.Member {
	return member.NewRegular(id, first, last, 30, joined, 100)
}

func TestRepositoryAdd(t *testing.T) {
	repo := member.NewRepository()

	if !repo.Add(regular("M1", "Ana", "Silva")) {
		t.Fatal("adding to an empty repository should succeed")
	}
	if repo.Add(nil) {
		t.Error("adding nil should fail")
	}
	if repo.Add(regular("M1", "Other", "Person")) {
		t.Error("duplicate ID should be rejected")
	}
	if repo.Add(regular("m1", "Other", "Person")) {
		t.Error("duplicate ID in a different case should be rejected")
	}
	if repo.Len() != 1 {
		t.Errorf("Len = %d, want 1", repo.Len())
	}
}

func TestRepositoryDelete(t *testing.T) {
	repo := member.NewRepository()
	repo.Add(regular("M1", "Ana", "Silva"))

	if !repo.Delete("m1") {
		t.Error("delete should match case-insensitively")
	}
	if repo.Delete("M1") {
		t.Error("deleting twice should fail")
	}
	if !repo.IsEmpty() {
		t.Error("repository should be empty after the delete")
	}
}

func TestRepositoryFindByID(t *testing.T) {
	repo := member.NewRepository()
	repo.Add(regular("M1", "Ana", "Silva"))

	if m, ok := repo.FindByID("m1"); !ok || m.ID != "M1" {
		t.Errorf("FindByID(m1) = %v, %v; want the M1 member", m, ok)
	}
	if _, ok := repo.FindByID("M9"); ok {
		t.Error("FindByID should miss for an unknown ID")
	}
}

func TestRepositoryFindByName(t *testing.T) {
	repo := member.NewRepository()
	repo.Add(regular("M1", "Ana", "Silva"))
	repo.Add(regular("M2", "Bo", "Silvers"))
	repo.Add(regular("M3", "Cy", "Dube"))

	got := repo.FindByName("silv")
	if len(got) != 2 || got[0].ID != "M1" || got[1].ID != "M2" {
		t.Errorf("FindByName(silv) = %v, want M1 then M2", ids(got))
	}
	if len(repo.FindByName("zzz")) != 0 {
		t.Error("FindByName should return nothing for an unmatched substring")
	}
	if len(repo.FindByName("")) != 3 {
		t.Error("FindByName with an empty needle should match everyone")
	}
}

func TestRepositoryReplace(t *testing.T) {
	jan := month(2024, time.January)
	repo := member.NewRepository()

	old := regular("M1", "Ana", "Silva")
	old.AddPerformance(record(t, "M1", jan, true, 5))
	repo.Add(old)
	repo.Add(regular("M2", "Bo", "Chen"))

	t.Run("backfills history when replacement has none", func(t *testing.T) {
		updated := member.NewPremium("M1", "Ana", "Silva", 30, joined, 120, true, 25)
		if !repo.Replace("m1", updated) {
			t.Fatal("replace should match case-insensitively")
		}
		stored, _ := repo.FindByID("M1")
		if stored.Kind != member.KindPremium {
			t.Errorf("kind = %s, want PREMIUM", stored.Kind)
		}
		if _, ok := stored.PerformanceFor(jan); !ok {
			t.Error("replacement should have inherited the January entry")
		}
		if all := repo.All(); all[0].ID != "M1" || all[1].ID != "M2" {
			t.Errorf("order after replace = %v, want M1 then M2", ids(all))
		}
	})

	t.Run("keeps replacement history when it has its own", func(t *testing.T) {
		updated := regular("M1", "Ana", "Silva")
		updated.AddPerformance(record(t, "M1", month(2024, time.March), false, 3))
		repo.Replace("M1", updated)

		stored, _ := repo.FindByID("M1")
		if _, ok := stored.PerformanceFor(jan); ok {
			t.Error("a replacement with its own history should not be backfilled")
		}
		if stored.HistorySize() != 1 {
			t.Errorf("history size = %d, want 1", stored.HistorySize())
		}
	})

	t.Run("misses unknown IDs", func(t *testing.T) {
		if repo.Replace("M9", regular("M9", "No", "One")) {
			t.Error("replace of an unknown ID should fail")
		}
	})
}

func TestRepositoryReplaceAll(t *testing.T) {
	repo := member.NewRepository()
	repo.Add(regular("M1", "Ana", "Silva"))

	fresh := []*member.Member{regular("M7", "Gil", "Hart"), regular("M8", "Ira", "Jules")}
	repo.ReplaceAll(fresh)

	if repo.Len() != 2 {
		t.Fatalf("Len = %d, want 2", repo.Len())
	}
	if _, ok := repo.FindByID("M1"); ok {
		t.Error("prior contents should be gone after ReplaceAll")
	}

	// The repository must not alias the caller's slice.
	fresh[0] = regular("M9", "Kim", "Lowe")
	if m, _ := repo.FindByID("M7"); m == nil {
		t.Error("mutating the input slice should not affect the repository")
	}
}

func ids(members []*member.Member) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.ID
	}
	return out
}
