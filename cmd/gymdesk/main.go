package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"gymdesk/internal/adapters/console"
	"gymdesk/internal/adapters/storage"
	"gymdesk/internal/adapters/storage/csvstore"
	"gymdesk/internal/adapters/storage/sqlitestore"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/member"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	dataDir := envOrDefault("GYMDESK_DATA_DIR", "data")

	var store orchestrators.SnapshotStore
	switch backend := envOrDefault("GYMDESK_STORE", "csv"); backend {
	case "csv":
		store = csvstore.NewStore(
			filepath.Join(dataDir, "members.csv"),
			filepath.Join(dataDir, "performances.csv"),
		)
	case "sqlite":
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			log.Fatalf("failed to create data dir: %v", err)
		}
		dbPath := filepath.Join(dataDir, "gymdesk.db")
		dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatalf("database unreachable: %v", err)
		}
		if err := storage.InitDB(db); err != nil {
			log.Fatalf("failed to initialize database: %v", err)
		}
		store = sqlitestore.NewStore(db)
	default:
		log.Fatalf("unknown GYMDESK_STORE %q (want csv or sqlite)", backend)
	}

	if level := os.Getenv("GYMDESK_LOG_LEVEL"); level == "debug" {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	log.Printf("GymDesk %s starting (data=%s, store=%s)", version, dataDir, envOrDefault("GYMDESK_STORE", "csv"))

	app := &shell{
		prompt:  console.NewPrompter(os.Stdin, os.Stdout),
		repo:    member.NewRepository(),
		store:   store,
		viewer:  csvstore.NewStore("", ""),
		dataDir: dataDir,
	}
	app.run(context.Background())
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// shell drives the interactive menu over the loaded repository.
type shell struct {
	prompt  *console.Prompter
	repo    *member.Repository
	store   orchestrators.SnapshotStore
	viewer  *csvstore.Store // explicit-path reads for the file viewer
	dataDir string
}

func (s *shell) run(ctx context.Context) {
	for {
		fmt.Println()
		fmt.Println("=== GymDesk ===")
		fmt.Println("1. Load member records")
		fmt.Println("2. Add a member")
		fmt.Println("3. Update a member")
		fmt.Println("4. Delete a member")
		fmt.Println("5. Browse a records file")
		fmt.Println("6. Exit")

		switch s.prompt.ReadIntRange("Choose: ", 1, 6) {
		case 1:
			s.loadRecords(ctx)
		case 2:
			s.addMember(ctx)
		case 3:
			s.updateMember(ctx)
		case 4:
			s.deleteMember(ctx)
		case 5:
			s.browseFile(ctx)
		case 6:
			fmt.Println("Goodbye.")
			return
		}
	}
}

func (s *shell) loadRecords(ctx context.Context) {
	skip := !s.prompt.ReadYesNo("Merge performance records too? (y/n): ")
	result, err := orchestrators.ExecuteLoadSnapshot(ctx,
		orchestrators.LoadSnapshotInput{SkipPerformances: skip},
		orchestrators.LoadSnapshotDeps{Repo: s.repo, Store: s.store})
	if err != nil {
		fmt.Println("Load failed:", err)
		return
	}
	fmt.Printf("Loaded %d members", result.Members)
	if !skip {
		fmt.Printf(", attached %d of %d performance records", result.Attached, result.Performances)
		if result.Dropped > 0 {
			fmt.Printf(" (%d had no matching member)", result.Dropped)
		}
	}
	fmt.Println(".")
}

func (s *shell) addMember(ctx context.Context) {
	input := orchestrators.AddMemberInput{
		Kind:      s.readKind(),
		FirstName: s.prompt.ReadLine("First name: "),
		LastName:  s.prompt.ReadLine("Last name: "),
		Age:       s.prompt.ReadInt("Age: "),
		JoinDate:  s.prompt.ReadDate("Join date (YYYY-MM-DD): "),
		BaseFee:   s.prompt.ReadFloat("Base fee: "),
	}
	s.readVariantFees(input.Kind, &input.SessionsPerMonth, &input.FeePerSession,
		&input.SpaAccess, &input.PremiumServiceFee)

	m, err := orchestrators.ExecuteAddMember(ctx, input,
		orchestrators.AddMemberDeps{Repo: s.repo, Store: s.store})
	if err != nil {
		fmt.Println("Add failed:", err)
		return
	}
	fmt.Println("Added:", m.Summary())
}

func (s *shell) updateMember(ctx context.Context) {
	id := s.prompt.ReadLine("Member ID: ")
	old, ok := s.repo.FindByID(id)
	if !ok {
		fmt.Println("No member with that ID. Load records first?")
		return
	}
	fmt.Println("Editing:", old.Summary())

	fmt.Println("1. Change base fee")
	fmt.Println("2. Convert to Regular")
	fmt.Println("3. Convert to Personal Training")
	fmt.Println("4. Convert to Premium")
	fmt.Println("5. Record monthly performance")
	fmt.Println("6. Edit personal details")
	fmt.Println("7. Cancel")

	deps := orchestrators.ConvertMemberDeps{Repo: s.repo, Store: s.store}
	switch s.prompt.ReadIntRange("Choose: ", 1, 7) {
	case 1:
		updated, err := orchestrators.ExecuteChangeBaseFee(ctx, orchestrators.ChangeBaseFeeInput{
			MemberID: id,
			BaseFee:  s.prompt.ReadFloat("New base fee: "),
		}, deps)
		s.reportUpdate(updated, err)
	case 2:
		s.convert(ctx, id, member.KindRegular, deps)
	case 3:
		s.convert(ctx, id, member.KindPersonalTraining, deps)
	case 4:
		s.convert(ctx, id, member.KindPremium, deps)
	case 5:
		s.recordPerformance(ctx, id)
	case 6:
		s.editDetails(ctx, id, old, deps)
	case 7:
		return
	}
}

func (s *shell) convert(ctx context.Context, id, targetKind string, deps orchestrators.ConvertMemberDeps) {
	input := orchestrators.ConvertMemberInput{
		MemberID:   id,
		TargetKind: targetKind,
		BaseFee:    s.prompt.ReadFloat("Base fee: "),
	}
	s.readVariantFees(targetKind, &input.SessionsPerMonth, &input.FeePerSession,
		&input.SpaAccess, &input.PremiumServiceFee)
	updated, err := orchestrators.ExecuteConvertMember(ctx, input, deps)
	s.reportUpdate(updated, err)
}

func (s *shell) recordPerformance(ctx context.Context, id string) {
	input := orchestrators.RecordPerformanceInput{
		MemberID:     id,
		Month:        s.prompt.ReadMonth("Month (YYYY-MM): "),
		GoalAchieved: s.prompt.ReadYesNo("Goal achieved? (y/n): "),
		Rating:       s.prompt.ReadIntRange("Rating (1-5): ", 1, 5),
		Notes:        s.prompt.ReadLine("Notes: "),
	}
	result, err := orchestrators.ExecuteRecordPerformance(ctx, input,
		orchestrators.RecordPerformanceDeps{Repo: s.repo, Store: s.store})
	if err != nil {
		fmt.Println("Record failed:", err)
		return
	}
	fmt.Println("Recorded:", result.Performance.String())
}

func (s *shell) editDetails(ctx context.Context, id string, old *member.Member, deps orchestrators.ConvertMemberDeps) {
	input := orchestrators.EditDetailsInput{
		MemberID:  id,
		FirstName: s.prompt.ReadLineDefault(fmt.Sprintf("First name [%s]: ", old.FirstName), ""),
		LastName:  s.prompt.ReadLineDefault(fmt.Sprintf("Last name [%s]: ", old.LastName), ""),
	}
	if s.prompt.ReadYesNo(fmt.Sprintf("Change age (%d)? (y/n): ", old.Age)) {
		input.Age = s.prompt.ReadInt("Age: ")
	}
	if s.prompt.ReadYesNo(fmt.Sprintf("Change join date (%s)? (y/n): ", old.JoinDate.Format("2006-01-02"))) {
		input.JoinDate = s.prompt.ReadDate("Join date (YYYY-MM-DD): ")
	}
	updated, err := orchestrators.ExecuteEditDetails(ctx, input, deps)
	s.reportUpdate(updated, err)
}

func (s *shell) deleteMember(ctx context.Context) {
	id := s.prompt.ReadLine("Member ID: ")
	if !s.prompt.ReadYesNo("Really delete? (y/n): ") {
		return
	}
	err := orchestrators.ExecuteDeleteMember(ctx, orchestrators.DeleteMemberInput{MemberID: id},
		orchestrators.DeleteMemberDeps{Repo: s.repo, Store: s.store})
	if err != nil {
		fmt.Println("Delete failed:", err)
		return
	}
	fmt.Println("Deleted", id)
}

// browseFile reads an arbitrary members CSV (plus its performances file when
// present) into a throwaway repository and offers read-only views. The live
// repository is untouched.
func (s *shell) browseFile(ctx context.Context) {
	membersPath := s.prompt.ReadLineDefault(
		fmt.Sprintf("Members file [%s]: ", filepath.Join(s.dataDir, "members.csv")),
		filepath.Join(s.dataDir, "members.csv"))
	perfPath := s.prompt.ReadLineDefault(
		fmt.Sprintf("Performances file [%s]: ", filepath.Join(s.dataDir, "performances.csv")),
		filepath.Join(s.dataDir, "performances.csv"))

	members, err := s.viewer.LoadMembersFile(ctx, membersPath)
	if err != nil {
		fmt.Println("Read failed:", err)
		return
	}
	performances, err := s.viewer.LoadPerformancesFile(ctx, perfPath)
	if err != nil {
		fmt.Println("Read failed:", err)
		return
	}
	member.AttachPerformances(members, performances)

	view := member.NewRepository()
	view.ReplaceAll(members)
	fmt.Printf("Read %d members, %d performance records.\n", len(members), len(performances))

	for {
		fmt.Println("1. List all")
		fmt.Println("2. Find by ID")
		fmt.Println("3. Search by name")
		fmt.Println("4. Back")
		switch s.prompt.ReadIntRange("Choose: ", 1, 4) {
		case 1:
			s.printRoster(projections.QueryMemberList(projections.MemberListQuery{},
				projections.MemberListDeps{Members: view}))
		case 2:
			s.printBreakdown(view)
		case 3:
			search := s.prompt.ReadLine("Name contains: ")
			s.printRoster(projections.QueryMemberList(projections.MemberListQuery{Search: search},
				projections.MemberListDeps{Members: view}))
		case 4:
			return
		}
	}
}

func (s *shell) printRoster(entries []projections.MemberListEntry) {
	if len(entries) == 0 {
		fmt.Println("No members.")
		return
	}
	for _, e := range entries {
		fmt.Println(e.Summary)
		if e.HasLatest {
			marker := " "
			if e.LatestPositive {
				marker = "+"
			}
			fmt.Printf("   latest %s %s | avg rating %.1f over %d months\n",
				marker, e.Latest.String(), e.AverageRating, e.Months)
		}
	}
}

func (s *shell) printBreakdown(view *member.Repository) {
	id := s.prompt.ReadLine("Member ID: ")
	month := s.prompt.ReadMonth("Billing month (YYYY-MM): ")
	b, ok := projections.QueryFeeBreakdown(
		projections.FeeBreakdownQuery{MemberID: id, Month: month},
		projections.FeeBreakdownDeps{Members: view})
	if !ok {
		fmt.Println("No member with that ID.")
		return
	}
	fmt.Printf("%s (%s) %s fee for %s\n", b.MemberName, b.MemberID, b.Kind, b.Month.String())
	fmt.Printf("  base fee       %8.2f\n", b.BaseFee)
	if b.VariantExtra != 0 {
		fmt.Printf("  variant extra  %8.2f\n", b.VariantExtra)
	}
	if b.Discount != 0 {
		fmt.Printf("  goal discount  %8.2f\n", -b.Discount)
	}
	if b.Penalty != 0 {
		fmt.Printf("  rating penalty %8.2f\n", b.Penalty)
	}
	if !b.HasPerformance {
		fmt.Println("  (no performance recorded for that month)")
	}
	fmt.Printf("  total          %8.2f\n", b.Total)
}

func (s *shell) readKind() string {
	fmt.Println("1. Regular")
	fmt.Println("2. Personal Training")
	fmt.Println("3. Premium")
	switch s.prompt.ReadIntRange("Membership type: ", 1, 3) {
	case 2:
		return member.KindPersonalTraining
	case 3:
		return member.KindPremium
	default:
		return member.KindRegular
	}
}

func (s *shell) readVariantFees(kind string, sessions *int, feePerSession *float64, spa *bool, premiumFee *float64) {
	switch kind {
	case member.KindPersonalTraining:
		*sessions = s.prompt.ReadInt("Sessions per month: ")
		*feePerSession = s.prompt.ReadFloat("Fee per session: ")
	case member.KindPremium:
		*spa = s.prompt.ReadYesNo("Spa access? (y/n): ")
		if *spa {
			*premiumFee = s.prompt.ReadFloat("Premium service fee: ")
		}
	}
}

func (s *shell) reportUpdate(m *member.Member, err error) {
	if err != nil {
		fmt.Println("Update failed:", err)
		return
	}
	fmt.Println("Updated:", m.Summary())
}
