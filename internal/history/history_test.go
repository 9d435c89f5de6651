package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testDB(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, path
}

func session(started time.Time, relevant, irrelevant int) Session {
	return Session{
		StartedAt:    started,
		FinishedAt:   started.Add(10 * time.Minute),
		FeedsVisited: 2,
		Relevant:     relevant,
		Irrelevant:   irrelevant,
	}
}

func TestRecordAssignsID(t *testing.T) {
	db, _ := testDB(t)

	id, err := db.RecordSession(session(time.Now(), 1, 2))
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated session id")
	}
	last, err := db.LastSession()
	if err != nil {
		t.Fatalf("last session: %v", err)
	}
	if last != id {
		t.Errorf("last session = %s, want %s", last, id)
	}
}

func TestRecordKeepsGivenID(t *testing.T) {
	db, _ := testDB(t)

	s := session(time.Now(), 0, 0)
	s.ID = "fixed"
	s.Quit = true
	id, err := db.RecordSession(s)
	if err != nil || id != "fixed" {
		t.Fatalf("record = %q, %v", id, err)
	}
	got, err := db.Sessions(0)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(got) != 1 || !got[0].Quit || got[0].FeedsVisited != 2 {
		t.Errorf("unexpected sessions %+v", got)
	}
	if _, err := db.RecordSession(s); err == nil {
		t.Error("expected duplicate id to fail")
	}
}

func TestSessionsNewestFirst(t *testing.T) {
	db, _ := testDB(t)
	now := time.Now()

	for _, offset := range []time.Duration{3 * time.Hour, time.Hour, 2 * time.Hour} {
		if _, err := db.RecordSession(session(now.Add(-offset), 1, 0)); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := db.Sessions(2)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sessions with limit, got %d", len(got))
	}
	if !got[0].StartedAt.After(got[1].StartedAt) {
		t.Errorf("expected newest first, got %v then %v", got[0].StartedAt, got[1].StartedAt)
	}
}

func TestTotals(t *testing.T) {
	db, _ := testDB(t)

	empty, err := db.Totals()
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if empty != (Totals{}) {
		t.Errorf("expected zero totals, got %+v", empty)
	}

	now := time.Now()
	db.RecordSession(session(now, 2, 3))
	db.RecordSession(session(now.Add(-time.Hour), 1, 0))

	got, err := db.Totals()
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if got != (Totals{Sessions: 2, Relevant: 3, Irrelevant: 3}) {
		t.Errorf("unexpected totals %+v", got)
	}
}

func TestPruneDeletesOldSessions(t *testing.T) {
	db, _ := testDB(t)
	now := time.Now()

	db.RecordSession(session(now.Add(-40*24*time.Hour), 1, 1))
	db.RecordSession(session(now.Add(-time.Hour), 1, 1))

	deleted, err := db.Prune(30 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}
	got, _ := db.Sessions(0)
	if len(got) != 1 {
		t.Errorf("expected 1 remaining, got %d", len(got))
	}
}

func TestPruneNothingToDelete(t *testing.T) {
	db, _ := testDB(t)
	db.RecordSession(session(time.Now(), 0, 1))

	deleted, err := db.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deleted, got %d", deleted)
	}
}

func TestStats(t *testing.T) {
	db, path := testDB(t)
	db.RecordSession(session(time.Now(), 1, 0))

	count, size, err := db.Stats(path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 session, got %d", count)
	}
	if size <= 0 {
		t.Errorf("expected positive size, got %d", size)
	}
}

func TestOpenCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "history.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("expected dir to be created: %v", err)
	}
}
