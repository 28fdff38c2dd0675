package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/enttlevo/mapai/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSessionLifecycle(t *testing.T) {
	db := openTestDB(t)
	now := time.Unix(1700000000, 0)

	if err := db.CreateSession("s1", now); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	s, err := db.GetSession("s1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if s.ID != "s1" || s.RegionID != "" || s.Province != "" {
		t.Errorf("fresh session = %+v", s)
	}

	if err := db.FocusSession("s1", "r-goma", "Nord-Kivu", now.Add(time.Minute)); err != nil {
		t.Fatalf("FocusSession: %v", err)
	}
	s, err = db.GetSession("s1")
	if err != nil {
		t.Fatalf("GetSession after focus: %v", err)
	}
	if s.RegionID != "r-goma" || s.Province != "Nord-Kivu" {
		t.Errorf("focused session = %+v", s)
	}
	if !s.LastActive.After(s.CreatedAt) {
		t.Errorf("last_active not bumped: %+v", s)
	}

	_, err = db.GetSession("missing")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("GetSession(missing) err = %v, want ErrSessionNotFound", err)
	}
}

func TestListSessionsOrder(t *testing.T) {
	db := openTestDB(t)
	base := time.Unix(1700000000, 0)

	for i, id := range []string{"a", "b", "c"} {
		if err := db.CreateSession(id, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("CreateSession(%s): %v", id, err)
		}
	}
	// "a" becomes the most recently active.
	if err := db.TouchSession("a", base.Add(time.Hour)); err != nil {
		t.Fatalf("TouchSession: %v", err)
	}

	sessions, err := db.ListSessions(10)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 3 || sessions[0].ID != "a" {
		t.Errorf("ListSessions = %+v, want a first", sessions)
	}
}

func TestExchangeHistory(t *testing.T) {
	db := openTestDB(t)
	now := time.Unix(1700000000, 0)
	if err := db.CreateSession("s1", now); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	for i, prompt := range []string{"first", "second", "third"} {
		_, err := db.InsertExchange(domain.Exchange{
			SessionID: "s1",
			Prompt:    prompt,
			Response:  "answer " + prompt,
			Province:  "Kinshasa",
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("InsertExchange: %v", err)
		}
	}

	history, err := db.SessionHistory("s1", 100)
	if err != nil {
		t.Fatalf("SessionHistory: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	// Oldest first, the order the transcript replays in.
	if history[0].Prompt != "first" || history[2].Prompt != "third" {
		t.Errorf("history order wrong: %+v", history)
	}

	if other, _ := db.SessionHistory("other", 100); len(other) != 0 {
		t.Errorf("history for unknown session = %+v", other)
	}
}

func TestRegionCache(t *testing.T) {
	db := openTestDB(t)
	now := time.Unix(1700000000, 0)

	regions := []domain.Region{
		{RegionID: "r1", RegionName: "Goma", ProvinceName: "Nord-Kivu", Lat: "-1.68", Long: "29.22", Summary: "eastern hub"},
		{RegionID: "r2", RegionName: "Matadi", ProvinceName: "Kongo-Central"},
		{RegionID: "", RegionName: "dropped"}, // no id, skipped
	}
	if err := db.UpsertRegions(regions, now); err != nil {
		t.Fatalf("UpsertRegions: %v", err)
	}

	n, err := db.CountRegions()
	if err != nil || n != 2 {
		t.Fatalf("CountRegions = %d, %v; want 2", n, err)
	}

	// Second upsert replaces, not duplicates.
	regions[0].Summary = "updated"
	if err := db.UpsertRegions(regions[:1], now.Add(time.Hour)); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	cached, err := db.ListRegions()
	if err != nil {
		t.Fatalf("ListRegions: %v", err)
	}
	if len(cached) != 2 {
		t.Fatalf("ListRegions length = %d, want 2", len(cached))
	}
	// Alphabetical by region name: Goma before Matadi.
	if cached[0].RegionID != "r1" || cached[0].Summary != "updated" {
		t.Errorf("cached[0] = %+v", cached[0])
	}
}
