package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/lndk/hundred-names/internal/game"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return NewSQLiteRepository(db)
}

func bestTime(t *testing.T, repo Repository, username string) *float64 {
	t.Helper()
	p, err := repo.GetPlayerByUsername(username)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p.BestTime
}

func TestUpdateBestTimeKeepsMinimum(t *testing.T) {
	repo := newTestRepository(t)
	if err := repo.CreatePlayer(&game.Player{Username: "lndk", PasswordHash: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.UpdateBestTime("lndk", 120.5); err != nil {
		t.Fatalf("first finish must set the time: %v", err)
	}
	if got := bestTime(t, repo, "lndk"); got == nil || *got != 120.5 {
		t.Fatalf("expected best time 120.5, got %v", got)
	}

	// A slower finish leaves the record untouched.
	if err := repo.UpdateBestTime("lndk", 300); err != nil {
		t.Fatalf("slower finish must not error: %v", err)
	}
	if got := bestTime(t, repo, "lndk"); got == nil || *got != 120.5 {
		t.Fatalf("slower finish must keep the minimum, got %v", got)
	}

	// A faster finish replaces it.
	if err := repo.UpdateBestTime("lndk", 90.25); err != nil {
		t.Fatalf("faster finish must update: %v", err)
	}
	if got := bestTime(t, repo, "lndk"); got == nil || *got != 90.25 {
		t.Fatalf("expected best time 90.25, got %v", got)
	}
}

func TestUpdateBestTimeUnknownPlayer(t *testing.T) {
	repo := newTestRepository(t)
	if err := repo.UpdateBestTime("nobody", 60); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestGetTopPlayersOrdersAndLimits(t *testing.T) {
	repo := newTestRepository(t)
	for _, u := range []string{"a", "b", "c", "d"} {
		if err := repo.CreatePlayer(&game.Player{Username: u, PasswordHash: "x"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	for u, s := range map[string]float64{"a": 300, "b": 90, "c": 150} {
		if err := repo.UpdateBestTime(u, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	top, err := repo.GetTopPlayers(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Username != "b" || top[1].Username != "c" {
		t.Fatalf("expected fastest first [b c], got [%s %s]", top[0].Username, top[1].Username)
	}
	// Players with no recorded time never rank.
	for _, p := range top {
		if p.BestTime == nil {
			t.Fatalf("player without a best time must not rank: %+v", p)
		}
	}
}

func TestSessionArchiveRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	archived := &game.ArchivedSession{
		PlayerName: "LNDK",
		Date:       "2025-01-02",
		Men:        []game.Person{{Name: "Alan Turing", WikidataID: "Q7251", Gender: game.GenderMale}},
		Women:      []game.Person{{Name: "Marie Curie", WikidataID: "Q7186", Gender: game.GenderFemale}},
		MenTime:    4.25,
		WomenTime:  1.5,
		TotalTime:  12,
	}
	if err := repo.CreateSession(archived); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sessions, err := repo.ListSessions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	got := sessions[0]
	if got.PlayerName != "LNDK" || len(got.Men) != 1 || len(got.Women) != 1 {
		t.Fatalf("rosters did not survive the round trip: %+v", got)
	}
	if got.Men[0].WikidataID != "Q7251" {
		t.Fatalf("roster entry fields lost: %+v", got.Men[0])
	}

	if err := repo.ClearSessions(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sessions, err = repo.ListSessions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("clear must remove every session, %d remain", len(sessions))
	}
}
