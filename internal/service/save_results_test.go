package service

import (
	"errors"
	"testing"

	"github.com/lndk/hundred-names/internal/game"
)

type mockRepoSR struct {
	created *game.ArchivedSession
	err     error
}

func (m *mockRepoSR) CreateSession(s *game.ArchivedSession) error {
	if m.err != nil {
		return m.err
	}
	m.created = s
	return nil
}

func (m *mockRepoSR) ListSessions() ([]game.ArchivedSession, error) { return nil, nil }

func (m *mockRepoSR) ClearSessions() error { return nil }

func (m *mockRepoSR) CreatePlayer(p *game.Player) error { return nil }

func (m *mockRepoSR) GetPlayerByUsername(string) (*game.Player, error) {
	return nil, errors.New("not found")
}

func (m *mockRepoSR) UpdateBestTime(string, float64) error { return nil }

func (m *mockRepoSR) GetTopPlayers(int) ([]game.Player, error) { return nil, nil }

func completedSession(t *testing.T) *game.Session {
	t.Helper()
	s := game.NewSession("TESTCODE", 1)
	s.Start()
	for _, p := range []game.Person{
		{Name: "Alan Turing", Gender: game.GenderMale},
		{Name: "Marie Curie", Gender: game.GenderFemale},
	} {
		epoch, _, err := s.BeginSubmission(p.Name)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := s.Admit(epoch, p, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s.EndSubmission(epoch, p.Name)
	}
	return s
}

func TestSaveResults_ArchivesCompletedSession(t *testing.T) {
	s := completedSession(t)
	repo := &mockRepoSR{}

	archived, err := SaveResults(repo, s, "LNDK")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.created == nil {
		t.Fatal("expected the snapshot to be persisted")
	}
	if archived.PlayerName != "LNDK" || archived.Date == "" {
		t.Fatalf("archive missing required fields: %+v", archived)
	}
	if len(archived.Men) != 1 || len(archived.Women) != 1 {
		t.Fatalf("archive must carry both rosters: men=%d women=%d", len(archived.Men), len(archived.Women))
	}
}

func TestSaveResults_RequiresCompletion(t *testing.T) {
	s := game.NewSession("TESTCODE", 1)
	s.Start()

	if _, err := SaveResults(&mockRepoSR{}, s, "LNDK"); !errors.Is(err, game.ErrNotCompleted) {
		t.Fatalf("expected ErrNotCompleted, got %v", err)
	}
}

func TestSaveResults_RequiresPlayerName(t *testing.T) {
	s := completedSession(t)
	if _, err := SaveResults(&mockRepoSR{}, s, ""); !errors.Is(err, ErrPlayerNameRequired) {
		t.Fatalf("expected ErrPlayerNameRequired, got %v", err)
	}
}

func TestSaveResults_StoreFailureLeavesSessionCompleted(t *testing.T) {
	s := completedSession(t)
	repo := &mockRepoSR{err: errors.New("disk full")}

	if _, err := SaveResults(repo, s, "LNDK"); err == nil {
		t.Fatal("expected the store failure to surface")
	}
	if snap := s.Snapshot(); snap.State != game.StateCompleted {
		t.Fatalf("a failed save must leave the session completed and retryable, got %s", snap.State)
	}

	// Retry with a healthy store succeeds.
	repo.err = nil
	if _, err := SaveResults(repo, s, "LNDK"); err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
}
