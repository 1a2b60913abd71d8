package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/lndk/hundred-names/internal/game"
	"github.com/lndk/hundred-names/internal/storage"
)

// ErrPlayerNameRequired rejects saves without a player name to file under.
var ErrPlayerNameRequired = errors.New("player name is required")

// SaveResults archives a completed session under the given player name.
// The archived record is a value snapshot: a failed save leaves the
// in-memory session untouched and still Completed, so saving is retryable.
func SaveResults(repo storage.Repository, s *game.Session, playerName string) (*game.ArchivedSession, error) {
	if playerName == "" {
		return nil, ErrPlayerNameRequired
	}
	snap := s.Snapshot()
	if snap.State != game.StateCompleted {
		return nil, game.ErrNotCompleted
	}

	archived := &game.ArchivedSession{
		PlayerName: playerName,
		Date:       time.Now().Format("2006-01-02"),
		Men:        snap.Men,
		Women:      snap.Women,
		MenTime:    sumIntervals(snap.Men),
		WomenTime:  sumIntervals(snap.Women),
		TotalTime:  float64(snap.ElapsedSeconds),
	}
	if err := repo.CreateSession(archived); err != nil {
		return nil, fmt.Errorf("failed to archive session: %w", err)
	}
	return archived, nil
}

// sumIntervals totals the per-admission intervals of one roster, which is
// the time that roster took across the whole game.
func sumIntervals(roster []game.Person) float64 {
	var total float64
	for _, p := range roster {
		total += p.TimeInterval
	}
	return total
}
