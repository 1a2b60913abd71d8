package storage

import "github.com/lndk/hundred-names/internal/game"

// Repository is the persistence surface for the session archive and the
// leaderboard. The live game state never lives here; only value snapshots
// of finished sessions and player accounts do.
type Repository interface {
	// CreateSession stores an archived session snapshot.
	CreateSession(s *game.ArchivedSession) error
	// ListSessions returns every archived session. No ordering is
	// guaranteed; the archive browser sorts client-side.
	ListSessions() ([]game.ArchivedSession, error)
	// ClearSessions deletes all archived sessions. Destructive; any
	// confirmation happens above this layer.
	ClearSessions() error

	CreatePlayer(p *game.Player) error
	GetPlayerByUsername(username string) (*game.Player, error)
	// UpdateBestTime records a finish time for a player, keeping the
	// minimum of the stored and submitted values.
	UpdateBestTime(username string, seconds float64) error
	GetTopPlayers(limit int) ([]game.Player, error)
}
