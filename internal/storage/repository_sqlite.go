package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lndk/hundred-names/internal/game"
)

// ErrPlayerNotFound is returned when a username has no account.
var ErrPlayerNotFound = errors.New("player not found")

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateSession(s *game.ArchivedSession) error {
	return r.db.Create(s).Error
}

func (r *sqliteRepository) ListSessions() ([]game.ArchivedSession, error) {
	var sessions []game.ArchivedSession
	if err := r.db.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sqliteRepository) ClearSessions() error {
	// Hard delete: the archive's clear operation removes records for good,
	// so soft-delete rows do not pile up behind gorm's default scope.
	return r.db.Unscoped().Where("1 = 1").Delete(&game.ArchivedSession{}).Error
}

func (r *sqliteRepository) CreatePlayer(p *game.Player) error {
	return r.db.Create(p).Error
}

func (r *sqliteRepository) GetPlayerByUsername(username string) (*game.Player, error) {
	var p game.Player
	err := r.db.Where("username = ?", username).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateBestTime records a finish time, keeping the stored minimum. The
// minimum check lives in the UPDATE's WHERE clause, so two concurrent
// finishes cannot overwrite a better time between a read and a write.
func (r *sqliteRepository) UpdateBestTime(username string, seconds float64) error {
	res := r.db.Model(&game.Player{}).
		Where("username = ? AND (best_time IS NULL OR best_time > ?)", username, seconds).
		Update("best_time", seconds)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either the player does not exist or the stored time is already
		// better. Distinguish the two for the caller.
		if _, err := r.GetPlayerByUsername(username); err != nil {
			return err
		}
	}
	return nil
}

func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.Player, error) {
	var players []game.Player
	err := r.db.Where("best_time IS NOT NULL").
		Order("best_time asc").
		Limit(limit).
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}
