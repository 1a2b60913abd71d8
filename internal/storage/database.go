package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lndk/hundred-names/internal/game"
)

// OpenAndMigrate opens the SQLite database at the given path and keeps the
// schema updated via AutoMigrate.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.ArchivedSession{}, &game.Player{}); err != nil {
		return nil, err
	}
	return db, nil
}
