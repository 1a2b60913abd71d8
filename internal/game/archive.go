package game

import "gorm.io/gorm"

// ArchivedSession is the persisted snapshot of a completed game. It is a
// value copy taken at save time, never a live reference: the in-memory
// session can be discarded or reset without touching saved records.
type ArchivedSession struct {
	gorm.Model
	PlayerName string `json:"playerName"`
	Date       string `json:"date"`
	// Rosters are stored as JSON documents; the archive never queries
	// inside them, it only replays them to the archive browser.
	Men       []Person `json:"men" gorm:"serializer:json"`
	Women     []Person `json:"women" gorm:"serializer:json"`
	MenTime   float64  `json:"menTime"`
	WomenTime float64  `json:"womenTime"`
	TotalTime float64  `json:"totalTime"`
}

// Player is a registered leaderboard account. BestTime is nil until the
// player finishes a game; updates only ever lower it.
type Player struct {
	gorm.Model
	Username     string   `json:"username" gorm:"uniqueIndex"`
	PasswordHash string   `json:"-"`
	BestTime     *float64 `json:"best_time"`
}
