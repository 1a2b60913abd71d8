package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lndk/hundred-names/internal/game"
	"github.com/lndk/hundred-names/internal/similarity"
	"github.com/lndk/hundred-names/internal/wikidata"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database *struct {
		Path string `json:"path"`
	} `json:"database"`
	Resolver *struct {
		BaseURL        string `json:"base_url"`
		SearchLimit    int    `json:"search_limit"`
		TimeoutSeconds int    `json:"timeout_seconds"`
	} `json:"resolver"`
	Game *struct {
		RosterSize          int `json:"roster_size"`
		SimilarityThreshold int `json:"similarity_threshold"`
		SessionTTLMinutes   int `json:"session_ttl_minutes"`
	} `json:"game"`
	Leaderboard *struct {
		Size int `json:"size"`
	} `json:"leaderboard"`
	// Optional extensions to the builtin P21 claim-code table. Keys are
	// Wikidata entity ids, values are recognized gender categories.
	GenderMap map[string]string `json:"gender_map"`
}

// LoadedConfig carries every tunable the server needs at startup.
type LoadedConfig struct {
	ServerAddress       string
	DatabasePath        string
	ResolverBaseURL     string
	ResolverSearchLimit int
	ResolverTimeout     time.Duration
	RosterSize          int
	SimilarityThreshold int
	SessionTTL          time.Duration
	LeaderboardSize     int
	GenderOverrides     map[string]string
}

var recognizedGenders = map[game.Gender]struct{}{
	game.GenderMale:      {},
	game.GenderFemale:    {},
	game.GenderNonBinary: {},
	game.GenderFluid:     {},
	game.GenderAgender:   {},
	game.GenderBigender:  {},
	game.GenderTwoSpirit: {},
	game.GenderQueer:     {},
}

// LoadConfig reads the configuration file at path. A missing file is not an
// error: every field has a default, so the server runs unconfigured. A file
// that exists but cannot be parsed or validated is fatal to the caller.
func LoadConfig(path string) (*LoadedConfig, error) {
	cfg := defaults()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil && rc.Database.Path != "" {
		cfg.DatabasePath = rc.Database.Path
	}
	if rc.Resolver != nil {
		if rc.Resolver.BaseURL != "" {
			cfg.ResolverBaseURL = rc.Resolver.BaseURL
		}
		if rc.Resolver.SearchLimit > 0 {
			cfg.ResolverSearchLimit = rc.Resolver.SearchLimit
		}
		if rc.Resolver.TimeoutSeconds > 0 {
			cfg.ResolverTimeout = time.Duration(rc.Resolver.TimeoutSeconds) * time.Second
		}
	}
	if rc.Game != nil {
		if rc.Game.RosterSize < 0 {
			return nil, fmt.Errorf("config file %s: roster_size must be positive", path)
		}
		if rc.Game.RosterSize > 0 {
			cfg.RosterSize = rc.Game.RosterSize
		}
		if rc.Game.SimilarityThreshold > 0 {
			cfg.SimilarityThreshold = rc.Game.SimilarityThreshold
		}
		if rc.Game.SessionTTLMinutes > 0 {
			cfg.SessionTTL = time.Duration(rc.Game.SessionTTLMinutes) * time.Minute
		}
	}
	if rc.Leaderboard != nil && rc.Leaderboard.Size > 0 {
		cfg.LeaderboardSize = rc.Leaderboard.Size
	}

	// Cross-entry validation: overrides must name real claim codes and
	// recognized categories; otherwise a typo would silently admit or
	// reject the wrong people.
	for claim, g := range rc.GenderMap {
		if !strings.HasPrefix(claim, "Q") {
			return nil, fmt.Errorf("config file %s: gender_map key %q is not a Wikidata entity id", path, claim)
		}
		if _, ok := recognizedGenders[game.Gender(g)]; !ok {
			return nil, fmt.Errorf("config file %s: gender_map value %q is not a recognized category", path, g)
		}
	}
	cfg.GenderOverrides = rc.GenderMap

	return cfg, nil
}

func defaults() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress:       ":8080",
		DatabasePath:        "./data/hundrednames.db",
		ResolverBaseURL:     "",
		ResolverSearchLimit: wikidata.DefaultSearchLimit,
		ResolverTimeout:     wikidata.DefaultTimeout,
		RosterSize:          100,
		SimilarityThreshold: similarity.DefaultThreshold,
		SessionTTL:          2 * time.Hour,
		LeaderboardSize:     5,
	}
}
