package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/lndk/hundred-names/internal/api"
	"github.com/lndk/hundred-names/internal/config"
	"github.com/lndk/hundred-names/internal/constants"
	"github.com/lndk/hundred-names/internal/game"
	"github.com/lndk/hundred-names/internal/logging"
	"github.com/lndk/hundred-names/internal/similarity"
	"github.com/lndk/hundred-names/internal/storage"
	"github.com/lndk/hundred-names/internal/wikidata"
)

func main() {
	_ = godotenv.Load()

	// Configuration file path may be provided via HUNDREDNAMES_CONFIG or
	// defaults to ./hundrednames_config.json in the working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./hundrednames_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Invalid configuration", err, logging.Fields{"config_path": configPath})
	}

	// Allow the DB path to be overridden via HUNDREDNAMES_DB.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = cfg.DatabasePath
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)

	manager := game.NewManager(cfg.RosterSize)
	resolver := wikidata.NewClient(cfg.ResolverBaseURL, cfg.ResolverSearchLimit, cfg.ResolverTimeout, cfg.GenderOverrides)
	matcher := similarity.NewMatcher(cfg.SimilarityThreshold)

	gameHandler := api.NewGameHandler(manager, resolver, matcher, repo, cfg.ResolverTimeout)
	archiveHandler := api.NewArchiveHandler(repo)
	playerHandler := api.NewPlayerHandler(repo, cfg.LeaderboardSize)

	// Background janitor: drop sessions that saw no activity within the
	// TTL. Abandoned games are never persisted; only explicit saves are.
	startSessionJanitor(manager, cfg.SessionTTL)

	router := gin.Default()
	// Wrong method on a known path must answer 405, not 404.
	router.HandleMethodNotAllowed = true

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)

		apiRoutes.POST(constants.RouteGames, gameHandler.CreateGame)
		apiRoutes.GET(constants.RouteGameByCode, gameHandler.GetGame)
		apiRoutes.POST(constants.RouteGameStart, gameHandler.StartGame)
		apiRoutes.POST(constants.RouteGameSubmit, gameHandler.SubmitName)
		apiRoutes.POST(constants.RouteGameAbort, gameHandler.AbortGame)
		apiRoutes.POST(constants.RouteGameSave, gameHandler.SaveResults)

		apiRoutes.POST(constants.RouteSessions, archiveHandler.CreateSession)
		apiRoutes.GET(constants.RouteSessions, archiveHandler.ListSessions)
		apiRoutes.DELETE(constants.RouteSessions, archiveHandler.ClearSessions)

		apiRoutes.POST(constants.RouteRegister, playerHandler.Register)
		apiRoutes.POST(constants.RouteLogin, playerHandler.Login)
		apiRoutes.POST(constants.RouteLeaderboard, playerHandler.UpdateBestTime)
		apiRoutes.GET(constants.RouteLeaderboard, playerHandler.Leaderboard)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

// startSessionJanitor prunes idle sessions on a fixed cadence.
func startSessionJanitor(manager *game.Manager, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if removed := manager.PruneIdle(ttl); removed > 0 {
				logging.Info("pruned idle sessions", logging.Fields{"removed": removed})
			}
		}
	}()
}
