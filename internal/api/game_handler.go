package api

import (
	"time"

	"github.com/lndk/hundred-names/internal/game"
	"github.com/lndk/hundred-names/internal/service"
	"github.com/lndk/hundred-names/internal/similarity"
	"github.com/lndk/hundred-names/internal/storage"
)

// GameHandler groups all live-game HTTP handlers.
type GameHandler struct {
	manager        *game.Manager
	resolver       service.Resolver
	matcher        *similarity.Matcher
	repo           storage.Repository
	resolveTimeout time.Duration
}

// NewGameHandler creates a GameHandler with the session manager, the
// knowledge-base resolver and the configured per-resolution timeout.
func NewGameHandler(manager *game.Manager, resolver service.Resolver, matcher *similarity.Matcher, repo storage.Repository, resolveTimeout time.Duration) *GameHandler {
	return &GameHandler{
		manager:        manager,
		resolver:       resolver,
		matcher:        matcher,
		repo:           repo,
		resolveTimeout: resolveTimeout,
	}
}
