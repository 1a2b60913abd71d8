package api

import (
	"context"
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/lndk/hundred-names/internal/constants"
	"github.com/lndk/hundred-names/internal/game"
	"github.com/lndk/hundred-names/internal/logging"
	"github.com/lndk/hundred-names/internal/service"
	"github.com/lndk/hundred-names/internal/wikidata"
)

// CreateGame allocates a new session and returns its code. The session
// starts in NotStarted; the player hits /start to begin the clock.
func (h *GameHandler) CreateGame(c *gin.Context) {
	s := h.manager.Create()
	logging.Info("game created", logging.Fields{constants.LogFieldGameCode: s.Code()})
	c.JSON(http.StatusCreated, gin.H{"game_code": s.Code()})
}

// GetGame returns a snapshot of the session's observable state.
func (h *GameHandler) GetGame(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// StartGame resets the session and starts the timer. Starting an already
// running game wipes it and starts over.
func (h *GameHandler) StartGame(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Start()
	logging.Info("game started", logging.Fields{constants.LogFieldGameCode: s.Code()})
	c.JSON(http.StatusOK, s.Snapshot())
}

// AbortGame stops the timer and resets the session. The confirmation
// prompt lives in the UI; by the time the request arrives it is final.
func (h *GameHandler) AbortGame(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Abort()
	logging.Info("game aborted", logging.Fields{constants.LogFieldGameCode: s.Code()})
	c.JSON(http.StatusOK, s.Snapshot())
}

type SubmitNamePayload struct {
	Name string `json:"name"`
}

// SubmitName runs one submission through the validation pipeline and
// reports the outcome together with the post-submission session state.
func (h *GameHandler) SubmitName(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req SubmitNamePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.resolveTimeout)
	defer cancel()

	person, err := service.SubmitName(ctx, s, h.resolver, h.matcher, req.Name)
	if err != nil {
		status, reason := rejectionStatus(err)
		c.JSON(status, gin.H{
			constants.JSONKeyStatus: "rejected",
			"reason":                reason,
			constants.JSONKeyError:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyStatus: "admitted",
		"person":                person,
		"session":               s.Snapshot(),
	})
}

type SaveResultsPayload struct {
	PlayerName string `json:"player_name"`
}

// SaveResults archives a completed session under the submitted player name.
func (h *GameHandler) SaveResults(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req SaveResultsPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if utf8.RuneCountInString(req.PlayerName) > 64 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNameExceeds})
		return
	}

	archived, err := service.SaveResults(h.repo, s, req.PlayerName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlayerNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		case errors.Is(err, game.ErrNotCompleted):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
		default:
			logging.Error("failed to save results", err, logging.Fields{constants.LogFieldGameCode: s.Code()})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSaveSession})
		}
		return
	}
	c.JSON(http.StatusCreated, archived)
}

// session resolves the :gameCode path parameter, writing the error
// response itself when the code is malformed or unknown.
func (h *GameHandler) session(c *gin.Context) (*game.Session, bool) {
	code := normalizeGameCode(c.Param("gameCode"))
	if code == "" || !gameCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return nil, false
	}
	s := h.manager.Get(code)
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return nil, false
	}
	return s, true
}

// rejectionStatus maps pipeline errors to HTTP statuses and stable reason
// codes the UI can branch on.
func rejectionStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrEmptyName):
		return http.StatusBadRequest, "empty_name"
	case errors.Is(err, game.ErrNotRunning):
		return http.StatusConflict, "not_running"
	case errors.Is(err, game.ErrNameInFlight):
		return http.StatusConflict, "name_in_flight"
	case errors.Is(err, game.ErrDuplicate):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, game.ErrCategoryFull):
		return http.StatusConflict, "category_full"
	case errors.Is(err, game.ErrStaleEpoch):
		return http.StatusGone, "stale_session"
	case errors.Is(err, game.ErrNoRosterForGender):
		return http.StatusUnprocessableEntity, "no_roster_for_gender"
	case errors.Is(err, wikidata.ErrNoHumanEntity):
		return http.StatusUnprocessableEntity, "no_human_entity"
	case errors.Is(err, wikidata.ErrInvalidEntity):
		return http.StatusUnprocessableEntity, "invalid_entity"
	case errors.Is(err, wikidata.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, wikidata.ErrTimeout):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusBadGateway, "transport"
	}
}
