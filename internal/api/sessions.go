package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lndk/hundred-names/internal/constants"
	"github.com/lndk/hundred-names/internal/game"
	"github.com/lndk/hundred-names/internal/logging"
	"github.com/lndk/hundred-names/internal/storage"
)

// ArchiveHandler exposes the session archive: a thin CRUD store for saved
// results. The archive browser sorts and filters client-side, so listing
// carries no ordering guarantee.
type ArchiveHandler struct {
	repo storage.Repository
}

func NewArchiveHandler(repo storage.Repository) *ArchiveHandler {
	return &ArchiveHandler{repo: repo}
}

type ArchivedSessionPayload struct {
	PlayerName string        `json:"playerName"`
	Date       string        `json:"date"`
	Men        []game.Person `json:"men"`
	Women      []game.Person `json:"women"`
	MenTime    float64       `json:"menTime"`
	WomenTime  float64       `json:"womenTime"`
	TotalTime  float64       `json:"totalTime"`
}

// CreateSession stores an archived session. Malformed JSON yields 400 with
// the parse error; missing playerName or date yields 400 as well.
func (h *ArchiveHandler) CreateSession(c *gin.Context) {
	var req ArchivedSessionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			constants.JSONKeyMessage: "Invalid JSON body",
			constants.JSONKeyError:   err.Error(),
		})
		return
	}
	if req.PlayerName == "" || req.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyMessage: constants.ErrMissingSessionFields})
		return
	}

	archived := &game.ArchivedSession{
		PlayerName: req.PlayerName,
		Date:       req.Date,
		Men:        req.Men,
		Women:      req.Women,
		MenTime:    req.MenTime,
		WomenTime:  req.WomenTime,
		TotalTime:  req.TotalTime,
	}
	if err := h.repo.CreateSession(archived); err != nil {
		logging.Error("failed to save session", err, logging.Fields{constants.LogFieldPlayer: req.PlayerName})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSaveSession})
		return
	}
	c.JSON(http.StatusCreated, archived)
}

// ListSessions returns every archived session.
func (h *ArchiveHandler) ListSessions(c *gin.Context) {
	sessions, err := h.repo.ListSessions()
	if err != nil {
		logging.Error("failed to fetch sessions", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchSessions})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// ClearSessions deletes every archived session. Destructive; the UI
// confirms before calling.
func (h *ArchiveHandler) ClearSessions(c *gin.Context) {
	if err := h.repo.ClearSessions(); err != nil {
		logging.Error("failed to clear sessions", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedClearSessions})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "All sessions cleared"})
}
