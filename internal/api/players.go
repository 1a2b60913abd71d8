package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/lndk/hundred-names/internal/constants"
	"github.com/lndk/hundred-names/internal/game"
	"github.com/lndk/hundred-names/internal/logging"
	"github.com/lndk/hundred-names/internal/storage"
)

// PlayerHandler exposes leaderboard accounts: register, login and best-time
// tracking. Passwords are stored as bcrypt hashes only.
type PlayerHandler struct {
	repo            storage.Repository
	leaderboardSize int
}

func NewPlayerHandler(repo storage.Repository, leaderboardSize int) *PlayerHandler {
	return &PlayerHandler{repo: repo, leaderboardSize: leaderboardSize}
}

type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a leaderboard account.
func (h *PlayerHandler) Register(c *gin.Context) {
	var req CredentialsPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if _, err := h.repo.GetPlayerByUsername(req.Username); err == nil {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrUsernameTaken})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRegisterPlayer})
		return
	}
	p := &game.Player{Username: req.Username, PasswordHash: string(hash)}
	if err := h.repo.CreatePlayer(p); err != nil {
		logging.Error("failed to register player", err, logging.Fields{constants.LogFieldPlayer: req.Username})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRegisterPlayer})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"username": p.Username})
}

// Login verifies credentials and returns the player's best time.
func (h *PlayerHandler) Login(c *gin.Context) {
	var req CredentialsPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	p, err := h.repo.GetPlayerByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidCredentials})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidCredentials})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": p.Username, "best_time": p.BestTime})
}

type BestTimePayload struct {
	Username string  `json:"username"`
	Time     float64 `json:"time"`
}

// UpdateBestTime records a finish time, keeping the player's minimum.
func (h *PlayerHandler) UpdateBestTime(c *gin.Context) {
	var req BestTimePayload
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Time <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := h.repo.UpdateBestTime(req.Username, req.Time); err != nil {
		if errors.Is(err, storage.ErrPlayerNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
			return
		}
		logging.Error("failed to update best time", err, logging.Fields{constants.LogFieldPlayer: req.Username})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBestTime})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Best time updated"})
}

// Leaderboard returns the fastest registered finishes.
func (h *PlayerHandler) Leaderboard(c *gin.Context) {
	players, err := h.repo.GetTopPlayers(h.leaderboardSize)
	if err != nil {
		logging.Error("failed to fetch leaderboard", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, players)
}
