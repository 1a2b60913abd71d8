package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lndk/hundred-names/internal/constants"
	"github.com/lndk/hundred-names/internal/game"
)

type mockArchiveRepo struct {
	created []game.ArchivedSession
	err     error
}

func (m *mockArchiveRepo) CreateSession(s *game.ArchivedSession) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, *s)
	return nil
}

func (m *mockArchiveRepo) ListSessions() ([]game.ArchivedSession, error) {
	return m.created, m.err
}

func (m *mockArchiveRepo) ClearSessions() error {
	if m.err != nil {
		return m.err
	}
	m.created = nil
	return nil
}

func (m *mockArchiveRepo) CreatePlayer(*game.Player) error { return nil }

func (m *mockArchiveRepo) GetPlayerByUsername(string) (*game.Player, error) {
	return nil, errors.New("not found")
}

func (m *mockArchiveRepo) UpdateBestTime(string, float64) error { return nil }

func (m *mockArchiveRepo) GetTopPlayers(int) ([]game.Player, error) { return nil, nil }

func newArchiveRouter(repo *mockArchiveRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewArchiveHandler(repo)
	router := gin.New()
	router.POST(constants.RouteSessions, h.CreateSession)
	router.GET(constants.RouteSessions, h.ListSessions)
	router.DELETE(constants.RouteSessions, h.ClearSessions)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateSession_StoresValidPayload(t *testing.T) {
	repo := &mockArchiveRepo{}
	router := newArchiveRouter(repo)

	body := `{"playerName":"LNDK","date":"2025-01-02","men":[{"name":"Alan Turing","gender":"male"}],"women":[],"menTime":4.25,"womenTime":0,"totalTime":12}`
	w := postJSON(router, constants.RouteSessions, body)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 stored session, got %d", len(repo.created))
	}
	if got := repo.created[0]; got.PlayerName != "LNDK" || got.MenTime != 4.25 {
		t.Fatalf("stored session does not match payload: %+v", got)
	}
}

func TestCreateSession_RejectsMissingRequiredFields(t *testing.T) {
	repo := &mockArchiveRepo{}
	router := newArchiveRouter(repo)

	for _, body := range []string{
		`{"date":"2025-01-02"}`,
		`{"playerName":"LNDK"}`,
		`{}`,
	} {
		w := postJSON(router, constants.RouteSessions, body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unexpected response body: %v", err)
		}
		if resp[constants.JSONKeyMessage] != constants.ErrMissingSessionFields {
			t.Fatalf("body %s: unexpected message %q", body, resp[constants.JSONKeyMessage])
		}
	}
	if len(repo.created) != 0 {
		t.Fatal("rejected payloads must not be stored")
	}
}

func TestCreateSession_RejectsMalformedJSON(t *testing.T) {
	router := newArchiveRouter(&mockArchiveRepo{})

	w := postJSON(router, constants.RouteSessions, `{"playerName": "LNDK",`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected response body: %v", err)
	}
	if resp[constants.JSONKeyError] == "" {
		t.Fatal("parse failures must surface the parse error")
	}
}

func TestCreateSession_StoreFailure(t *testing.T) {
	repo := &mockArchiveRepo{err: errors.New("disk full")}
	router := newArchiveRouter(repo)

	w := postJSON(router, constants.RouteSessions, `{"playerName":"LNDK","date":"2025-01-02"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestClearSessions_EmptiesArchive(t *testing.T) {
	repo := &mockArchiveRepo{created: []game.ArchivedSession{{PlayerName: "LNDK", Date: "2025-01-02"}}}
	router := newArchiveRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, constants.RouteSessions, nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(repo.created) != 0 {
		t.Fatal("clear must remove every archived session")
	}
}
