package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VJNAVEEN2005/aic-query-service/internal/config"
	"github.com/VJNAVEEN2005/aic-query-service/internal/domain"
	"github.com/VJNAVEEN2005/aic-query-service/internal/service"
	"github.com/VJNAVEEN2005/aic-query-service/internal/session"
)

type stubGateway struct {
	err error
}

func (g *stubGateway) FetchPage(context.Context, domain.QueryState) (*domain.ResultPage, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &domain.ResultPage{
		Items:      []domain.Record{{"name": "Dana", "email": "dana@x.com"}},
		TotalItems: 1,
		TotalPages: 1,
	}, nil
}

func (g *stubGateway) DeleteRecord(context.Context, string, string, string) error {
	return g.err
}

func newTestRouter(gw *stubGateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Screens: config.DefaultScreens()}
	svc := service.NewQueryService(cfg, gw, session.NewManager(time.Hour))

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func do(t *testing.T, r *gin.Engine, method, path, body string, header map[string]string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func createSession(t *testing.T, r *gin.Engine, screen string) string {
	t.Helper()
	code, env := do(t, r, http.MethodPost, "/api/v1/sessions", `{"screen":"`+screen+`"}`, nil)
	require.Equal(t, http.StatusCreated, code)
	require.True(t, env.Success)

	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	require.NotEmpty(t, snap.SessionID)
	return snap.SessionID
}

func TestCreateSessionRoute(t *testing.T) {
	r := newTestRouter(&stubGateway{})

	code, env := do(t, r, http.MethodPost, "/api/v1/sessions", `{"screen":"users"}`, nil)

	require.Equal(t, http.StatusCreated, code)
	require.True(t, env.Success)

	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, "users", snap.State.Screen)
	assert.Equal(t, domain.PhaseLoaded, snap.Phase)
	assert.Len(t, snap.Page.Items, 1)
}

func TestCreateSessionUnknownScreenRoute(t *testing.T) {
	r := newTestRouter(&stubGateway{})

	code, env := do(t, r, http.MethodPost, "/api/v1/sessions", `{"screen":"ghosts"}`, nil)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestSnapshotUnknownSessionRoute(t *testing.T) {
	r := newTestRouter(&stubGateway{})

	code, env := do(t, r, http.MethodGet, "/api/v1/sessions/nope", "", nil)

	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
}

func TestSearchAndClearRoutes(t *testing.T) {
	r := newTestRouter(&stubGateway{})
	id := createSession(t, r, "users")

	code, env := do(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/search", `{"term":"dana"}`, nil)
	require.Equal(t, http.StatusOK, code)
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.True(t, snap.State.SearchMode)

	code, env = do(t, r, http.MethodDelete, "/api/v1/sessions/"+id+"/search", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.False(t, snap.State.SearchMode)
	assert.Equal(t, 1, snap.State.Page)
}

func TestFetchFailureIsVisibleState(t *testing.T) {
	gw := &stubGateway{err: domain.NewFetchError(domain.FetchNetwork, "upstream request failed", nil)}
	r := newTestRouter(gw)

	// Mounting still succeeds; the failure shows up as the error phase.
	code, env := do(t, r, http.MethodPost, "/api/v1/sessions", `{"screen":"users"}`, nil)

	require.Equal(t, http.StatusCreated, code)
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, domain.PhaseError, snap.Phase)
	assert.Equal(t, "upstream request failed", snap.ErrorMsg)
	assert.Empty(t, snap.Page.Items)
}

func TestSuggestRoute(t *testing.T) {
	r := newTestRouter(&stubGateway{})
	id := createSession(t, r, "users")

	code, env := do(t, r, http.MethodGet, "/api/v1/sessions/"+id+"/suggestions?term=da", "", nil)

	require.Equal(t, http.StatusOK, code)
	var panel domain.SuggestionPanel
	require.NoError(t, json.Unmarshal(env.Data, &panel))
	assert.Equal(t, "da", panel.Term)
	assert.Equal(t, -1, panel.Highlight)
	assert.NotEmpty(t, panel.Suggestions)
}

func TestDeleteRecordRequiresToken(t *testing.T) {
	r := newTestRouter(&stubGateway{})
	id := createSession(t, r, "users")

	code, env := do(t, r, http.MethodDelete, "/api/v1/sessions/"+id+"/records/abc", "", nil)

	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
}

func TestDeleteRecordUpstreamRejection(t *testing.T) {
	gw := &stubGateway{}
	r := newTestRouter(gw)
	id := createSession(t, r, "users")

	// Deletes start failing upstream after the session is mounted.
	gw.err = domain.NewFetchError(domain.FetchServerRejected, "not allowed", nil)

	code, env := do(t, r, http.MethodDelete, "/api/v1/sessions/"+id+"/records/abc",
		"", map[string]string{"token": "opaque"})

	assert.Equal(t, http.StatusBadGateway, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "not allowed", env.Error.Message)
}

func TestCursorRoute(t *testing.T) {
	r := newTestRouter(&stubGateway{})
	id := createSession(t, r, "users")

	_, _ = do(t, r, http.MethodGet, "/api/v1/sessions/"+id+"/suggestions?term=da", "", nil)

	code, env := do(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/suggestions/cursor",
		`{"move":"down","term":"da"}`, nil)
	require.Equal(t, http.StatusOK, code)

	var result domain.CursorResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 0, result.Highlight)
}

func TestCloseSessionRoute(t *testing.T) {
	r := newTestRouter(&stubGateway{})
	id := createSession(t, r, "users")

	code, _ := do(t, r, http.MethodDelete, "/api/v1/sessions/"+id, "", nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, r, http.MethodGet, "/api/v1/sessions/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
