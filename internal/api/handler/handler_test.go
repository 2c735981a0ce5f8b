package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reelchat/backend/internal/api/handler"
	"reelchat/backend/internal/chathub"
	"reelchat/backend/internal/models"
	"reelchat/backend/internal/pairing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef-test-secret"

type MockMaintenanceStore struct {
	mock.Mock
}

func (m *MockMaintenanceStore) SetMaintenanceMode(ctx context.Context, enabled bool) error {
	args := m.Called(ctx, enabled)
	return args.Error(0)
}

type testEnv struct {
	hub    *chathub.Hub
	router *gin.Engine
	tokens *handler.TokenIssuer
	store  *MockMaintenanceStore
}

func newTestEnv(t *testing.T, opts handler.Options) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	hub := chathub.NewHub(pairing.NewEngine(log), log)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.Done()
	})

	tokens := handler.NewTokenIssuer(testSecret, time.Hour)
	store := new(MockMaintenanceStore)
	h := handler.NewHandler(hub, tokens, store, log, opts)
	r := gin.New()
	h.Routes(r)
	return &testEnv{hub: hub, router: r, tokens: tokens, store: store}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestGetAnonID_IssuesParsableToken(t *testing.T) {
	env := newTestEnv(t, handler.Options{})

	w := env.do(httptest.NewRequest(http.MethodGet, "/anonid?username=alice", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token  string `json:"token"`
		AnonID string `json:"anon_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AnonID)

	claims, err := env.tokens.Parse(body.Token)
	require.NoError(t, err)
	assert.Equal(t, body.AnonID, claims.AnonID)
	assert.Equal(t, "alice", claims.Username)
}

func TestGetAnonID_RejectsLongUsername(t *testing.T) {
	env := newTestEnv(t, handler.Options{})
	w := env.do(httptest.NewRequest(http.MethodGet, "/anonid?username="+strings.Repeat("x", 33), nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTokenIssuer_RejectsForeignAndExpiredTokens(t *testing.T) {
	issuer := handler.NewTokenIssuer(testSecret, time.Hour)
	other := handler.NewTokenIssuer("another-secret-of-enough-length", time.Hour)
	expired := handler.NewTokenIssuer(testSecret, -time.Minute)

	foreign, err := other.Issue("anon", "")
	require.NoError(t, err)
	_, err = issuer.Parse(foreign)
	assert.ErrorIs(t, err, handler.ErrInvalidToken)

	stale, err := expired.Issue("anon", "")
	require.NoError(t, err)
	_, err = issuer.Parse(stale)
	assert.ErrorIs(t, err, handler.ErrInvalidToken)

	_, err = issuer.Parse("not-a-jwt")
	assert.ErrorIs(t, err, handler.ErrInvalidToken)
}

func TestServeWebSocket_InvalidTokenUnauthorized(t *testing.T) {
	env := newTestEnv(t, handler.Options{})
	w := env.do(httptest.NewRequest(http.MethodGet, "/ws?token=garbage", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServeWebSocket_TokenBindsIdentity(t *testing.T) {
	env := newTestEnv(t, handler.Options{})
	srv := httptest.NewServer(env.router)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	token, err := env.tokens.Issue("anon-1", "alice")
	require.NoError(t, err)

	connA, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+token, nil)
	require.NoError(t, err)
	defer connA.Close()
	header := http.Header{}
	header.Set("Authorization", "Bearer "+mustIssue(t, env.tokens, "anon-2", "bob"))
	connB, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer connB.Close()

	require.NoError(t, connA.WriteJSON(models.Event{Type: models.EventFindPartner}))
	waitForType(t, connA, models.EventWaiting)
	require.NoError(t, connB.WriteJSON(models.Event{Type: models.EventFindPartner}))
	waitForType(t, connB, models.EventMatched)

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/history/anon-1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Sessions []models.Session `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Sessions, 1)
	assert.Equal(t, "alice", body.Sessions[0].SideA.Name)
	assert.Equal(t, "anon-2", body.Sessions[0].SideB.ID)
}

func mustIssue(t *testing.T, tokens *handler.TokenIssuer, anonID, username string) string {
	t.Helper()
	token, err := tokens.Issue(anonID, username)
	require.NoError(t, err)
	return token
}

func waitForType(t *testing.T, conn *websocket.Conn, eventType string) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var ev struct {
			Type string `json:"type"`
		}
		require.NoError(t, conn.ReadJSON(&ev))
		if ev.Type == eventType {
			return
		}
	}
}

func TestGetHistory_EmptyParticipant(t *testing.T) {
	env := newTestEnv(t, handler.Options{})
	w := env.do(httptest.NewRequest(http.MethodGet, "/api/history/nobody", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"participant_id":"nobody","sessions":[]}`, w.Body.String())
}

func TestAdmin_StatsAndSessions(t *testing.T) {
	env := newTestEnv(t, handler.Options{})

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, models.Stats{}, stats)

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/admin/sessions", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sessions":[]}`, w.Body.String())
}

func TestAdmin_TokenRequiredWhenConfigured(t *testing.T) {
	env := newTestEnv(t, handler.Options{AdminToken: "s3cret"})

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("X-Admin-Token", "s3cret")
	assert.Equal(t, http.StatusOK, env.do(req).Code)

	// history is not an admin route
	assert.Equal(t, http.StatusOK, env.do(httptest.NewRequest(http.MethodGet, "/api/history/x", nil)).Code)
}

func TestAdmin_SetMaintenance(t *testing.T) {
	env := newTestEnv(t, handler.Options{})
	env.store.On("SetMaintenanceMode", mock.Anything, true).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/maintenance", strings.NewReader(`{"enabled":true}`))
	req.Header.Set("Content-Type", "application/json")
	w := env.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	env.store.AssertExpectations(t)

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/admin/maintenance", nil))
	assert.JSONEq(t, `{"enabled":true}`, w.Body.String())
}

func TestAdmin_SetMaintenanceErrors(t *testing.T) {
	env := newTestEnv(t, handler.Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/maintenance", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, env.do(req).Code)

	env.store.On("SetMaintenanceMode", mock.Anything, false).Return(errors.New("redis down")).Once()
	req = httptest.NewRequest(http.MethodPost, "/api/admin/maintenance", strings.NewReader(`{"enabled":false}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadGateway, env.do(req).Code)
}
