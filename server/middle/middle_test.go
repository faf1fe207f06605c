package middle

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/phpsyn/internal/plog"
	"github.com/dekarrin/phpsyn/server/dao"
	"github.com/dekarrin/phpsyn/server/dao/inmem"
	"github.com/dekarrin/phpsyn/server/token"
)

func TestRequireAuth_RejectsMissingToken(t *testing.T) {
	repo := inmem.NewAPIKeysRepository()
	mw := RequireAuth(repo, []byte("secret"), 0, nil)

	called := false
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_AllowsValidToken(t *testing.T) {
	repo := inmem.NewAPIKeysRepository()
	secret := []byte("secret-of-sufficient-length-here!!")

	key, err := repo.Create(nil, dao.APIKey{Label: "ci", KeyHash: []byte("hash")})
	require.NoError(t, err)

	tok, err := token.Issue(key, secret, time.Hour)
	require.NoError(t, err)

	mw := RequireAuth(repo, secret, 0, nil)

	var gotKey dao.APIKey
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Context().Value(AuthAPIKey).(dao.APIKey)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, key.ID, gotKey.ID)
}

func TestOptionalAuth_AllowsMissingToken(t *testing.T) {
	repo := inmem.NewAPIKeysRepository()
	mw := OptionalAuth(repo, []byte("secret"), 0, nil)

	var loggedIn bool
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loggedIn = r.Context().Value(AuthLoggedIn).(bool)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, loggedIn)
}

func TestRequestID_SetsHeaderAndTagsContextLogger(t *testing.T) {
	var buf bytes.Buffer
	log := plog.NewTo(&buf, plog.LevelInfo)
	mw := RequestID(log)

	var gotLog *plog.Logger
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLog = LoggerFromContext(r.Context(), nil)
		gotLog.Infof("hello")
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	id := w.Header().Get("X-Request-Id")
	require.NotEmpty(t, id)
	require.NotNil(t, gotLog)
	assert.Contains(t, buf.String(), id)
}

func TestLoggerFromContext_FallsBackWhenRequestIDDidNotRun(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	fallback := plog.New(plog.LevelInfo)
	assert.Same(t, fallback, LoggerFromContext(req.Context(), fallback))
}

func TestDontPanic_RecoversAndWrites500(t *testing.T) {
	mw := DontPanic(nil)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		h.ServeHTTP(w, req)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
