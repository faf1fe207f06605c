package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/phpsyn/internal/plog"
	"github.com/dekarrin/phpsyn/server/dao"
	"github.com/dekarrin/phpsyn/server/dao/inmem"
	"github.com/dekarrin/phpsyn/server/token"
)

func newTestAPI(t *testing.T) (API, *http.ServeMux, []byte, string) {
	t.Helper()
	store := inmem.NewDatastore()
	secret := []byte("test-secret-of-sufficient-length!!")

	key, err := store.APIKeys().Create(nil, dao.APIKey{Label: "ci", KeyHash: []byte("hash")})
	require.NoError(t, err)
	tok, err := token.Issue(key, secret, time.Hour)
	require.NoError(t, err)

	a := API{
		Store:       store,
		Secret:      secret,
		UnauthDelay: 0,
		Log:         plog.New(plog.LevelError),
	}

	router := chi.NewRouter()
	a.Mount(router)

	mux := http.NewServeMux()
	mux.Handle("/", router)

	return a, mux, secret, tok
}

func TestHealthz_NoAuthRequired(t *testing.T) {
	_, mux, _, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParse_RejectsMissingAuth(t *testing.T) {
	_, mux, _, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/parse", bytes.NewBufferString("<?php echo 1;"))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestParse_ValidSourceReturnsTree(t *testing.T) {
	_, mux, _, tok := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/parse", bytes.NewBufferString("<?php echo 1;"))
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ParseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Greater(t, resp.NodeCount, 0)
	assert.Equal(t, "program", resp.Tree.Kind)
}

func TestParse_SyntaxErrorReportsLineAndMessage(t *testing.T) {
	_, mux, _, tok := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/parse", bytes.NewBufferString("<?php echo ;"))
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ParseErrorModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "syntax-error", resp.Kind)
	assert.NotEmpty(t, resp.Message)
}

func TestHistory_ReturnsPriorParseAttempts(t *testing.T) {
	_, mux, _, tok := newTestAPI(t)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/parse", bytes.NewBufferString("<?php echo 1;"))
		req.Header.Set("Authorization", "Bearer "+tok)
		mux.ServeHTTP(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Records, 3)
}
