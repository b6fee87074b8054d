package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(t *testing.T, target string) *http.Request {
	t.Helper()

	ta := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ta.Encode(map[string]interface{}{
		"user_id": int64(42),
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(jwtauth.NewContext(req.Context(), token, nil))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()

	var rsp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rsp))
	return rsp
}

func TestSearchRejectsUnauthenticated(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cards/search?keyword=zoro", nil)
	rec := httptest.NewRecorder()
	h.SearchCardsHandler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSearchRejectsEmptyKeyword(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.SearchCardsHandler(rec, authedRequest(t, "/api/cards/search?keyword="))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rsp := decodeResponse(t, rec)
	assert.NotEmpty(t, rsp.Error)
}

func TestSearchRejectsUnbalancedQuote(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.SearchCardsHandler(rec, authedRequest(t, `/api/cards/search?keyword=pack:%22Romance`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchRejectsInvalidBoolParam(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.SearchCardsHandler(rec, authedRequest(t, "/api/cards/search?keyword=zoro&ownedOnly=maybe"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rsp := decodeResponse(t, rec)
	assert.Contains(t, rsp.Error, "ownedOnly")
}

func TestParseBoolParamDefaultsFalse(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/cards/search?keyword=zoro", nil)

	v, err := parseBoolParam(req, "ownedOnly")
	assert.NoError(t, err)
	assert.False(t, v)
}

func TestCallerFromContext(t *testing.T) {
	req := authedRequest(t, "/api/cards/search")

	userID, role, err := callerFromContext(req)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "user", role)
}
