package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukin/binder-services/internal/socketsvc/ws"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	InitAuth()

	r := chi.NewRouter()
	SetRoutes(r, ws.NewWs())
	return r
}

func TestWebSocketRequiresAuth(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ws", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebSocketAcceptsJwtCookie(t *testing.T) {
	r := newTestRouter(t)

	_, tokenString, err := tokenAuth.Encode(map[string]interface{}{
		"user_id": int64(1),
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/ws", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: tokenString})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	// past the authenticator; the plain GET then fails the upgrade
	// handshake, which is not an auth rejection
	assert.NotEqual(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthIsPublic(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInitAuthDebugTokenIsOptIn(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	t.Setenv("DEBUG_JWT", "")
	InitAuth()
	assert.NotContains(t, buf.String(), "JWT for testing")

	t.Setenv("DEBUG_JWT", "true")
	InitAuth()
	assert.Contains(t, buf.String(), "JWT for testing")
}
