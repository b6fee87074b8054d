package handlers

import (
	"bytes"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitAuthDebugTokenIsOptIn(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	h := NewHandler(nil, nil, nil, nil, nil, nil)

	t.Setenv("DEBUG_JWT", "")
	h.InitAuth()
	assert.NotContains(t, buf.String(), "JWT for testing")

	t.Setenv("DEBUG_JWT", "true")
	h.InitAuth()
	assert.Contains(t, buf.String(), "JWT for testing")
}
