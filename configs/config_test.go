package config

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUniqueInstance(t *testing.T) {
	id := CreateUniqueInstance("test")

	_, err := uuid.FromString(id)
	require.NoError(t, err)
	assert.Equal(t, id, GetInstanceId())

	// each boot mints a fresh id
	assert.NotEqual(t, id, CreateUniqueInstance("test"))
}
