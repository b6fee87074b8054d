package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstanceLockKey(t *testing.T) {
	// concurrent adds on the same tuple must contend for one lock
	assert.Equal(t,
		instanceLockKey(7, "OP01-001", false),
		instanceLockKey(7, "OP01-001", false),
	)

	// distinct tuples must not share a lock
	base := instanceLockKey(7, "OP01-001", false)
	assert.NotEqual(t, base, instanceLockKey(8, "OP01-001", false))
	assert.NotEqual(t, base, instanceLockKey(7, "OP01-002", false))
	assert.NotEqual(t, base, instanceLockKey(7, "OP01-001", true))
}
