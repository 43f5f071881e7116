package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(&pq.Error{Code: CodeSerializationFailure}))
	assert.True(t, IsConflict(fmt.Errorf("insert: %w", &pq.Error{Code: CodeExclusionViolation})))
	assert.True(t, IsConflict(fmt.Errorf("%w: commit", ErrConflict)))

	assert.False(t, IsConflict(&pq.Error{Code: "23503"}))
	assert.False(t, IsConflict(errors.New("connection refused")))
	assert.False(t, IsConflict(nil))
}

func TestCode(t *testing.T) {
	assert.Equal(t, CodeDeadlockDetected, Code(&pq.Error{Code: CodeDeadlockDetected}))
	assert.Equal(t, "", Code(errors.New("plain")))
}
