package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDGenerator_Unique(t *testing.T) {
	g, err := NewIDGenerator(3)
	require.NoError(t, err)

	seen := make(map[int64]struct{}, 5000)
	for i := 0; i < 5000; i++ {
		id := g.Next()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
}

func TestNewIDGenerator_RejectsBadNode(t *testing.T) {
	_, err := NewIDGenerator(4096)
	assert.Error(t, err)
}

func TestNodeFromEnv(t *testing.T) {
	t.Setenv("SNOWFLAKE_NODE", "")
	assert.Equal(t, int64(1), NodeFromEnv())
	t.Setenv("SNOWFLAKE_NODE", "7")
	assert.Equal(t, int64(7), NodeFromEnv())
	t.Setenv("SNOWFLAKE_NODE", "seven")
	assert.Equal(t, int64(1), NodeFromEnv())
}

func TestNewKSUID(t *testing.T) {
	a, b := NewKSUID(), NewKSUID()
	assert.Len(t, a, 27)
	assert.NotEqual(t, a, b)
}
