package postprocessors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	assert.True(t, r.Has("cleaner"))
	assert.Contains(t, r.Names(), "cleaner")
}

func TestRegistry_Build(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	t.Run("builds cleaner with defaults", func(t *testing.T) {
		processor, err := r.Build("cleaner", nil)
		require.NoError(t, err)
		assert.Equal(t, "cleaner", processor.Name())
	})

	t.Run("builds cleaner with max_chars from config", func(t *testing.T) {
		processor, err := r.Build("cleaner", map[string]any{"max_chars": int64(4)})
		require.NoError(t, err)

		result, err := processor.Process(context.Background(), "abcdefgh")
		require.NoError(t, err)
		assert.Equal(t, "abcd", result)
	})

	t.Run("unknown processor returns error", func(t *testing.T) {
		_, err := r.Build("nonexistent", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown processor")
	})
}
