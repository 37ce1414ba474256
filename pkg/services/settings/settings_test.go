package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		s, err := Load("")

		assert.NoError(t, err)
		assert.Equal(t, 5, s.BatchSize)
		assert.Equal(t, 2*time.Second, s.InterBatchDelay)
		assert.Equal(t, 500*time.Millisecond, s.InterCallDelay)
		assert.Equal(t, 1000, s.QuotaHardLimit)
		assert.Equal(t, 950, s.QuotaSafetyBuffer)
	})

	t.Run("file overrides defaults, leaves the rest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("batch_size: 10\ninter_call_delay: 1s\n"), 0o600))

		s, err := Load(path)

		assert.NoError(t, err)
		assert.Equal(t, 10, s.BatchSize)
		assert.Equal(t, time.Second, s.InterCallDelay)
		assert.Equal(t, 2*time.Second, s.InterBatchDelay)
		assert.Equal(t, 950, s.QuotaSafetyBuffer)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

		assert.Error(t, err)
	})
}
