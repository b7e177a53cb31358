package robot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchConfig_Reloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, DefaultConfig().SaveTo(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, path, zerolog.Nop(), func(c *Config) { changes <- c })
	}()
	time.Sleep(100 * time.Millisecond)

	// Invalid files are skipped
	require.NoError(t, os.WriteFile(path, []byte(`{"intake": {"ports": [0]}}`), 0644))
	time.Sleep(3 * DefaultWatchDebounce)

	cfg := DefaultConfig()
	cfg.Drive.Hz = 50
	require.NoError(t, cfg.SaveTo(path))

	select {
	case got := <-changes:
		assert.Equal(t, 50, got.Drive.Hz)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after write")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
