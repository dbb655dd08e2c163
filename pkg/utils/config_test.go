package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_SERVICES", "STORE_DRIVER", "STREAM_REPLAY", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	config, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", config.App.Port)
	assert.Equal(t, []string{ServiceMovieInfo, ServiceMovieReview}, config.App.Services)
	assert.True(t, config.App.HasService(ServiceMovieReview))
	assert.Equal(t, 10*time.Second, config.App.ShutdownTimeout)
	assert.Equal(t, "mongo", config.Store.Driver)
	assert.Equal(t, "latest", config.Stream.Replay)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=7070\nSTORE_DRIVER=Memory\nAPP_SERVICES=movie-review\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("APP_SERVICES", "")

	config, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", config.App.Port, "environment overrides file")
	assert.Equal(t, "memory", config.Store.Driver)
	assert.False(t, config.App.HasService(ServiceMovieInfo))
	assert.True(t, config.App.HasService(ServiceMovieReview))
}
