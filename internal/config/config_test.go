package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 12, cfg.App.TableCount)
	assert.True(t, cfg.App.SeedMenu)
	assert.False(t, cfg.DB.Enabled)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.AMQP.Enabled())
	assert.Equal(t, 5*time.Second, cfg.Sync.PollInterval)
	assert.Equal(t, 12*time.Hour, cfg.JWT.TTL)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestAllowedOriginsTrimsEntries(t *testing.T) {
	a := AppConfig{CORSAllowedOrigins: " http://a.test , ,http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, a.AllowedOrigins())
}
