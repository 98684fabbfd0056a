package initializers

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/agroxhub?parseTime=true")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000,https://agroxhub.example")
	t.Setenv("DISTANCE_TIMEOUT", "3s")
	t.Setenv("PROVIDER_SELECTION", "cheapest")

	cfg, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://agroxhub.example"}, cfg.CORSOrigins)
	assert.Equal(t, 3*time.Second, cfg.DistanceTimeout)
	assert.Equal(t, 24*time.Hour, cfg.DistanceCacheTTL)
	assert.Equal(t, "cheapest", cfg.ProviderSelection)
}

func TestLoadEnvRequiresSecrets(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("DB_DSN"))
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("prod", "warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1))

	_, err = NewLogger("local", "loud")
	assert.Error(t, err)
}

func TestConnectToRedisDisabledWithoutAddress(t *testing.T) {
	assert.Nil(t, ConnectToRedis(&Config{}, nil))
}
