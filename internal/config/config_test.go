package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadWithViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 168, cfg.UserJWT.ExpireHours)
	assert.Empty(t, cfg.UserJWT.SecretKey, "token secret must not have a built-in default")
	assert.Equal(t, 6, cfg.Security.PasswordPolicy.MinLength)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Queue.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "none", cfg.Captcha.Provider)
	assert.Equal(t, 10, cfg.Queue.Queues["default"])
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("SERVER_MODE", "release")
	t.Setenv("USER_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := LoadWithViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.True(t, cfg.Server.IsRelease())
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.UserJWT.SecretKey)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "0.0.0.0:8081", cfg.Server.Addr())
}

func TestIsWeakSecret(t *testing.T) {
	cases := []struct {
		secret string
		weak   bool
	}{
		{secret: "", weak: true},
		{secret: "short", weak: true},
		{secret: "please-change-me-in-production-now!!", weak: true},
		{secret: "my-app-your-secret-key-goes-here-xx", weak: true},
		{secret: "k8Jd0pQ2mZx7Lr5Vt1Nc9Bw4Hy6Fs3Ge", weak: false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.weak, IsWeakSecret(tc.secret), "secret %q", tc.secret)
	}
}

func TestEnsureUserJWTSecret(t *testing.T) {
	release := &Config{Server: ServerConfig{Mode: "release"}}
	_, err := EnsureUserJWTSecret(release)
	assert.ErrorIs(t, err, ErrWeakUserJWTSecret)

	release.UserJWT.SecretKey = "k8Jd0pQ2mZx7Lr5Vt1Nc9Bw4Hy6Fs3Ge"
	generated, err := EnsureUserJWTSecret(release)
	require.NoError(t, err)
	assert.False(t, generated)

	debug := &Config{Server: ServerConfig{Mode: "debug"}}
	generated, err = EnsureUserJWTSecret(debug)
	require.NoError(t, err)
	assert.True(t, generated)
	assert.Len(t, debug.UserJWT.SecretKey, 64)

	other := &Config{Server: ServerConfig{Mode: "debug"}}
	_, err = EnsureUserJWTSecret(other)
	require.NoError(t, err)
	assert.NotEqual(t, debug.UserJWT.SecretKey, other.UserJWT.SecretKey)

	debug.UserJWT.SecretKey = "short"
	generated, err = EnsureUserJWTSecret(debug)
	require.NoError(t, err)
	assert.False(t, generated)
	assert.Equal(t, "short", debug.UserJWT.SecretKey)
}
