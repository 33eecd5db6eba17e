package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir は testing.T.Chdir (Go 1.24+) と同等に、テスト終了時に元のディレクトリへ戻します。
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SECRET_KEY", "")
	t.Setenv("PORT", "")
	t.Setenv("GIN_MODE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSecretKey, cfg.SecretKey)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "debug", cfg.GinMode)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", "release")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.SecretKey)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
}

func TestValidateRejectsDefaultSecretInRelease(t *testing.T) {
	cfg := &Config{SecretKey: DefaultSecretKey, GinMode: "release", Port: "3000"}
	require.Error(t, cfg.Validate())

	cfg.GinMode = "debug"
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	cfg := &Config{SecretKey: "x", GinMode: "production", Port: "3000"}
	require.Error(t, cfg.Validate())
}
