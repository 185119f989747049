package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsForSQLite(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "quiz.db", cfg.Database.Path)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 6, cfg.Quiz.CodeLength)
	assert.Equal(t, 5, cfg.Quiz.CodeAttempts)
	assert.Equal(t, 5*time.Minute, cfg.Quiz.QuestionCacheTTL)
	assert.True(t, cfg.Auth.RequireAdminToken)
	assert.Equal(t, "admin", cfg.Auth.BootstrapUsername)
	assert.Empty(t, cfg.Auth.BootstrapPassword, "Пароль по умолчанию не должен быть зашит")
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
database:
  driver: postgres
  host: db
  user: quiz
  dbname: quiz
jwt:
  secret: from-file
quiz:
  code_attempts: 3
`)
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("DATABASE_PASSWORD", "pw")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port, "Переменная окружения важнее файла")
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, 3, cfg.Quiz.CodeAttempts)
	assert.Contains(t, cfg.Database.PostgresConnectionString(), "host=db")
	assert.Contains(t, cfg.Database.PostgresConnectionString(), "password=pw")
}

func TestLoad_ValidationErrors(t *testing.T) {
	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := Load(writeConfig(t, "auth:\n  require_admin_token: true\n"))
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("DATABASE_DRIVER", "oracle")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("incomplete postgres", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("DATABASE_DRIVER", "postgres")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("redis without address", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("REDIS_ENABLED", "true")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestSQLiteDSN(t *testing.T) {
	d := DatabaseConfig{Path: "/tmp/x.db"}
	assert.Equal(t, "file:/tmp/x.db?_foreign_keys=on&_busy_timeout=5000", d.SQLiteDSN())

	empty := DatabaseConfig{}
	assert.Contains(t, empty.SQLiteDSN(), "file:quiz.db")
}
