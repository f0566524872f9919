package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, path, err := LoadConfig(writeConfig(t, "server:\n  run-mode: debug\n"))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))

	assert.Equal(t, "debug", cfg.Server.RunMode)
	assert.True(t, cfg.IsDebug())
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.True(t, cfg.User.RegisterIsEnable)
	assert.Equal(t, 24*time.Hour, cfg.GetTokenExpiry())
	assert.Equal(t, 7*24*time.Hour, cfg.GetRefreshTokenExpiry())
	assert.Equal(t, 60*time.Second, cfg.GetContextTimeout())

	wq := cfg.GetWriteQueueConfig()
	assert.Equal(t, 100, wq.QueueCapacity)
	assert.Equal(t, 30*time.Second, wq.WriteTimeout)
	assert.Equal(t, 10*time.Minute, wq.IdleTimeout)
}

func TestLoadConfig_ExplicitFalseSurvives(t *testing.T) {
	cfg, _, err := LoadConfig(writeConfig(t, `
user:
  register-is-enable: false
log:
  production: false
tracer:
  enabled: false
`))
	require.NoError(t, err)
	assert.False(t, cfg.User.RegisterIsEnable)
	assert.False(t, cfg.Log.Production)
	assert.False(t, cfg.Tracer.Enabled)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, _, err = LoadConfig(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)

	_, _, err = LoadConfig(writeConfig(t, "database:\n  type: oracle\n"))
	assert.Error(t, err)

	_, _, err = LoadConfig(writeConfig(t, "security:\n  token-expiry: soon\n"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":        "8080",
		"JWT_SECRET":  "s3cret",
		"DB_TYPE":     "mysql",
		"DB_HOST":     "db:3306",
		"DB_USER":     "root",
		"DB_PASSWORD": "pw",
		"DB_NAME":     "notes",
		"SELF_URL":    "https://notes.example.com",
	}
	cfg := &AppConfig{}
	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, ":8080", cfg.Server.HttpPort)
	assert.Equal(t, "s3cret", cfg.Security.AuthTokenKey)
	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "db:3306", cfg.Database.Host)
	assert.Equal(t, "root", cfg.Database.UserName)
	assert.Equal(t, "pw", cfg.Database.Password)
	assert.Equal(t, "notes", cfg.Database.Name)
	assert.Equal(t, "https://notes.example.com", cfg.Task.SelfURL)
}

func TestLoadEnvFile(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")))

	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("NOTE_GRAPH_TEST_VAR=from-file\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("NOTE_GRAPH_TEST_VAR") })

	require.NoError(t, LoadEnvFile(p))
	assert.Equal(t, "from-file", os.Getenv("NOTE_GRAPH_TEST_VAR"))
}

func TestTaskIntervals(t *testing.T) {
	tests := []struct {
		name          string
		keepAlive     string
		selfURL       string
		selfPing      string
		wantKeepAlive time.Duration
		wantSelfPing  time.Duration
	}{
		{name: "defaults", keepAlive: "10m", selfPing: "5m", wantKeepAlive: 10 * time.Minute},
		{name: "keep-alive off", keepAlive: "0", wantKeepAlive: 0},
		{name: "garbage falls back", keepAlive: "soon", wantKeepAlive: 10 * time.Minute},
		{name: "self ping on", keepAlive: "1h", selfURL: "https://notes.example.com/api/health", selfPing: "30s",
			wantKeepAlive: time.Hour, wantSelfPing: 30 * time.Second},
		{name: "self ping default interval", keepAlive: "10m", selfURL: "https://x", selfPing: "",
			wantKeepAlive: 10 * time.Minute, wantSelfPing: 5 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AppConfig{Task: TaskConfig{
				KeepAliveInterval: tt.keepAlive,
				SelfURL:           tt.selfURL,
				SelfPingInterval:  tt.selfPing,
			}}
			assert.Equal(t, tt.wantKeepAlive, cfg.GetKeepAliveInterval())
			assert.Equal(t, tt.wantSelfPing, cfg.GetSelfPingInterval())
		})
	}
}
