package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STOREFRONT_CONFIG", "")
	t.Setenv("BACKEND_URL", "")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8090", s.ListenAddr)
	assert.Equal(t, "http://localhost:8000/api/v1", s.BackendURL)
	assert.Equal(t, "memory", s.StateBackend)
	assert.Equal(t, "clear", s.CartPolicy)
	assert.Equal(t, 15*time.Second, s.RequestTimeout)
	assert.NoError(t, s.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storefront.yaml")
	content := `
listen_addr: ":9000"
backend_url: "http://file-backend/api/v1"
state_backend: redis
request_timeout: 3s
redis:
  host: cache
  port: "6380"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("STOREFRONT_CONFIG", path)
	t.Setenv("BACKEND_URL", "http://env-backend/api/v1")
	t.Setenv("STATE_TTL", "3600")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", s.ListenAddr)
	assert.Equal(t, "http://env-backend/api/v1", s.BackendURL)
	assert.Equal(t, "redis", s.StateBackend)
	assert.Equal(t, 3*time.Second, s.RequestTimeout)
	assert.Equal(t, time.Hour, s.StateTTL)
	assert.Equal(t, "cache", s.Redis.Host)
	assert.Equal(t, "6380", s.Redis.Port)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("STOREFRONT_CONFIG", "")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{name: "defaults", mutate: func(s *Settings) {}},
		{name: "unknown backend", mutate: func(s *Settings) { s.StateBackend = "sqlite" }, wantErr: true},
		{name: "unknown policy", mutate: func(s *Settings) { s.CartPolicy = "merge" }, wantErr: true},
		{name: "missing backend url", mutate: func(s *Settings) { s.BackendURL = "" }, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			s := Defaults()
			testCase.mutate(&s)
			if testCase.wantErr {
				assert.Error(t, s.Validate())
			} else {
				assert.NoError(t, s.Validate())
			}
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	s := Defaults()
	s.DB = DBSettings{Host: "db", Port: "5432", Name: "storefront", User: "app", Password: "secret"}
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=storefront sslmode=disable", s.PostgresDSN())
}

func TestSettings_ConsumerGroup(t *testing.T) {
	tests := []struct {
		name     string
		groupID  string
		clientID string
		expected string
	}{
		{name: "default prefix", groupID: "storefront", clientID: "kiosk-7", expected: "storefront-kiosk-7"},
		{name: "custom prefix", groupID: "web", clientID: "3f2a", expected: "web-3f2a"},
		{name: "no client", groupID: "storefront", expected: "storefront"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			s := Defaults()
			s.Kafka.GroupID = testCase.groupID
			assert.Equal(t, testCase.expected, s.ConsumerGroup(testCase.clientID))
		})
	}

	s := Defaults()
	assert.NotEqual(t, s.ConsumerGroup("client-1"), s.ConsumerGroup("client-2"))
}
