package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "app:\n  name: demo\n"))
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, StoreBackendMemory, cfg.Store.Backend)
	assert.Equal(t, SearchIndexNone, cfg.Store.SearchIndex)
	assert.Equal(t, CacheBackendNone, cfg.Cache.Backend)
	assert.Equal(t, ProviderGemini, cfg.APIs.GenAI.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.APIs.GenAI.Model)
	assert.Equal(t, 0, cfg.APIs.GenAI.Timeout, "generator calls are unbounded unless configured")
	assert.Equal(t, 4.0, cfg.Resolution.MinRating)
	assert.Equal(t, "https://placehold.co/300x200.png", cfg.Resolution.PlaceholderImage)
}

func TestLoadFromFile_EnvExpansion(t *testing.T) {
	t.Setenv("TC_TEST_KEY", "sk-123")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")

	cfg, err := LoadFromFile(writeConfig(t, `
apis:
  genai:
    provider: openai
    api_key: ${TC_TEST_KEY}
database:
  postgres:
    user: ${TC_TEST_UNSET_USER}
`))
	require.NoError(t, err)

	assert.Equal(t, "sk-123", cfg.APIs.GenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.APIs.GenAI.Model)
	assert.Equal(t, "", cfg.Database.Postgres.User)
}

func TestLoadFromFile_Workers(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, `
camunda:
  max_jobs_active: 7
  timeout: 15000
workers:
  search-topics:
    enabled: true
  suggest-communities:
    enabled: false
    timeout: 90000
`))
	require.NoError(t, err)

	search := GetWorkerConfig(cfg, "search-topics")
	assert.True(t, search.Enabled)
	assert.Equal(t, 7, search.MaxJobsActive)
	assert.Equal(t, 15000, search.Timeout)

	assert.False(t, IsWorkerEnabled(cfg, "suggest-communities"))
	assert.Equal(t, 90000, GetWorkerConfig(cfg, "suggest-communities").Timeout)

	assert.True(t, IsWorkerEnabled(cfg, "resolve-communities"), "unlisted workers default to enabled")
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "postgres without host", body: "store:\n  backend: postgres\n"},
		{name: "unknown store", body: "store:\n  backend: firestore\n"},
		{name: "elasticsearch without address", body: "store:\n  search_index: elasticsearch\n"},
		{name: "redis without address", body: "cache:\n  backend: redis\n"},
		{name: "camunda without broker", body: "camunda:\n  enabled: true\n"},
		{name: "http provider without url", body: "apis:\n  genai:\n    provider: http\n"},
		{name: "unknown provider", body: "apis:\n  genai:\n    provider: bard\n"},
		{name: "rating out of range", body: "resolution:\n  min_rating: 7\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	dsn := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "tc", SSLMode: "disable"}.GetDSN()
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=tc sslmode=disable", dsn)
}

func TestElasticsearchConfig_GetAddresses(t *testing.T) {
	assert.Equal(t, []string{"http://a:9200"}, ElasticsearchConfig{URL: "http://a:9200"}.GetAddresses())
	assert.Equal(t, []string{"http://b:9200"}, ElasticsearchConfig{Addresses: []string{"http://b:9200"}, URL: "x"}.GetAddresses())
	assert.Nil(t, ElasticsearchConfig{}.GetAddresses())
}
