package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"HOSTNAME":   "example.org",
		"JWT_SECRET": "secret",
		"DB_DSN":     "user:pass@tcp(localhost:3306)/agora",
		"REDIS_ADDR": "localhost:6379",
	}
}

func TestFromEnvDefaults(t *testing.T) {
	s, err := FromEnv(envOf(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, "8536", s.AppPort)
	assert.Equal(t, "mysql", s.DBDriver)
	assert.True(t, s.TLSEnabled)
	assert.Equal(t, "https://example.org", s.ProtocolAndHostname())
	assert.Equal(t, DefaultMaxTitleLength, s.MaxTitleLength)
	assert.Equal(t, DefaultMetadataTimeout, s.MetadataTimeout)
	assert.Equal(t, 4, s.NotifyWorkers)
	assert.Equal(t, 256, s.NotifyQueueSize)
}

func TestFromEnvOverrides(t *testing.T) {
	env := baseEnv()
	env["TLS_ENABLED"] = "false"
	env["DB_DRIVER"] = "Postgres"
	env["METADATA_TIMEOUT"] = "2s"
	env["MAX_TITLE_LENGTH"] = "120"

	s, err := FromEnv(envOf(env))
	require.NoError(t, err)

	assert.Equal(t, "http://example.org", s.ProtocolAndHostname())
	assert.Equal(t, "postgres", s.DBDriver)
	assert.Equal(t, 2*time.Second, s.MetadataTimeout)
	assert.Equal(t, 120, s.MaxTitleLength)
}

func TestFromEnvMissingRequired(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{"HOSTNAME": "example.org"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN, JWT_SECRET, REDIS_ADDR")
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"DB_DRIVER":        "sqlite",
		"TLS_ENABLED":      "maybe",
		"METADATA_TIMEOUT": "soon",
		"MAX_TITLE_LENGTH": "0",
		"NOTIFY_WORKERS":   "x",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			env := baseEnv()
			env[key] = value
			_, err := FromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}

func TestFromEnvCapsTitleLengthAtColumnSize(t *testing.T) {
	env := baseEnv()
	env["MAX_TITLE_LENGTH"] = "200"
	s, err := FromEnv(envOf(env))
	require.NoError(t, err)
	assert.Equal(t, 200, s.MaxTitleLength)

	env["MAX_TITLE_LENGTH"] = "201"
	_, err = FromEnv(envOf(env))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_TITLE_LENGTH")
}
