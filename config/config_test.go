package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGetDefaults(t *testing.T) {
	path := writeConfig(t, `{}`)
	c := Get(path)

	assert.Equal(t, "8080", c.ApiPort)
	assert.Equal(t, "sqlite3", c.Database)
	assert.Equal(t, "stella-telephony-agent", c.Agent.Name)
	assert.Equal(t, 5, c.Agent.DispatchIntervalSec)
	assert.Equal(t, 10, c.Agent.DispatchBatchSize)
}

func TestGetOverrides(t *testing.T) {
	path := writeConfig(t, `{
		"api_port": "9090",
		"database": "postgres",
		"db_host": "db.internal",
		"agent": {"name": "stella-dev", "dispatch_interval_sec": 2, "dispatch_batch_size": 3}
	}`)
	c := Get(path)

	assert.Equal(t, "9090", c.ApiPort)
	assert.Equal(t, "postgres", c.Database)
	assert.Equal(t, "db.internal", c.DbHost)
	assert.Equal(t, "stella-dev", c.Agent.Name)
	assert.Equal(t, 2, c.Agent.DispatchIntervalSec)
	assert.Equal(t, 3, c.Agent.DispatchBatchSize)
}
