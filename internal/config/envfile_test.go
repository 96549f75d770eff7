package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.local")

	envFile, err := NewEnvFile(path)
	require.NoError(t, err)

	// Missing keys read as empty, not as errors.
	value, err := envFile.Get(EnvKeyAgentID)
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, envFile.Set(EnvKeyAgentID, "agent_123"))
	require.NoError(t, envFile.Set(EnvKeyPhoneNumber, "+15550123456"))

	value, err = envFile.Get(EnvKeyAgentID)
	require.NoError(t, err)
	assert.Equal(t, "agent_123", value)

	// Values survive a reopen, they are the durable local state.
	reopened, err := NewEnvFile(path)
	require.NoError(t, err)

	value, err = reopened.Get(EnvKeyPhoneNumber)
	require.NoError(t, err)
	assert.Equal(t, "+15550123456", value)
}

func TestEnvFileSetOverwrites(t *testing.T) {
	envFile, err := NewEnvFile(filepath.Join(t.TempDir(), ".env.local"))
	require.NoError(t, err)

	require.NoError(t, envFile.Set(EnvKeyAgentID, "agent_old"))
	require.NoError(t, envFile.Set(EnvKeyAgentID, "agent_new"))

	value, err := envFile.Get(EnvKeyAgentID)
	require.NoError(t, err)
	assert.Equal(t, "agent_new", value)
}
