package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmdFlagDefaults(t *testing.T) {
	cmd := newServeCmd()

	tests := []struct {
		flag string
		want string
	}{
		{"http-addr", ":8080"},
		{"metrics-addr", ":9090"},
		{"metrics-enabled", "true"},
		{"debug", "false"},
		{"env-file", ".env"},
		{"session-timeout", "24h0m0s"},
	}

	for _, tt := range tests {
		f := cmd.Flags().Lookup(tt.flag)
		require.NotNil(t, f, "flag %s should exist", tt.flag)
		assert.Equal(t, tt.want, f.DefValue, "flag %s default", tt.flag)
	}
}

func TestServeRequiresBackendConfig(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	cmd := newServeCmd()
	cmd.SetArgs([]string{"--env-file", ""})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend URL and API key are required")
}

func TestLoadMetricsEnvVars(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("METRICS_ADDR", ":9999")

	cmd := newServeCmd()
	config := MetricsConfig{Enabled: true, Addr: ":9090"}
	loadMetricsEnvVars(cmd, &config)

	assert.False(t, config.Enabled)
	assert.Equal(t, ":9999", config.Addr)
}

func TestLoadMetricsEnvVarsFlagWins(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("METRICS_ADDR", ":9999")

	cmd := newServeCmd()
	require.NoError(t, cmd.Flags().Set("metrics-enabled", "true"))
	require.NoError(t, cmd.Flags().Set("metrics-addr", ":7070"))

	config := MetricsConfig{Enabled: true, Addr: ":7070"}
	loadMetricsEnvVars(cmd, &config)

	assert.True(t, config.Enabled)
	assert.Equal(t, ":7070", config.Addr)
}
