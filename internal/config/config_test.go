package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_NAME", "APP_ENV", "LOG_LEVEL", "PORT", "API_AUTH_TOKEN",
		"IMEI_CHECK_API_URL", "IMEI_CHECK_API_TOKEN", providerServiceIDEnvVar,
		providerSecondsEnvVar, providerDurationEnvVar, gatewaySecondsEnvVar, gatewayDurationEnvVar,
		shutdownSecondsEnvVar, shutdownDurationEnvVar, "TELEGRAM_BOT_TOKEN", "API_URL",
		allowedUserIDsEnvVar, "REDIS_URL", "ALLOWLIST_REDIS_KEY", "METRICS_PORT",
		"BOT_DRY_RUN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_AUTH_TOKEN", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Address())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, defaultProviderURL, cfg.Gateway.ProviderURL)
	assert.Equal(t, "secret", cfg.Gateway.ProviderToken, "provider token falls back to the caller secret")
	assert.Equal(t, 12, cfg.Gateway.ProviderServiceID)
	assert.Equal(t, 15*time.Second, cfg.Gateway.ProviderTimeout)
	assert.Equal(t, 20*time.Second, cfg.Bot.GatewayTimeout)
	assert.Equal(t, defaultGatewayURL, cfg.Bot.GatewayURL)
	assert.Empty(t, cfg.MetricsAddress())
	assert.NoError(t, cfg.ValidateGateway())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_AUTH_TOKEN", "secret")
	t.Setenv("IMEI_CHECK_API_TOKEN", "provider-secret")
	t.Setenv("PORT", ":9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv(providerSecondsEnvVar, "3")
	t.Setenv(gatewayDurationEnvVar, "1500ms")
	t.Setenv(providerServiceIDEnvVar, "7")
	t.Setenv(allowedUserIDsEnvVar, "6248416489, 42,")
	t.Setenv("METRICS_PORT", "9100")
	t.Setenv("BOT_DRY_RUN", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Address())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "provider-secret", cfg.Gateway.ProviderToken)
	assert.Equal(t, 3*time.Second, cfg.Gateway.ProviderTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Bot.GatewayTimeout)
	assert.Equal(t, 7, cfg.Gateway.ProviderServiceID)
	assert.Equal(t, []int64{6248416489, 42}, cfg.Bot.AllowedUserIDs)
	assert.Equal(t, ":9100", cfg.MetricsAddress())
	assert.True(t, cfg.Bot.DryRun)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	cases := map[string][2]string{
		"user ids":   {allowedUserIDsEnvVar, "12,abc"},
		"timeout":    {providerSecondsEnvVar, "soon"},
		"duration":   {gatewayDurationEnvVar, "forever"},
		"service id": {providerServiceIDEnvVar, "twelve"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), kv[0])
		})
	}
}

func TestValidateRequiresSecrets(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Error(t, cfg.ValidateGateway())
	assert.Error(t, cfg.ValidateBot())

	cfg.Bot.TelegramToken = "tg"
	cfg.Bot.AuthToken = "secret"
	assert.NoError(t, cfg.ValidateBot())
}
