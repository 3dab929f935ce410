package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	defaultAppName          = "IMEIRelay"
	defaultAppEnv           = "development"
	defaultPort             = "5000"
	defaultLogLevel         = "info"
	defaultShutdownDelay    = 10 * time.Second
	defaultProviderURL      = "https://api.imeicheck.net/v1/checks"
	defaultProviderService  = 12
	defaultProviderTimeout  = 15 * time.Second
	defaultGatewayURL       = "http://127.0.0.1:5000/api/check-imei"
	defaultGatewayTimeout   = 20 * time.Second
	defaultAllowListKey     = "imei_relay:allowlist"
	shutdownSecondsEnvVar   = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar  = "SHUTDOWN_TIMEOUT"
	providerSecondsEnvVar   = "PROVIDER_TIMEOUT_SECONDS"
	providerDurationEnvVar  = "PROVIDER_TIMEOUT"
	gatewaySecondsEnvVar    = "GATEWAY_TIMEOUT_SECONDS"
	gatewayDurationEnvVar   = "GATEWAY_TIMEOUT"
	allowedUserIDsEnvVar    = "ALLOWED_USER_IDS"
	providerServiceIDEnvVar = "IMEI_CHECK_SERVICE_ID"
)

// Config captures runtime configuration for both the gateway and the bot processes.
// Each process validates only its own block.
type Config struct {
	AppName        string
	AppEnv         string
	LogLevel       string
	ShutdownPeriod time.Duration
	Gateway        Gateway
	Bot            Bot
}

// Gateway holds settings for the HTTP validation gateway.
type Gateway struct {
	Port              string        `validate:"required"`
	AuthToken         string        `validate:"required"`
	ProviderURL       string        `validate:"required,url"`
	ProviderToken     string        `validate:"required"`
	ProviderServiceID int           `validate:"gt=0"`
	ProviderTimeout   time.Duration `validate:"gt=0"`
}

// Bot holds settings for the chat front end.
type Bot struct {
	TelegramToken  string        `validate:"required"`
	AuthToken      string        `validate:"required"`
	GatewayURL     string        `validate:"required,url"`
	GatewayTimeout time.Duration `validate:"gt=0"`
	AllowedUserIDs []int64
	RedisURL       string
	AllowListKey   string `validate:"required_with=RedisURL"`
	MetricsPort    string
	DryRun         bool
}

// Load reads configuration values from the environment (and an optional .env file)
// and populates a Config instance.
func Load() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}
	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(k.String(key)); v != "" {
			return v
		}
		return fallback
	}

	authToken := k.String("API_AUTH_TOKEN")
	cfg := Config{
		AppName:        get("APP_NAME", defaultAppName),
		AppEnv:         get("APP_ENV", defaultAppEnv),
		LogLevel:       strings.ToLower(get("LOG_LEVEL", defaultLogLevel)),
		ShutdownPeriod: defaultShutdownDelay,
		Gateway: Gateway{
			Port:              get("PORT", defaultPort),
			AuthToken:         authToken,
			ProviderURL:       get("IMEI_CHECK_API_URL", defaultProviderURL),
			ProviderToken:     get("IMEI_CHECK_API_TOKEN", authToken),
			ProviderServiceID: defaultProviderService,
			ProviderTimeout:   defaultProviderTimeout,
		},
		Bot: Bot{
			TelegramToken:  k.String("TELEGRAM_BOT_TOKEN"),
			AuthToken:      authToken,
			GatewayURL:     get("API_URL", defaultGatewayURL),
			GatewayTimeout: defaultGatewayTimeout,
			RedisURL:       k.String("REDIS_URL"),
			AllowListKey:   get("ALLOWLIST_REDIS_KEY", defaultAllowListKey),
			MetricsPort:    k.String("METRICS_PORT"),
			DryRun:         k.Bool("BOT_DRY_RUN"),
		},
	}

	var err error
	if cfg.ShutdownPeriod, err = duration(k, shutdownSecondsEnvVar, shutdownDurationEnvVar, cfg.ShutdownPeriod); err != nil {
		return Config{}, err
	}
	if cfg.Gateway.ProviderTimeout, err = duration(k, providerSecondsEnvVar, providerDurationEnvVar, cfg.Gateway.ProviderTimeout); err != nil {
		return Config{}, err
	}
	if cfg.Bot.GatewayTimeout, err = duration(k, gatewaySecondsEnvVar, gatewayDurationEnvVar, cfg.Bot.GatewayTimeout); err != nil {
		return Config{}, err
	}

	if v := k.String(providerServiceIDEnvVar); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", providerServiceIDEnvVar, err)
		}
		cfg.Gateway.ProviderServiceID = id
	}

	if cfg.Bot.AllowedUserIDs, err = parseUserIDs(k.String(allowedUserIDsEnvVar)); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ValidateGateway reports missing or malformed settings required by the gateway.
func (c Config) ValidateGateway() error {
	if err := validator.New().Struct(c.Gateway); err != nil {
		return fmt.Errorf("gateway config: %w", err)
	}
	return nil
}

// ValidateBot reports missing or malformed settings required by the bot.
func (c Config) ValidateBot() error {
	if err := validator.New().Struct(c.Bot); err != nil {
		return fmt.Errorf("bot config: %w", err)
	}
	return nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	return address(c.Gateway.Port)
}

// MetricsAddress returns the bot metrics listen address, or "" when disabled.
func (c Config) MetricsAddress() string {
	if c.Bot.MetricsPort == "" {
		return ""
	}
	return address(c.Bot.MetricsPort)
}

func address(port string) string {
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

func duration(k *koanf.Koanf, secondsKey, durationKey string, fallback time.Duration) (time.Duration, error) {
	if v := k.String(secondsKey); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", secondsKey, err)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	if v := k.String(durationKey); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", durationKey, err)
		}
		return d, nil
	}
	return fallback, nil
}

func parseUserIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s entry %q: %w", allowedUserIDsEnvVar, part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
