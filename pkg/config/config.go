package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv      string `yaml:"app_env"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	ServiceName string `yaml:"service_name"`

	GRPCPort int `yaml:"grpc_port"`
	HTTPPort int `yaml:"http_port"`

	// SessionTTL is how long a cart may stay untouched before the sweeper
	// invalidates it. Zero keeps carts until they are invalidated explicitly.
	SessionTTL    time.Duration `yaml:"session_ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`

	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

func defaults() Config {
	return Config{
		AppEnv:        "dev",
		LogLevel:      "info",
		LogFormat:     "json",
		ServiceName:   "cartd",
		HTTPPort:      8080,
		GRPCPort:      8081,
		SessionTTL:    30 * time.Minute,
		SweepInterval: time.Minute,
	}
}

// Load reads the configuration from the environment. When CONFIG_FILE is set
// the file is read first and the environment overrides it.
func Load() (Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return LoadFile(path)
	}
	return fromEnv(defaults()), nil
}

func LoadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fromEnv(cfg), nil
}

func fromEnv(base Config) Config {
	return Config{
		AppEnv:        getEnv("APP_ENV", base.AppEnv),
		LogLevel:      getEnv("LOG_LEVEL", base.LogLevel),
		LogFormat:     getEnv("LOG_FORMAT", base.LogFormat),
		ServiceName:   getEnv("SERVICE_NAME", base.ServiceName),
		HTTPPort:      getEnvInt("HTTP_PORT", base.HTTPPort),
		GRPCPort:      getEnvInt("GRPC_PORT", base.GRPCPort),
		SessionTTL:    getEnvDuration("SESSION_TTL", base.SessionTTL),
		SweepInterval: getEnvDuration("SWEEP_INTERVAL", base.SweepInterval),
		OTLPEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", base.OTLPEndpoint),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
