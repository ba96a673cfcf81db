/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads process configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevTokenSecret signs mock login tokens when TOKEN_SECRET is unset.
const DevTokenSecret = "apiflow-dev-secret"

// Storage drivers.
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	APIBaseURL string `mapstructure:"API_BASE_URL"`

	MockEnabled    bool   `mapstructure:"MOCK_ENABLED"`
	MockDelayMinMS int    `mapstructure:"MOCK_DELAY_MIN_MS"`
	MockDelayMaxMS int    `mapstructure:"MOCK_DELAY_MAX_MS"`
	MockServerAddr string `mapstructure:"MOCK_SERVER_ADDR"`
	TokenSecret    string `mapstructure:"TOKEN_SECRET"`

	RequestTimeoutMS int     `mapstructure:"REQUEST_TIMEOUT_MS"`
	LoadingDelayMS   int     `mapstructure:"LOADING_DELAY_MS"`
	RateLimit        float64 `mapstructure:"RATE_LIMIT"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
}

var defaults = map[string]any{
	"API_BASE_URL":       "https://petstore3.swagger.io/api/v3",
	"MOCK_ENABLED":       true,
	"MOCK_DELAY_MIN_MS":  200,
	"MOCK_DELAY_MAX_MS":  600,
	"MOCK_SERVER_ADDR":   ":8080",
	"TOKEN_SECRET":       DevTokenSecret,
	"REQUEST_TIMEOUT_MS": 60000,
	"LOADING_DELAY_MS":   300,
	"RATE_LIMIT":         0,
	"LOG_LEVEL":          "info",
	"LOG_FORMAT":         "text",
	"STORAGE_DRIVER":     StorageMemory,
	"REDIS_ADDR":         "localhost:6379",
	"REDIS_DB":           0,
	"REDIS_PASSWORD":     "",
}

// Load reads ./.env when present, then the environment.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit .env path. A missing file is not an
// error; variables already set in the environment win over the file.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("config: load %s: %w", envFile, err)
			}
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	for k, def := range defaults {
		v.SetDefault(k, def)
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unable to decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	if c.MockDelayMinMS < 0 || c.MockDelayMaxMS < c.MockDelayMinMS {
		errs = append(errs, fmt.Errorf("config: mock delay range [%d, %d] is invalid", c.MockDelayMinMS, c.MockDelayMaxMS))
	}
	if c.RateLimit < 0 {
		errs = append(errs, errors.New("config: RATE_LIMIT must not be negative"))
	}
	switch c.StorageDriver {
	case StorageMemory, StorageRedis:
	default:
		errs = append(errs, fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver))
	}
	if c.TokenSecret == "" {
		errs = append(errs, errors.New("config: TOKEN_SECRET must not be empty"))
	}
	return errors.Join(errs...)
}

// MockDelay returns the jitter bounds.
func (c *Config) MockDelay() (lo, hi time.Duration) {
	return ms(c.MockDelayMinMS), ms(c.MockDelayMaxMS)
}

// RequestTimeout returns the transport deadline.
func (c *Config) RequestTimeout() time.Duration { return ms(c.RequestTimeoutMS) }

// LoadingDelay returns the loading indicator delay.
func (c *Config) LoadingDelay() time.Duration { return ms(c.LoadingDelayMS) }

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// String renders the configuration with secrets masked.
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  APIBaseURL: %s\n", c.APIBaseURL)
	fmt.Fprintf(&sb, "  MockEnabled: %v\n", c.MockEnabled)
	fmt.Fprintf(&sb, "  MockDelay: %dms..%dms\n", c.MockDelayMinMS, c.MockDelayMaxMS)
	fmt.Fprintf(&sb, "  MockServerAddr: %s\n", c.MockServerAddr)
	fmt.Fprintf(&sb, "  TokenSecret: %s\n", mask(c.TokenSecret))
	fmt.Fprintf(&sb, "  RequestTimeout: %dms\n", c.RequestTimeoutMS)
	fmt.Fprintf(&sb, "  LoadingDelay: %dms\n", c.LoadingDelayMS)
	fmt.Fprintf(&sb, "  RateLimit: %g\n", c.RateLimit)
	fmt.Fprintf(&sb, "  Log: %s/%s\n", c.LogLevel, c.LogFormat)
	fmt.Fprintf(&sb, "  StorageDriver: %s\n", c.StorageDriver)
	fmt.Fprintf(&sb, "  RedisAddr: %s\n", c.RedisAddr)
	fmt.Fprintf(&sb, "  RedisDB: %d\n", c.RedisDB)
	fmt.Fprintf(&sb, "  RedisPassword: %s\n", mask(c.RedisPassword))
	return sb.String()
}

func mask(s string) string {
	if s == "" {
		return "(empty)"
	}
	return "********"
}
