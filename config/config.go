package config

import (
	"os"
	"strconv"
	"time"
)

type ConfigStruct struct {
	Gemini   GeminiConfig
	Spotify  SpotifyConfig
	Database DatabaseConfig
	Sentry   SentryConfig
	Options  Options
}

type GeminiConfig struct {
	Enabled bool
	APIKey  string
	Model   string
	Timeout time.Duration
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Market       string
	SearchRate   float64 // catalog searches per second
	Timeout      time.Duration
}

type DatabaseConfig struct {
	Path string
}

type SentryConfig struct {
	DSN     string
	Release string
}

type Options struct {
	Port     string
	LogLevel string
}

func (g *GeminiConfig) IsEnabled() bool {
	return g.Enabled && g.APIKey != ""
}

func (s *SpotifyConfig) HasCredentials() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

var Config *ConfigStruct

func NewConfig() *ConfigStruct {
	config := &ConfigStruct{
		Gemini: GeminiConfig{
			Enabled: os.Getenv("GEMINI_ENABLED") == "true",
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:   getEnvDefault("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout: getTimeout("GEMINI_TIMEOUT_SECONDS", 30),
		},
		Spotify: SpotifyConfig{
			ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
			ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
			RedirectURI:  getEnvDefault("SPOTIFY_REDIRECT_URI", "http://localhost:8080/api/spotify/callback"),
			Market:       os.Getenv("SPOTIFY_MARKET"),
			SearchRate:   getSearchRate(),
			Timeout:      getTimeout("SPOTIFY_TIMEOUT_SECONDS", 10),
		},
		Database: DatabaseConfig{
			Path: getEnvDefault("DB_PATH", "./data/yogabeats.db"),
		},
		Sentry: SentryConfig{
			DSN:     os.Getenv("SENTRY_DSN"),
			Release: os.Getenv("RELEASE"),
		},
		Options: Options{
			Port:     getEnvDefault("PORT", "8080"),
			LogLevel: getEnvDefault("LOG_LEVEL", "info"),
		},
	}

	Config = config
	return config
}

func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getSearchRate() float64 {
	rateStr := os.Getenv("SPOTIFY_SEARCH_RATE")
	if rateStr == "" {
		return 10
	}
	rate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil || rate <= 0 {
		return 10
	}
	if rate > 50 {
		return 50 // stay well under Spotify's rolling-window limit
	}
	return rate
}

func getTimeout(key string, fallbackSeconds int) time.Duration {
	fallback := time.Duration(fallbackSeconds) * time.Second
	secondsStr := os.Getenv(key)
	if secondsStr == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(secondsStr)
	if err != nil || seconds <= 0 {
		return fallback
	}
	if seconds > 120 {
		return 120 * time.Second
	}
	return time.Duration(seconds) * time.Second
}
