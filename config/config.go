package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr     string `yaml:"addr"`
	GinMode  string `yaml:"gin_mode"`
	LogLevel string `yaml:"log_level"`

	ContentAPI ContentAPIConfig `yaml:"content_api"`
	TTS        TTSConfig        `yaml:"tts"`
	Storage    StorageConfig    `yaml:"storage"`

	CORSOrigins []string `yaml:"cors_origins"`

	SessionCookie string `yaml:"session_cookie"`
	// SecureCookie marks the session cookie Secure. Release mode always does.
	SecureCookie bool          `yaml:"secure_cookie"`
	SessionIdle  time.Duration `yaml:"session_idle"`

	// Covers maps a topic slug to the images used when an article has none.
	// The "default" entry is used for articles without a matching topic.
	Covers map[string][]string `yaml:"covers"`
}

type ContentAPIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type TTSConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	VoiceID string        `yaml:"voice_id"`
	Timeout time.Duration `yaml:"timeout"`
}

type StorageConfig struct {
	Driver        string `yaml:"driver"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
	SQLitePath    string `yaml:"sqlite_path"`
}

const (
	DriverMemory = "memory"
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

func Default() *Config {
	return &Config{
		Addr:     ":8080",
		GinMode:  "debug",
		LogLevel: "info",
		ContentAPI: ContentAPIConfig{
			Timeout: 15 * time.Second,
		},
		TTS: TTSConfig{
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Driver:        DriverMemory,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "newsreader",
			SQLitePath:    "newsreader.db",
		},
		SessionCookie: "nr_session",
		SessionIdle:   30 * time.Minute,
		Covers: map[string][]string{
			"default": {
				"/images/default/1.jpg",
				"/images/default/2.jpg",
				"/images/default/3.jpg",
			},
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path, and finally .env plus the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Addr, "ADDR")
	setString(&c.GinMode, "GIN_MODE")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.ContentAPI.BaseURL, "CONTENT_API_URL")
	setDuration(&c.ContentAPI.Timeout, "CONTENT_API_TIMEOUT")
	setString(&c.TTS.BaseURL, "TTS_API_URL")
	setString(&c.TTS.APIKey, "TTS_API_KEY")
	setString(&c.TTS.VoiceID, "TTS_VOICE_ID")
	setDuration(&c.TTS.Timeout, "TTS_TIMEOUT")
	setString(&c.Storage.Driver, "STORAGE_DRIVER")
	setString(&c.Storage.MongoURI, "MONGODB_URI")
	setString(&c.Storage.MongoDatabase, "MONGODB_DATABASE")
	setString(&c.Storage.SQLitePath, "SQLITE_PATH")
	setString(&c.SessionCookie, "SESSION_COOKIE")
	setBool(&c.SecureCookie, "SESSION_COOKIE_SECURE")
	setDuration(&c.SessionIdle, "SESSION_IDLE_TIMEOUT")

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := []string{}
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORSOrigins = origins
	}
}

// CookieSecure reports whether the session cookie needs the Secure flag.
func (c *Config) CookieSecure() bool {
	return c.SecureCookie || c.GinMode == "release"
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverMongo, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.ContentAPI.BaseURL == "" {
		return fmt.Errorf("content API URL is required (CONTENT_API_URL)")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		*dst = v
	}
}

// setDuration accepts Go durations ("20s") and ignores values that do not parse.
func setDuration(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		*dst = d
	}
}
