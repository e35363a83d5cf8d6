// Package config loads the GreenBloom server configuration from an optional
// YAML file, a .env file and the process environment, in that order.
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
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Visitor   VisitorConfig   `yaml:"visitor"`
	Chat      ChatConfig      `yaml:"chat"`
	Mail      MailConfig      `yaml:"mail"`
	Reminders RemindersConfig `yaml:"reminders"`
	Logger    LoggerConfig    `yaml:"logger"`
}

type ServerConfig struct {
	Addr         string `yaml:"addr"`
	AllowOrigins string `yaml:"allow_origins"` // comma separated
	StaticDir    string `yaml:"static_dir"`
	Location     string `yaml:"location"` // time zone used for schedules
}

type StoreConfig struct {
	Driver      string `yaml:"driver"` // memory | bolt | postgres
	Path        string `yaml:"path"`   // bolt file
	DatabaseURL string `yaml:"database_url"`
}

type CatalogConfig struct {
	PlantsFile string `yaml:"plants_file"`
}

type VisitorConfig struct {
	Secret string `yaml:"secret"`
	TTL    string `yaml:"ttl"`
}

type ChatConfig struct {
	ReplyDelay string `yaml:"reply_delay"`
	IdleTTL    string `yaml:"idle_ttl"`
}

type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Enabled reports whether outgoing mail is configured at all.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.From != ""
}

type RemindersConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"` // cron expression
}

type LoggerConfig struct {
	Mode       string `yaml:"mode"` // development | production
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// DefaultConfig returns a configuration that runs with no external services.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			AllowOrigins: "http://127.0.0.1:5500,http://localhost:5500,http://localhost:3000",
			StaticDir:    "./static",
			Location:     "Local",
		},
		Store: StoreConfig{
			Driver: "memory",
			Path:   "data/greenbloom.db",
		},
		Catalog: CatalogConfig{
			PlantsFile: "data/plants.json",
		},
		Visitor: VisitorConfig{
			Secret: "greenbloom-dev-secret",
			TTL:    "8760h",
		},
		Chat: ChatConfig{
			ReplyDelay: "1s",
			IdleTTL:    "1h",
		},
		Mail: MailConfig{
			Port: 587,
		},
		Reminders: RemindersConfig{
			Enabled:  true,
			Schedule: "@every 1h",
		},
		Logger: LoggerConfig{
			Mode:     "development",
			Filename: "logs/greenbloom.log",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error; the
// environment is applied afterwards either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	// .env is optional, same as in development setups without one
	_ = godotenv.Load()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Server.Addr, "GREENBLOOM_ADDR")
	setString(&c.Server.AllowOrigins, "ALLOW_ORIGINS")
	setString(&c.Server.Location, "GREENBLOOM_TZ")
	setString(&c.Store.Driver, "STORE_DRIVER")
	setString(&c.Store.Path, "STORE_PATH")
	setString(&c.Store.DatabaseURL, "DATABASE_URL")
	setString(&c.Catalog.PlantsFile, "PLANTS_FILE")
	setString(&c.Visitor.Secret, "VISITOR_SECRET")
	setString(&c.Mail.Host, "SMTP_HOST")
	setString(&c.Mail.Username, "SMTP_USERNAME")
	setString(&c.Mail.Password, "SMTP_PASSWORD")
	setString(&c.Mail.From, "SMTP_FROM")
	setString(&c.Logger.Mode, "LOG_MODE")
	if v := strings.TrimSpace(os.Getenv("SMTP_PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Mail.Port = port
		}
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FILE")); v != "" {
		c.Logger.FileEnable = true
		c.Logger.Filename = v
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "memory":
	case "bolt":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the bolt driver")
		}
	case "postgres":
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("store.database_url (DATABASE_URL) is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Visitor.Secret == "" {
		return fmt.Errorf("visitor.secret is required")
	}
	for name, v := range map[string]string{
		"visitor.ttl":      c.Visitor.TTL,
		"chat.reply_delay": c.Chat.ReplyDelay,
		"chat.idle_ttl":    c.Chat.IdleTTL,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, v, err)
		}
	}
	return nil
}

func (c *Config) VisitorTTL() time.Duration { return mustDuration(c.Visitor.TTL, 365*24*time.Hour) }
func (c *Config) ChatReplyDelay() time.Duration { return mustDuration(c.Chat.ReplyDelay, time.Second) }
func (c *Config) ChatIdleTTL() time.Duration { return mustDuration(c.Chat.IdleTTL, time.Hour) }

// TimeLocation resolves Server.Location, falling back to time.Local.
func (c *Config) TimeLocation() *time.Location {
	if c.Server.Location == "" || c.Server.Location == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Server.Location)
	if err != nil {
		return time.Local
	}
	return loc
}

func mustDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
