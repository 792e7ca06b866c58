package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Session  SessionConfig
	Screens  []ScreenConfig `mapstructure:"screens"`
	Log      LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// UpstreamConfig points at the CMS REST backend.
type UpstreamConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// ScreenConfig parameterizes one admin screen. Paths are upstream path
// templates; {domain} and {id} are substituted by the gateway.
type ScreenConfig struct {
	Name          string   `mapstructure:"name"`
	ItemsField    string   `mapstructure:"items_field"`
	ListPath      string   `mapstructure:"list_path"`
	SearchPath    string   `mapstructure:"search_path"`
	DeletePath    string   `mapstructure:"delete_path"`
	PageSize      int      `mapstructure:"page_size"`
	Domains       []string `mapstructure:"domains"`
	DefaultDomain string   `mapstructure:"default_domain"`
}

// HasDomains reports whether the screen lists by category at all.
func (s ScreenConfig) HasDomains() bool {
	return len(s.Domains) > 0
}

// KnowsDomain reports whether the given domain is configured for the screen.
func (s ScreenConfig) KnowsDomain(domain string) bool {
	for _, d := range s.Domains {
		if d == domain {
			return true
		}
	}
	return false
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, rely on defaults and env vars.
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8096)
	v.SetDefault("upstream.base_url", "http://localhost:5000")
	v.SetDefault("upstream.timeout", "15s")
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("session.sweep_interval", "1m")
	v.SetDefault("log.level", "info")

	// Bind environment variables
	v.BindEnv("server.port", "PORT")
	v.BindEnv("upstream.base_url", "UPSTREAM_BASE_URL")
	v.BindEnv("upstream.timeout", "UPSTREAM_TIMEOUT")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if len(cfg.Screens) == 0 {
		cfg.Screens = DefaultScreens()
	}
	for i := range cfg.Screens {
		if cfg.Screens[i].PageSize <= 0 {
			cfg.Screens[i].PageSize = 10
		}
	}

	return &cfg, nil
}

// Screen looks up a screen by name.
func (c *Config) Screen(name string) (ScreenConfig, bool) {
	for _, s := range c.Screens {
		if s.Name == name {
			return s, true
		}
	}
	return ScreenConfig{}, false
}

// DefaultScreens mirrors the three CMS admin screens the service fronts.
func DefaultScreens() []ScreenConfig {
	return []ScreenConfig{
		{
			Name:       "users",
			ItemsField: "users",
			ListPath:   "/v1/users/domain/{domain}/paginated",
			SearchPath: "/v1/searchUsers",
			DeletePath: "/v1/deleteUser/{id}",
			PageSize:   10,
			Domains: []string{
				"Students", "Startups", "Mentors", "Investors", "Alumni",
			},
			DefaultDomain: "Students",
		},
		{
			Name:       "event-records",
			ItemsField: "eventRecords",
			ListPath:   "/v1/eventRecords/paginated",
			SearchPath: "/v1/searchEventRecords",
			DeletePath: "/v1/deleteEventRecord/{id}",
			PageSize:   15,
		},
		{
			Name:       "event-details",
			ItemsField: "events",
			ListPath:   "/v1/events/paginated",
			SearchPath: "/v1/searchEvents",
			DeletePath: "/v1/deleteEvent/{id}",
			PageSize:   10,
		},
	}
}
