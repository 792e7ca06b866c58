package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// No config file exists in the package directory, so Load falls back
	// to defaults and env vars.
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8096, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Len(t, cfg.Screens, 3)
}

func TestScreenLookup(t *testing.T) {
	cfg := &Config{Screens: DefaultScreens()}

	users, ok := cfg.Screen("users")
	require.True(t, ok)
	assert.Equal(t, "users", users.ItemsField)
	assert.Equal(t, 10, users.PageSize)
	assert.Equal(t, "Students", users.DefaultDomain)

	_, ok = cfg.Screen("ghosts")
	assert.False(t, ok)
}

func TestScreenDomains(t *testing.T) {
	cfg := &Config{Screens: DefaultScreens()}

	users, _ := cfg.Screen("users")
	assert.True(t, users.HasDomains())
	assert.True(t, users.KnowsDomain("Startups"))
	assert.False(t, users.KnowsDomain("Aliens"))

	records, _ := cfg.Screen("event-records")
	assert.False(t, records.HasDomains())
	assert.Equal(t, 15, records.PageSize)
}
