package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
bot:
  token: "123:abc"
channel:
  username: "@meat_channel"
  link: "https://t.me/meat_channel"
owner_id: 42
database:
  name: meat
rate_limit:
  enabled: true
  per_user:
    limit: 5
    window: 10s
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_FromYAML(t *testing.T) {
	cfg, v, err := LoadFile(writeConfig(t, validYAML))
	require.NoError(t, err)
	require.NotNil(t, v)

	assert.Equal(t, "123:abc", cfg.Bot.Token)
	assert.Equal(t, ModeLongPoll, cfg.Bot.Mode)
	assert.Equal(t, 10*time.Second, cfg.Bot.Timeout)
	assert.Equal(t, int64(42), cfg.OwnerID)
	assert.Equal(t, "@meat_channel", cfg.Channel.Username)
	assert.Equal(t, 5, cfg.RateLimit.PerUser.Limit)
	assert.Equal(t, "uz", cfg.I18n.Language)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("TG_BOT_TOKEN", "999:env")
	t.Setenv("CREATOR_ID", "7")
	t.Setenv("CHANNEL_LINK", "https://t.me/other")
	t.Setenv("DATABASE_URL", "postgres://meat:meat@db/meat?sslmode=disable")

	cfg, _, err := LoadFile(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "999:env", cfg.Bot.Token)
	assert.Equal(t, int64(7), cfg.OwnerID)
	assert.Equal(t, "https://t.me/other", cfg.Channel.Link)
	assert.Equal(t, "postgres://meat:meat@db/meat?sslmode=disable", cfg.GetDBConnectionString())
}

func TestLoadFile_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "1:x")
	t.Setenv("CHANNEL_USERNAME", "@c")
	t.Setenv("CHANNEL_LINK", "https://t.me/c")
	t.Setenv("DATABASE_NAME", "meat")

	cfg, _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "1:x", cfg.Bot.Token)
	assert.Equal(t, "host=localhost port=5432 user= password= dbname=meat sslmode=disable", cfg.GetDBConnectionString())
}

func TestLoadFile_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{
			name: "missing token",
			body: `
channel:
  username: "@c"
  link: "https://t.me/c"
database:
  name: meat
`,
		},
		{
			name: "bad channel link",
			body: `
bot:
  token: "1:x"
channel:
  username: "@c"
  link: "not a url"
database:
  name: meat
`,
		},
		{
			name: "webhook without listen address",
			body: `
bot:
  token: "1:x"
  mode: webhook
channel:
  username: "@c"
  link: "https://t.me/c"
database:
  name: meat
`,
		},
		{
			name: "unknown mode",
			body: `
bot:
  token: "1:x"
  mode: carrier-pigeon
channel:
  username: "@c"
  link: "https://t.me/c"
database:
  name: meat
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := LoadFile(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}
