package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderBotYAML = `
region: eu-central-1
function:
  name: OrderLogic
  bundle_path: dist/order.zip
bot:
  name: OrderBot
  locale:
    id: de_DE
    confidence_threshold: 0.5
  intents:
    - name: OrderPizza
      utterances: ["Ich möchte eine Pizza", "Pizza bestellen"]
      fulfillment: true
      slots:
        - name: size
          type_id: AMAZON.AlphaNumeric
          required: true
          prompt: Welche Größe?
        - name: count
          type_id: AMAZON.Number
          prompt: Wie viele?
          max_retries: 3
output:
  path: out/order.json
  bucket: bot-records
  key: order/bot-config.json
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(orderBotYAML))
	require.NoError(t, err)

	assert.Equal(t, "eu-central-1", cfg.Region)
	assert.Equal(t, "OrderLogic", cfg.Function.Name)
	assert.Equal(t, "dist/order.zip", cfg.Function.BundlePath)
	assert.Equal(t, DefaultRuntime, cfg.Function.Runtime)
	assert.Equal(t, "de_DE", cfg.Bot.Locale.ID)
	assert.Equal(t, "TestAlias", cfg.Bot.Alias.Name)

	require.Len(t, cfg.Bot.Intents, 1)
	pizza := cfg.Bot.Intents[0]
	require.Len(t, pizza.Slots, 2)
	assert.True(t, pizza.Slots[0].Required)
	assert.Equal(t, int32(2), pizza.Slots[0].MaxRetries)
	assert.Equal(t, int32(3), pizza.Slots[1].MaxRetries)
	assert.Equal(t, "Success", pizza.SuccessMessage)

	assert.Equal(t, "bot-records", cfg.Output.Bucket)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("bot: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal yaml")
}

func TestParse_ValidationError(t *testing.T) {
	_, err := Parse([]byte("bot:\n  idle_session_ttl: 5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestParse_RegionFromEnvironment(t *testing.T) {
	t.Setenv("AWS_REGION", "ap-southeast-2")

	cfg, err := Parse([]byte("bot:\n  name: EnvBot\n"))
	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-2", cfg.Region)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(orderBotYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "OrderBot", cfg.Bot.Name)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_MissingDefaultFileUsesEchoBot(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvConfigPath, "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBotName, cfg.Bot.Name)
	assert.Equal(t, DefaultRegion, cfg.Region)
}

func TestLoad_EnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte(orderBotYAML), 0o600))
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "OrderBot", cfg.Bot.Name)
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, "x.yaml", ResolvePath("x.yaml"))
	assert.Equal(t, DefaultConfigFile, ResolvePath(""))

	t.Setenv(EnvConfigPath, "/etc/lexdeploy.yaml")
	assert.Equal(t, "/etc/lexdeploy.yaml", ResolvePath(""))
}
