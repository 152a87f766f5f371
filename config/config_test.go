package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadConfig_Defaults(t *testing.T) {
	conf, err := ReadConfig(writeConfig(t, "is_debug: true\n"))
	require.NoError(t, err)

	assert.True(t, conf.IsDebug)
	assert.Equal(t, "5100", conf.Listen.Port)
	assert.False(t, conf.Mongo.Enabled)
	assert.Equal(t, ModeTest, conf.Merchant.Mode)
	assert.True(t, conf.Merchant.IsTest())
	assert.Equal(t, "HP_1.0", conf.Merchant.InterfaceVersion)
	assert.Equal(t, SealSha256, conf.Merchant.SealVersion)
	assert.Equal(t, conf.Merchant.TestUrl, conf.Merchant.ActionUrl())
}

func TestReadConfig_Live(t *testing.T) {
	conf, err := ReadConfig(writeConfig(t, `
merchant:
  mode: live
  id: "123456789012345"
  secret: secret
  key_version: "2"
  normal_return_url: https://shop.example.com/return
  automatic_response_url: https://shop.example.com/notify
  language: nl
  brands: [IDEAL, VISA]
  expiration: 2h
mongo:
  enabled: true
  database: shop
`))
	require.NoError(t, err)

	merchant := conf.Merchant
	assert.False(t, merchant.IsTest())
	assert.Equal(t, merchant.LiveUrl, merchant.ActionUrl())
	assert.Equal(t, "123456789012345", merchant.Id)
	assert.Equal(t, "2", merchant.KeyVersion)
	assert.Equal(t, []string{"IDEAL", "VISA"}, merchant.Brands)
	assert.Equal(t, 2*time.Hour, merchant.Expiration)
	assert.True(t, conf.Mongo.Enabled)
	assert.Equal(t, "shop", conf.Mongo.Database)
}

func TestReadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown mode":     "merchant:\n  mode: production\n",
		"seal version":     "merchant:\n  seal_version: MD5\n",
		"long key version": "merchant:\n  key_version: \"12345678901\"\n",
		"live no secret":   "merchant:\n  mode: live\n  id: \"123456789012345\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}

	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
