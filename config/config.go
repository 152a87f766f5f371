// Package config provides configuration management for the payment gateway integration.
// Configuration can be loaded from YAML files and overridden by environment variables.
package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeLive = "live"
	ModeTest = "test"

	SealSha256     = "SHA256"
	SealHmacSha256 = "HMAC_SHA256"
)

// Merchant describes the account at the gateway and how requests are sealed.
// Mode selects the sandbox (test) or production (live) configuration.
type Merchant struct {
	Mode                 string        `yaml:"mode" env:"MERCHANT_MODE" env-default:"test"`
	Id                   string        `yaml:"id" env:"MERCHANT_ID" env-default:""`
	Secret               string        `yaml:"secret" env:"MERCHANT_SECRET" env-default:""`
	KeyVersion           string        `yaml:"key_version" env:"MERCHANT_KEY_VERSION" env-default:"1"`
	InterfaceVersion     string        `yaml:"interface_version" env:"MERCHANT_INTERFACE_VERSION" env-default:"HP_1.0"`
	SealVersion          string        `yaml:"seal_version" env:"MERCHANT_SEAL_VERSION" env-default:"SHA256"`
	LiveUrl              string        `yaml:"live_url" env:"MERCHANT_LIVE_URL" env-default:"https://payment-webinit.omnikassa.rabobank.nl/paymentServlet"`
	TestUrl              string        `yaml:"test_url" env:"MERCHANT_TEST_URL" env-default:"https://payment-webinit.simu.omnikassa.rabobank.nl/paymentServlet"`
	NormalReturnUrl      string        `yaml:"normal_return_url" env:"MERCHANT_NORMAL_RETURN_URL" env-default:""`
	AutomaticResponseUrl string        `yaml:"automatic_response_url" env:"MERCHANT_AUTOMATIC_RESPONSE_URL" env-default:""`
	Language             string        `yaml:"language" env:"MERCHANT_LANGUAGE" env-default:""`
	Brands               []string      `yaml:"brands" env:"MERCHANT_BRANDS" env-separator:","`
	Expiration           time.Duration `yaml:"expiration" env:"MERCHANT_EXPIRATION" env-default:"0s"`
}

// IsTest reports whether the sandbox configuration is active.
// Anything other than "live" is treated as test mode.
func (m *Merchant) IsTest() bool {
	return m.Mode != ModeLive
}

// ActionUrl returns the payment initiation endpoint for the active mode.
func (m *Merchant) ActionUrl() string {
	if m.IsTest() {
		return m.TestUrl
	}
	return m.LiveUrl
}

// Config holds all configuration of the service.
// Values can be set via YAML configuration file or environment variables.
// Environment variables take precedence over YAML values.
type Config struct {
	IsDebug bool `yaml:"is_debug" env:"DEBUG" env-default:"false"`
	Listen  struct {
		BindIP   string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"PORT" env-default:"5100"`
		TLS      bool   `yaml:"tls_enabled" env:"TLS_ENABLED" env-default:"false"`
		CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:""`
		KeyFile  string `yaml:"key_file" env:"TLS_KEY_FILE" env-default:""`
	} `yaml:"listen"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:""`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"payments"`
	} `yaml:"mongo"`
	Log struct {
		File       string `yaml:"file" env:"LOG_FILE" env-default:""`
		MaxSizeMb  int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB" env-default:"50"`
		MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS" env-default:"5"`
		MaxAgeDays int    `yaml:"max_age_days" env:"LOG_MAX_AGE_DAYS" env-default:"30"`
	} `yaml:"log"`
	Merchant Merchant `yaml:"merchant"`
}

var instance *Config
var once sync.Once

// GetConfig loads configuration from the specified YAML file path.
// This function uses a singleton pattern and only loads the config once.
//
// Example:
//
//	cfg, err := config.GetConfig("config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance, err = ReadConfig(path)
	})
	return instance, err
}

// ReadConfig loads and validates a configuration file without caching it.
func ReadConfig(path string) (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("load config: %w; %s", err, desc)
	}
	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return conf, nil
}

func (c *Config) validate() error {
	m := &c.Merchant
	if m.Mode != ModeLive && m.Mode != ModeTest {
		return fmt.Errorf("merchant mode must be %q or %q, got %q", ModeLive, ModeTest, m.Mode)
	}
	if m.SealVersion != SealSha256 && m.SealVersion != SealHmacSha256 {
		return fmt.Errorf("unknown seal version %q", m.SealVersion)
	}
	if len(m.KeyVersion) > 10 {
		return fmt.Errorf("merchant key version has a maximum of 10 characters")
	}
	if m.IsTest() {
		return nil
	}
	if m.Id == "" || m.Secret == "" {
		return fmt.Errorf("merchant id and secret are required in live mode")
	}
	return nil
}
