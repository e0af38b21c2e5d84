// Package config handles SDK configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSearchPaths returns the config file search order:
// ./config.yaml, ~/.config/pico-sdk/config.yaml, /config/config.yaml,
// /etc/pico-sdk/config.yaml. FindConfig checks an explicit path (from a
// -config flag) instead of these when one is given.
func DefaultSearchPaths() []string {
	paths := []string{"config.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "pico-sdk", "config.yaml"))
	}

	paths = append(paths, "/config/config.yaml") // Container convention
	paths = append(paths, "/etc/pico-sdk/config.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must exist.
// Otherwise, searches DefaultSearchPaths and returns the first that exists.
// Returns the path found, or an error if nothing was found.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", DefaultSearchPaths())
}

// Config holds the settings needed to bring up a Client: the relay
// connection, the devices it will register, and the optional local MQTT
// bridge.
type Config struct {
	AppKey    string `yaml:"app_key"`
	AppSecret string `yaml:"app_secret"`

	Server  ServerConfig   `yaml:"server"`
	Devices []DeviceConfig `yaml:"devices"`
	MQTT    MQTTConfig     `yaml:"mqtt"`

	Platform   string `yaml:"platform"`
	SDKVersion string `yaml:"sdk_version"`

	LogLevel string `yaml:"log_level"`
}

// ServerConfig defines the relay connection.
type ServerConfig struct {
	URL                 string        `yaml:"url"`  // default "ws.sinric.pro"
	Port                int           `yaml:"port"` // default 443 with TLS, 80 without
	UseSSL              bool          `yaml:"use_ssl"`
	RestoreDeviceStates bool          `yaml:"restore_device_states"`
	ConnectTimeout      time.Duration `yaml:"connect_timeout"`
	PingInterval        time.Duration `yaml:"ping_interval"`
	PingTimeout         time.Duration `yaml:"ping_timeout"`
	ReconnectDelay      time.Duration `yaml:"reconnect_delay"`
}

// DeviceConfig names one device this client registers at startup. Kind
// selects which capability set device.New* wires up; device-specific
// knobs beyond that belong to application code, not this file.
type DeviceConfig struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`
	Name string `yaml:"name"`
}

// MQTTConfig defines the optional local bridge that mirrors device state
// to a Home-Assistant-style MQTT broker. Entirely additive: it never
// talks to the relay.
type MQTTConfig struct {
	Enabled      bool   `yaml:"enabled"`
	BrokerURL    string `yaml:"broker_url"` // e.g. "mqtt://localhost:1883"
	ClientID     string `yaml:"client_id"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	TopicPrefix  string `yaml:"topic_prefix"`  // default "pico-sdk"
	DiscoveryTag string `yaml:"discovery_tag"` // default "homeassistant"
}

// Configured reports whether both halves of the relay credential pair
// are present. A partial configuration (key without secret or vice
// versa) is treated as unconfigured.
func (c Config) Configured() bool {
	return c.AppKey != "" && c.AppSecret != ""
}

// Load reads configuration from a YAML file, expands environment
// variables, applies defaults for any unset fields, and validates
// the result. After Load returns successfully, all fields are usable
// without additional nil/empty checks.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${SINRICPRO_APP_SECRET}). This
	// is a convenience for container deployments; putting values directly
	// in the file also works.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills in zero-value fields with sensible defaults.
// Called automatically by Load. After this, callers can read any field
// without checking for empty strings or zero values.
func (c *Config) applyDefaults() {
	if c.Server.URL == "" {
		c.Server.URL = "ws.sinric.pro"
	}
	if c.Server.Port == 0 {
		if c.Server.UseSSL {
			c.Server.Port = 443
		} else {
			c.Server.Port = 80
		}
	}
	if c.Server.ConnectTimeout == 0 {
		c.Server.ConnectTimeout = 30 * time.Second
	}
	if c.Server.PingInterval == 0 {
		c.Server.PingInterval = 300 * time.Second
	}
	if c.Server.PingTimeout == 0 {
		c.Server.PingTimeout = 10 * time.Second
	}
	if c.Server.ReconnectDelay == 0 {
		c.Server.ReconnectDelay = 5 * time.Second
	}
	if c.Platform == "" {
		c.Platform = "generic"
	}
	if c.SDKVersion == "" {
		c.SDKVersion = "2.0.0"
	}
	if c.MQTT.TopicPrefix == "" {
		c.MQTT.TopicPrefix = "pico-sdk"
	}
	if c.MQTT.DiscoveryTag == "" {
		c.MQTT.DiscoveryTag = "homeassistant"
	}
}

// Validate checks that the configuration is internally consistent.
// It runs after applyDefaults, so it can assume defaults are populated.
// Returns an error describing the first problem found, or nil.
func (c *Config) Validate() error {
	if c.AppKey == "" {
		return fmt.Errorf("app_key is required")
	}
	if c.AppSecret == "" {
		return fmt.Errorf("app_secret is required")
	}
	if len(c.Devices) == 0 {
		return fmt.Errorf("at least one device is required")
	}
	if len(c.Devices) > 8 {
		return fmt.Errorf("too many devices (%d), max is 8", len(c.Devices))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range (1-65535)", c.Server.Port)
	}
	if c.MQTT.Enabled && c.MQTT.BrokerURL == "" {
		return fmt.Errorf("mqtt.broker_url is required when mqtt.enabled is true")
	}
	if c.LogLevel != "" {
		if _, err := ParseLogLevel(c.LogLevel); err != nil {
			return err
		}
	}
	return nil
}

// DeviceIDs returns the configured device IDs in order, used to build the
// transport layer's deviceids handshake header.
func (c *Config) DeviceIDs() []string {
	ids := make([]string, len(c.Devices))
	for i, d := range c.Devices {
		ids[i] = d.ID
	}
	return ids
}
