package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindConfig_Explicit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	os.WriteFile(path, []byte("app_key: k\n"), 0600)

	got, err := FindConfig(path)
	if err != nil {
		t.Fatalf("FindConfig(%q) error: %v", path, err)
	}
	if got != path {
		t.Errorf("FindConfig(%q) = %q, want %q", path, got, path)
	}
}

func TestFindConfig_ExplicitMissing(t *testing.T) {
	_, err := FindConfig("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("FindConfig with missing explicit path should error")
	}
}

func TestFindConfig_CWD(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("app_key: k\n"), 0600)

	orig, _ := os.Getwd()
	os.Chdir(dir)
	defer os.Chdir(orig)

	got, err := FindConfig("")
	if err != nil {
		t.Fatalf("FindConfig(\"\") error: %v", err)
	}
	if got != "config.yaml" {
		t.Errorf("FindConfig(\"\") = %q, want %q", got, "config.yaml")
	}
}

func validYAML() string {
	return "app_key: the-key\n" +
		"app_secret: ${PICO_SDK_TEST_SECRET}\n" +
		"devices:\n" +
		"  - id: \"111111111111111111111111\"\n" +
		"    kind: switch\n" +
		"    name: lamp\n"
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte(validYAML()), 0600)
	os.Setenv("PICO_SDK_TEST_SECRET", "secret123")
	defer os.Unsetenv("PICO_SDK_TEST_SECRET")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.AppSecret != "secret123" {
		t.Errorf("app_secret = %q, want %q", cfg.AppSecret, "secret123")
	}
}

func TestLoad_AppliesServerDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte(validYAML()), 0600)
	os.Setenv("PICO_SDK_TEST_SECRET", "secret123")
	defer os.Unsetenv("PICO_SDK_TEST_SECRET")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.URL != "ws.sinric.pro" {
		t.Errorf("server.url = %q, want default", cfg.Server.URL)
	}
	if cfg.Server.Port != 80 {
		t.Errorf("server.port = %d, want 80 (use_ssl defaults false)", cfg.Server.Port)
	}
	if cfg.Server.PingInterval.Seconds() != 300 {
		t.Errorf("server.ping_interval = %v, want 300s", cfg.Server.PingInterval)
	}
}

func TestValidate_MissingAppKey(t *testing.T) {
	cfg := &Config{AppSecret: "s", Devices: []DeviceConfig{{ID: "111111111111111111111111"}}}
	cfg.applyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing app_key")
	}
}

func TestValidate_NoDevices(t *testing.T) {
	cfg := &Config{AppKey: "k", AppSecret: "s"}
	cfg.applyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero devices")
	}
}

func TestValidate_TooManyDevices(t *testing.T) {
	cfg := &Config{AppKey: "k", AppSecret: "s"}
	for i := 0; i < 9; i++ {
		cfg.Devices = append(cfg.Devices, DeviceConfig{ID: "111111111111111111111111"})
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for more than 8 devices")
	}
}

func TestValidate_MQTTEnabledRequiresBrokerURL(t *testing.T) {
	cfg := &Config{
		AppKey:    "k",
		AppSecret: "s",
		Devices:   []DeviceConfig{{ID: "111111111111111111111111"}},
		MQTT:      MQTTConfig{Enabled: true},
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for mqtt.enabled without broker_url")
	}
}

func TestConfigured(t *testing.T) {
	if (Config{AppKey: "k"}).Configured() {
		t.Fatal("Configured() should be false without a secret")
	}
	if !(Config{AppKey: "k", AppSecret: "s"}).Configured() {
		t.Fatal("Configured() should be true with both fields set")
	}
}

func TestDeviceIDs(t *testing.T) {
	cfg := Config{Devices: []DeviceConfig{{ID: "a"}, {ID: "b"}}}
	ids := cfg.DeviceIDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("DeviceIDs() = %v, want [a b]", ids)
	}
}
