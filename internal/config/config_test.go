package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/campuswellness/weekplan/internal/constants"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", constants.DefaultConfigFile)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Listen != constants.DefaultListenAddr {
		t.Errorf("Listen = %q, want %q", cfg.Listen, constants.DefaultListenAddr)
	}
	if cfg.ReminderSchedule != "@hourly" {
		t.Errorf("ReminderSchedule = %q, want @hourly", cfg.ReminderSchedule)
	}
	if !cfg.Sinks.Log {
		t.Error("Sinks.Log = false, want true")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0o600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), constants.DefaultConfigFile)
	data := []byte(`
listen: 0.0.0.0:9000
users: [alice, bob]
sinks:
  log: false
  mqtt:
    broker: tcp://localhost:1883
  kafka:
    brokers: [localhost:9092]
grid:
  day_start: "08:00"
  day_end: "20:00"
  interval_min: 30
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Listen != "0.0.0.0:9000" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if len(cfg.Users) != 2 || cfg.Users[1] != "bob" {
		t.Errorf("Users = %v", cfg.Users)
	}
	if cfg.Sinks.Log {
		t.Error("Sinks.Log = true, want false from file")
	}
	if !cfg.Sinks.MQTT.Enabled() || cfg.Sinks.MQTT.Topic != constants.DefaultMQTTTopic {
		t.Errorf("MQTT = %+v, want broker set and default topic", cfg.Sinks.MQTT)
	}
	if !cfg.Sinks.Kafka.Enabled() || cfg.Sinks.Kafka.Topic != constants.DefaultKafkaTopic {
		t.Errorf("Kafka = %+v", cfg.Sinks.Kafka)
	}
	if cfg.ReminderSchedule != constants.DefaultReminderSpec {
		t.Errorf("ReminderSchedule = %q, want default", cfg.ReminderSchedule)
	}
	if cfg.Grid == nil || cfg.Grid.IntervalMin != 30 {
		t.Errorf("Grid = %+v", cfg.Grid)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), constants.DefaultConfigFile)

	cfg := DefaultConfig()
	cfg.ReminderSchedule = "*/15 * * * *"
	cfg.Sinks.Tray.Enabled = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.ReminderSchedule != "*/15 * * * *" || !loaded.Sinks.Tray.Enabled {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestSaveRejectsEmpty(t *testing.T) {
	if err := Save("", DefaultConfig()); err == nil {
		t.Error("Save(\"\") should fail")
	}
	if err := Save(filepath.Join(t.TempDir(), "x.yaml"), nil); err == nil {
		t.Error("Save(nil) should fail")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), constants.DefaultConfigFile)
	if err := os.WriteFile(path, []byte("listen: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() with invalid YAML should fail")
	}
}
