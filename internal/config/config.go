package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/campuswellness/weekplan/internal/constants"
)

// Config is the daemon configuration read by `weekplan serve`.
type Config struct {
	// Listen is the HTTP listen address for the API.
	Listen string `yaml:"listen" json:"listen"`

	// ReminderSchedule is a robfig/cron spec ("@hourly", "*/15 * * * *").
	ReminderSchedule string `yaml:"reminder_schedule" json:"reminder_schedule"`

	// Users limits the reminder job to these usernames. Empty means every profile.
	Users []string `yaml:"users" json:"users"`

	Sinks SinksConfig `yaml:"sinks" json:"sinks"`

	// Grid, if set, overrides the day bounds stored in settings.
	Grid *GridConfig `yaml:"grid,omitempty" json:"grid,omitempty"`
}

type SinksConfig struct {
	// Log writes reminders to the structured log. On by default.
	Log   bool        `yaml:"log" json:"log"`
	Tray  TrayConfig  `yaml:"tray" json:"tray"`
	MQTT  MQTTConfig  `yaml:"mqtt" json:"mqtt"`
	Kafka KafkaConfig `yaml:"kafka" json:"kafka"`
	// TimeoutSec bounds one delivery attempt per sink.
	TimeoutSec int `yaml:"timeout_sec" json:"timeout_sec"`
}

// TrayConfig enables delivery to a running tray app through its lockfile webhook.
type TrayConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// MQTTConfig describes an MQTT broker. The password is read from the OS
// keyring, never from this file.
type MQTTConfig struct {
	Broker   string `yaml:"broker" json:"broker"`
	Topic    string `yaml:"topic" json:"topic"`
	ClientID string `yaml:"client_id" json:"client_id"`
	Username string `yaml:"username,omitempty" json:"username,omitempty"`
}

func (m MQTTConfig) Enabled() bool { return m.Broker != "" }

type KafkaConfig struct {
	Brokers []string `yaml:"brokers" json:"brokers"`
	Topic   string   `yaml:"topic" json:"topic"`
}

func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

type GridConfig struct {
	DayStart    string `yaml:"day_start" json:"day_start"`
	DayEnd      string `yaml:"day_end" json:"day_end"`
	IntervalMin int    `yaml:"interval_min" json:"interval_min"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:           constants.DefaultListenAddr,
		ReminderSchedule: constants.DefaultReminderSpec,
		Users:            []string{},
		Sinks: SinksConfig{
			Log: true,
			MQTT: MQTTConfig{
				Topic:    constants.DefaultMQTTTopic,
				ClientID: constants.DefaultMQTTClientID,
			},
			Kafka: KafkaConfig{
				Brokers: []string{},
				Topic:   constants.DefaultKafkaTopic,
			},
			TimeoutSec: constants.DefaultSinkTimeoutSec,
		},
	}
}

// Normalize fills in zero values so partially written files still work.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = constants.DefaultListenAddr
	}
	if c.ReminderSchedule == "" {
		c.ReminderSchedule = constants.DefaultReminderSpec
	}
	if c.Users == nil {
		c.Users = []string{}
	}
	if c.Sinks.MQTT.Topic == "" {
		c.Sinks.MQTT.Topic = constants.DefaultMQTTTopic
	}
	if c.Sinks.MQTT.ClientID == "" {
		c.Sinks.MQTT.ClientID = constants.DefaultMQTTClientID
	}
	if c.Sinks.Kafka.Brokers == nil {
		c.Sinks.Kafka.Brokers = []string{}
	}
	if c.Sinks.Kafka.Topic == "" {
		c.Sinks.Kafka.Topic = constants.DefaultKafkaTopic
	}
	if c.Sinks.TimeoutSec <= 0 {
		c.Sinks.TimeoutSec = constants.DefaultSinkTimeoutSec
	}
}

// Load reads the YAML file at path. On first run the file is created with
// defaults (0600) and the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return cfg, nil
}

// Save writes cfg atomically through a temp file in the same directory.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".weekplan-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

func (c *Config) Save(path string) error {
	return Save(path, c)
}
