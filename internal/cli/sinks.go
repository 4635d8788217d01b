package cli

import (
	stderrors "errors"
	"time"

	"github.com/campuswellness/weekplan/internal/config"
	"github.com/campuswellness/weekplan/internal/keyring"
	"github.com/campuswellness/weekplan/internal/logger"
	"github.com/campuswellness/weekplan/internal/metrics"
	"github.com/campuswellness/weekplan/internal/notifier"
)

// BuildSinks connects every configured sink. A sink that cannot be set up
// is logged and left out rather than failing startup.
func BuildSinks(cfg *config.Config, m *metrics.Metrics) *notifier.Multi {
	log := logger.Component("sinks")
	multi := &notifier.Multi{
		OnError: func(sink string, err error) {
			m.DeliveryError(sink)
			log.Warn("reminder delivery failed", "sink", sink, "err", err)
		},
	}

	if cfg.Sinks.Log {
		multi.Sinks = append(multi.Sinks, notifier.NewLogSink())
	}
	if cfg.Sinks.Tray.Enabled {
		multi.Sinks = append(multi.Sinks, notifier.NewTray())
	}
	if cfg.Sinks.MQTT.Enabled() {
		password, err := keyring.Get(keyring.AccountMQTT)
		if err != nil && !stderrors.Is(err, keyring.ErrNotFound) {
			log.Warn("could not read MQTT password from keyring", "err", err)
		}
		sink, err := notifier.DialMQTT(notifier.MQTTOptions{
			Broker:   cfg.Sinks.MQTT.Broker,
			Topic:    cfg.Sinks.MQTT.Topic,
			ClientID: cfg.Sinks.MQTT.ClientID,
			Username: cfg.Sinks.MQTT.Username,
			Password: password,
			Timeout:  time.Duration(cfg.Sinks.TimeoutSec) * time.Second,
		})
		if err != nil {
			log.Error("mqtt sink disabled", "broker", cfg.Sinks.MQTT.Broker, "err", err)
		} else {
			multi.Sinks = append(multi.Sinks, sink)
		}
	}
	if cfg.Sinks.Kafka.Enabled() {
		sink, err := notifier.NewKafka(cfg.Sinks.Kafka.Brokers, cfg.Sinks.Kafka.Topic)
		if err != nil {
			log.Error("kafka sink disabled", "err", err)
		} else {
			multi.Sinks = append(multi.Sinks, sink)
		}
	}
	return multi
}
