package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/campuswellness/weekplan/internal/models"
)

// publisher is the part of mqtt.Client the sink uses.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTOptions configures the broker connection.
type MQTTOptions struct {
	Broker   string
	Topic    string
	ClientID string
	Username string
	Password string
	Timeout  time.Duration
}

// MQTT publishes each reminder as JSON to "<topic>/<username>".
type MQTT struct {
	client  publisher
	closer  func()
	topic   string
	timeout time.Duration
}

// DialMQTT connects to the broker and returns a ready sink.
func DialMQTT(opts MQTTOptions) (*MQTT, error) {
	if opts.Broker == "" {
		return nil, errors.New("mqtt broker is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	clientOpts := mqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(opts.Timeout)
	if opts.Username != "" {
		clientOpts.SetUsername(opts.Username)
		clientOpts.SetPassword(opts.Password)
	}

	client := mqtt.NewClient(clientOpts)
	token := client.Connect()
	if !token.WaitTimeout(opts.Timeout) {
		return nil, fmt.Errorf("mqtt connect to %s timed out", opts.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", opts.Broker, err)
	}

	return &MQTT{
		client:  client,
		closer:  func() { client.Disconnect(250) },
		topic:   opts.Topic,
		timeout: opts.Timeout,
	}, nil
}

func newMQTTWithClient(client publisher, topic string, timeout time.Duration) *MQTT {
	return &MQTT{client: client, topic: topic, timeout: timeout}
}

func (m *MQTT) Name() string { return "mqtt" }

func (m *MQTT) Deliver(ctx context.Context, r models.Reminder) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}

	token := m.client.Publish(m.topic+"/"+r.Username, 1, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.timeout):
		return fmt.Errorf("mqtt publish to %s timed out", m.topic)
	}
	return token.Error()
}

func (m *MQTT) Close() error {
	if m.closer != nil {
		m.closer()
	}
	return nil
}
