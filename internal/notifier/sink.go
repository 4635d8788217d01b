package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/campuswellness/weekplan/internal/logger"
	"github.com/campuswellness/weekplan/internal/models"
)

// Sink delivers a reminder somewhere outside the process.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, r models.Reminder) error
}

// Multi fans a reminder out to every sink. A failing sink does not stop
// delivery to the others.
type Multi struct {
	Sinks []Sink
	// OnError, if set, is called once per failed sink.
	OnError func(sink string, err error)
}

func (m *Multi) Name() string { return "multi" }

func (m *Multi) Deliver(ctx context.Context, r models.Reminder) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.Deliver(ctx, r); err != nil {
			if m.OnError != nil {
				m.OnError(s.Name(), err)
			}
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink that holds a connection.
func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// LogSink writes reminders to the structured log.
type LogSink struct {
	log *log.Logger
}

func NewLogSink() *LogSink {
	return &LogSink{log: logger.Component("reminders")}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Deliver(_ context.Context, r models.Reminder) error {
	s.log.Info(r.Message, "user", r.Username, "kind", r.Kind, "at", r.At)
	return nil
}
