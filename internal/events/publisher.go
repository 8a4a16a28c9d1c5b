// Package events publishes run-outcome events to NATS so downstream tooling
// (dashboards, audit collectors) can observe publish decisions without
// scraping CI logs.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/ossgate/internal/config"
)

// RunEvent is the payload published for each completed run.
type RunEvent struct {
	RunID     string    `json:"run_id"`
	JobName   string    `json:"job_name"`
	Product   string    `json:"product"`
	Kind      string    `json:"kind"`
	Outcome   string    `json:"outcome"`
	Rejected  bool      `json:"rejected"`
	Forced    bool      `json:"forced"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher sends run events to a NATS subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to NATS using the events configuration.
func NewPublisher(cfg config.EventsConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("events are disabled")
	}
	conn, err := nats.Connect(cfg.NATSURL, nats.Name("ossgate"))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	slog.Info("NATS publisher initialized",
		"url", cfg.NATSURL,
		"subject", cfg.Subject)
	return &Publisher{conn: conn, subject: cfg.Subject}, nil
}

// Publish sends one run event. Failures are returned for logging but never
// affect the run outcome.
func (p *Publisher) Publish(ev RunEvent) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal run event: %w", err)
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish run event: %w", err)
	}
	return nil
}

// Close flushes and closes the NATS connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	_ = p.conn.Flush()
	p.conn.Close()
}
