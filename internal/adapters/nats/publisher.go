package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/routemap/internal/core/domain"
	"github.com/samirrijal/routemap/internal/core/ports"
)

// SubjectPrefix is prepended to the session ID for viewport messages.
const SubjectPrefix = "routemap.viewport."

// ViewportMessage is the payload published on every viewport change.
type ViewportMessage struct {
	SessionID string               `json:"session_id"`
	Viewport  domain.ViewportState `json:"viewport"`
	Time      time.Time            `json:"time"`
}

// Publisher implements ports.EventPublisher using core NATS.
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher connects to NATS.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

// PublishViewport publishes state on routemap.viewport.<sessionID>.
func (p *Publisher) PublishViewport(ctx context.Context, sessionID string, state domain.ViewportState) error {
	data, err := json.Marshal(ViewportMessage{SessionID: sessionID, Viewport: state, Time: time.Now().UTC()})
	if err != nil {
		return err
	}
	return p.conn.Publish(SubjectPrefix+sessionID, data)
}

// Conn exposes the underlying connection for health checks.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection.
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}

var _ ports.EventPublisher = (*Publisher)(nil)
