package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/routemap/internal/core/domain"
	"github.com/samirrijal/routemap/internal/core/ports"
)

// Subscriber implements ports.EventSubscriber using core NATS.
type Subscriber struct {
	conn *nats.Conn
	subs []*nats.Subscription
}

// NewSubscriber connects to NATS.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Subscriber{conn: conn}, nil
}

// SubscribeViewports delivers every viewport change from every session.
func (s *Subscriber) SubscribeViewports(ctx context.Context, handler func(ctx context.Context, sessionID string, state domain.ViewportState) error) error {
	sub, err := s.conn.Subscribe(SubjectPrefix+">", func(msg *nats.Msg) {
		m, err := DecodeViewport(msg.Data)
		if err != nil {
			slog.Warn("drop malformed viewport message", "subject", msg.Subject, "error", err)
			return
		}
		if err := handler(ctx, m.SessionID, m.Viewport); err != nil {
			slog.Warn("viewport handler failed", "session_id", m.SessionID, "error", err)
		}
	})
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// DecodeViewport parses a viewport message payload.
func DecodeViewport(data []byte) (*ViewportMessage, error) {
	var m ViewportMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode viewport: %w", err)
	}
	if m.SessionID == "" {
		return nil, fmt.Errorf("decode viewport: missing session_id")
	}
	return &m, nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}

var _ ports.EventSubscriber = (*Subscriber)(nil)
