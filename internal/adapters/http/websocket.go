package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/routemap/internal/adapters/mapbox"
	"github.com/samirrijal/routemap/internal/core/domain"
	"github.com/samirrijal/routemap/internal/core/usecases"
	"github.com/samirrijal/routemap/internal/pkg/metrics"
	"github.com/samirrijal/routemap/internal/pkg/telemetry"
)

// MapSessionHandler returns a handler that runs one map session per
// WebSocket connection. The server owns the map host: widget calls go out
// as command frames and the page reports "load" and "move" events back.
// Events are handled in arrival order on the read loop.
func MapSessionHandler(deps *Dependencies) func(*websocket.Conn) {
	tracer := telemetry.Tracer("routemap/http")

	return func(c *websocket.Conn) {
		defer c.Close()

		sessionID := uuid.NewString()
		log := slog.Default().With("session_id", sessionID, "remote_addr", c.RemoteAddr().String())

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// The ping goroutine shares the connection with the read loop.
		var mu sync.Mutex
		send := func(cmd mapbox.Command) error {
			data, err := json.Marshal(cmd)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		widget := mapbox.NewWidget(deps.AccessToken, send)
		widget.OnMarker = func(m domain.MarkerAnnotation) {
			metrics.MarkersRegistered.WithLabelValues(string(m.Color)).Inc()
		}
		readout := usecases.NewViewportReadout(widget, deps.Publisher, sessionID)
		host := usecases.NewMapHost(widget, usecases.NewRouteLayer(), readout)

		initCtx, span := tracer.Start(ctx, telemetry.SpanSessionInit)
		_, err := host.Initialize(initCtx, deps.MapOptions)
		span.End()
		if err != nil {
			log.Error("map session init failed", "error", err)
			return
		}
		metrics.MapSessions.Inc()
		log.Info("map session started")

		// Keep-alive ping
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var ev mapbox.Event
			if err := json.Unmarshal(msg, &ev); err != nil {
				metrics.MapEvents.WithLabelValues("invalid", "error").Inc()
				_ = send(mapbox.ErrorCommand("invalid JSON"))
				continue
			}

			label := ev.Event
			start := time.Now()
			evCtx, span := tracer.Start(ctx, telemetry.SpanSessionEvent,
				trace.WithAttributes(attribute.String("map.event", ev.Event)))

			err = widget.Emit(evCtx, ev)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()

			if errors.Is(err, mapbox.ErrUnknownEvent) {
				label = "unknown"
			}
			metrics.EventDispatchDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

			if err != nil {
				metrics.MapEvents.WithLabelValues(label, "error").Inc()
				log.Warn("map event failed", "event", ev.Event, "error", err)
				_ = send(mapbox.ErrorCommand(err.Error()))
				continue
			}
			metrics.MapEvents.WithLabelValues(label, "ok").Inc()
			log.Debug("map event", "event", ev.Event, "viewport", readout.State().Text())
		}

		close(done)
		log.Info("map session ended")
	}
}
