// Package mapbox drives a Mapbox GL JS map running in the browser. Every
// widget call is encoded as a Command frame; events reported by the page
// come back through Emit.
package mapbox

import (
	"context"
	"errors"
	"fmt"

	"github.com/samirrijal/routemap/internal/core/domain"
	"github.com/samirrijal/routemap/internal/core/ports"
)

// ErrUnknownEvent is returned by Emit for events the widget does not emit.
var ErrUnknownEvent = errors.New("unknown map event")

// ErrNotCreated is returned for calls made before Create.
var ErrNotCreated = errors.New("map widget not created")

// Sender writes one frame to the page.
type Sender func(cmd Command) error

// Widget implements ports.MapWidget and ports.ReadoutDisplay over a Sender.
// It is not safe for concurrent use; a session drives it from one goroutine.
type Widget struct {
	send        Sender
	accessToken string
	created     bool
	center      domain.GeoPoint
	zoom        float64
	handlers    map[domain.MapEventType][]ports.EventHandler

	// OnMarker, when set, is called after each marker frame is sent.
	OnMarker func(domain.MarkerAnnotation)
}

// NewWidget creates a Widget. accessToken is passed through unvalidated.
func NewWidget(accessToken string, send Sender) *Widget {
	return &Widget{
		send:        send,
		accessToken: accessToken,
		handlers:    make(map[domain.MapEventType][]ports.EventHandler),
	}
}

func (w *Widget) Create(ctx context.Context, opts domain.MapOptions) error {
	if err := w.send(Command{Op: OpCreate, AccessToken: w.accessToken, Options: &opts}); err != nil {
		return err
	}
	w.created = true
	w.center, w.zoom = opts.Center, opts.Zoom
	return nil
}

func (w *Widget) AddNavigationControl(ctx context.Context, position string) error {
	if !w.created {
		return ErrNotCreated
	}
	return w.send(Command{Op: OpAddControl, Position: position})
}

func (w *Widget) AddGeoJSONSource(ctx context.Context, id string, feature domain.RouteFeature) error {
	if !w.created {
		return ErrNotCreated
	}
	return w.send(Command{Op: OpAddSource, ID: id, Data: &feature})
}

func (w *Widget) AddLineLayer(ctx context.Context, id, source string, style domain.LineStyle) error {
	if !w.created {
		return ErrNotCreated
	}
	return w.send(Command{
		Op:     OpAddLayer,
		ID:     id,
		Source: source,
		Layout: map[string]string{
			"line-join": style.Join,
			"line-cap":  style.Cap,
		},
		Paint: map[string]any{
			"line-color": style.Color,
			"line-width": style.Width,
		},
	})
}

func (w *Widget) AddMarker(ctx context.Context, m domain.MarkerAnnotation, popupOffset int) error {
	if !w.created {
		return ErrNotCreated
	}
	if !m.Color.Valid() {
		return fmt.Errorf("marker color %q not supported", m.Color)
	}
	err := w.send(Command{Op: OpAddMarker, Marker: &MarkerFrame{
		Lng:    m.Position.Lng,
		Lat:    m.Position.Lat,
		Color:  string(m.Color),
		Popup:  m.PopupText,
		Offset: popupOffset,
	}})
	if err != nil {
		return err
	}
	if w.OnMarker != nil {
		w.OnMarker(m)
	}
	return nil
}

func (w *Widget) On(event domain.MapEventType, handler ports.EventHandler) {
	w.handlers[event] = append(w.handlers[event], handler)
}

// Center returns the camera center last reported by the page.
func (w *Widget) Center() domain.GeoPoint { return w.center }

// Zoom returns the zoom last reported by the page.
func (w *Widget) Zoom() float64 { return w.zoom }

// ShowReadout renders the viewport text in the page overlay.
func (w *Widget) ShowReadout(ctx context.Context, state domain.ViewportState) error {
	return w.send(Command{Op: OpReadout, Viewport: &state, Text: state.Text()})
}

// Emit applies an event reported by the page. For "move" the camera is
// updated before the handlers run so they read the new center and zoom.
// Rejected events leave the camera untouched.
func (w *Widget) Emit(ctx context.Context, ev Event) error {
	typ := domain.MapEventType(ev.Event)
	if typ != domain.EventLoad && typ != domain.EventMove {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Event)
	}
	if !w.created {
		return ErrNotCreated
	}

	if typ == domain.EventMove {
		if ev.Center != nil {
			w.center = *ev.Center
		}
		if ev.Zoom != nil {
			w.zoom = *ev.Zoom
		}
	}

	for _, h := range w.handlers[typ] {
		if err := h(ctx); err != nil {
			return fmt.Errorf("%s handler: %w", typ, err)
		}
	}
	return nil
}

var (
	_ ports.MapWidget      = (*Widget)(nil)
	_ ports.ReadoutDisplay = (*Widget)(nil)
)
