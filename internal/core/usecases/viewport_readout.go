package usecases

import (
	"context"
	"log/slog"

	"github.com/samirrijal/routemap/internal/core/domain"
	"github.com/samirrijal/routemap/internal/core/ports"
)

// ViewportReadout mirrors the widget's center and zoom as display text.
type ViewportReadout struct {
	state     domain.ViewportState
	display   ports.ReadoutDisplay
	publisher ports.EventPublisher
	sessionID string
}

// NewViewportReadout creates a readout. publisher may be nil.
func NewViewportReadout(display ports.ReadoutDisplay, publisher ports.EventPublisher, sessionID string) *ViewportReadout {
	return &ViewportReadout{display: display, publisher: publisher, sessionID: sessionID}
}

// Reset sets the state without reading the widget.
func (r *ViewportReadout) Reset(center domain.GeoPoint, zoom float64) {
	r.state = domain.NewViewportState(center, zoom)
}

// State returns the last displayed viewport.
func (r *ViewportReadout) State() domain.ViewportState {
	return r.state
}

// Show renders the current state.
func (r *ViewportReadout) Show(ctx context.Context) error {
	return r.display.ShowReadout(ctx, r.state)
}

// OnMove reads the widget camera, rounds it and re-renders the readout.
func (r *ViewportReadout) OnMove(ctx context.Context, w ports.MapWidget) error {
	r.state = domain.NewViewportState(w.Center(), w.Zoom())

	if r.publisher != nil {
		if err := r.publisher.PublishViewport(ctx, r.sessionID, r.state); err != nil {
			slog.WarnContext(ctx, "publish viewport failed", "session_id", r.sessionID, "error", err)
		}
	}

	return r.Show(ctx)
}
