package usecases

import (
	"context"
	"fmt"

	"github.com/samirrijal/routemap/internal/core/domain"
	"github.com/samirrijal/routemap/internal/core/ports"
)

// MapHost owns the lifecycle of a single map widget.
type MapHost struct {
	widget      ports.MapWidget
	layer       *RouteLayer
	readout     *ViewportReadout
	initialized bool
}

// NewMapHost creates a MapHost. Nothing is sent to the widget until Initialize.
func NewMapHost(widget ports.MapWidget, layer *RouteLayer, readout *ViewportReadout) *MapHost {
	return &MapHost{widget: widget, layer: layer, readout: readout}
}

// Initialize constructs the widget, attaches the navigation control and
// subscribes the route layer to "load" and the readout to "move". It
// reports false without touching the widget when already initialized.
func (h *MapHost) Initialize(ctx context.Context, opts domain.MapOptions) (bool, error) {
	if h.initialized {
		return false, nil
	}

	if err := h.widget.Create(ctx, opts); err != nil {
		return false, fmt.Errorf("create map: %w", err)
	}
	h.initialized = true

	// Handlers are subscribed whenever initialized is true.
	h.widget.On(domain.EventLoad, func(ctx context.Context) error {
		return h.layer.Register(ctx, h.widget)
	})
	h.widget.On(domain.EventMove, func(ctx context.Context) error {
		return h.readout.OnMove(ctx, h.widget)
	})
	h.readout.Reset(opts.Center, opts.Zoom)

	if err := h.widget.AddNavigationControl(ctx, domain.NavigationControlPosition); err != nil {
		return true, fmt.Errorf("add navigation control: %w", err)
	}
	if err := h.readout.Show(ctx); err != nil {
		return true, fmt.Errorf("show readout: %w", err)
	}
	return true, nil
}

// Initialized reports whether the widget has been constructed.
func (h *MapHost) Initialized() bool {
	return h.initialized
}

// Viewport returns the current readout state.
func (h *MapHost) Viewport() (domain.ViewportState, error) {
	if !h.initialized {
		return domain.ViewportState{}, ErrNotInitialized
	}
	return h.readout.State(), nil
}
