package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/routemap/internal/core/domain"
	"github.com/samirrijal/routemap/internal/core/usecases"
)

func newHost(w *mockWidget, d *mockDisplay, p *mockPublisher) *usecases.MapHost {
	readout := usecases.NewViewportReadout(d, p, "session-1")
	return usecases.NewMapHost(w, usecases.NewRouteLayer(), readout)
}

func TestMapHost_InitializeOnce(t *testing.T) {
	w := newMockWidget()
	host := newHost(w, &mockDisplay{}, nil)
	ctx := context.Background()

	created, err := host.Initialize(ctx, domain.DefaultMapOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected first Initialize to create the map")
	}

	created, err = host.Initialize(ctx, domain.DefaultMapOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected second Initialize to be a no-op")
	}

	if n := w.count("create"); n != 1 {
		t.Errorf("expected 1 widget instance, got %d", n)
	}
	if n := w.count("addControl:top-right"); n != 1 {
		t.Errorf("expected 1 navigation control at top-right, got %d", n)
	}
	if len(w.handlers[domain.EventLoad]) != 1 || len(w.handlers[domain.EventMove]) != 1 {
		t.Errorf("expected one load and one move handler, got %d and %d",
			len(w.handlers[domain.EventLoad]), len(w.handlers[domain.EventMove]))
	}
}

func TestMapHost_CreateOptions(t *testing.T) {
	w := newMockWidget()
	host := newHost(w, &mockDisplay{}, nil)

	if _, err := host.Initialize(context.Background(), domain.DefaultMapOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts := w.opts[0]
	if opts.Container != "map" || opts.StyleURL != "mapbox://styles/mapbox/streets-v12" {
		t.Errorf("unexpected container/style: %+v", opts)
	}
	if opts.Center != (domain.GeoPoint{Lng: -71.61, Lat: 42.27}) || opts.Zoom != 8 {
		t.Errorf("unexpected center/zoom: %+v", opts)
	}
}

func TestMapHost_CreateFailureLeavesUninitialized(t *testing.T) {
	w := newMockWidget()
	w.createErr = errors.New("container not mounted")
	host := newHost(w, &mockDisplay{}, nil)

	_, err := host.Initialize(context.Background(), domain.DefaultMapOptions())
	if !errors.Is(err, w.createErr) {
		t.Fatalf("expected wrapped create error, got %v", err)
	}
	if host.Initialized() {
		t.Error("expected host to stay uninitialized")
	}
	if _, err := host.Viewport(); !errors.Is(err, usecases.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestMapHost_ControlFailureKeepsSubscriptions(t *testing.T) {
	w := newMockWidget()
	w.controlErr = errors.New("control rejected")
	host := newHost(w, &mockDisplay{}, nil)
	ctx := context.Background()

	created, err := host.Initialize(ctx, domain.DefaultMapOptions())
	if !errors.Is(err, w.controlErr) {
		t.Fatalf("expected wrapped control error, got %v", err)
	}
	if !created || !host.Initialized() {
		t.Fatal("expected the widget to count as created")
	}

	// A retry must not build a second widget.
	if created, _ := host.Initialize(ctx, domain.DefaultMapOptions()); created {
		t.Error("expected retry to be a no-op")
	}
	if n := w.count("create"); n != 1 {
		t.Errorf("expected 1 widget instance, got %d", n)
	}

	v, err := host.Viewport()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != (domain.ViewportState{Lng: -71.61, Lat: 42.27, Zoom: 8}) {
		t.Errorf("expected initial viewport, got %+v", v)
	}

	if err := w.emit(ctx, domain.EventLoad); err != nil {
		t.Fatalf("load: %v", err)
	}
	if n := w.count("addSource:route"); n != 1 {
		t.Errorf("expected the route to register on load, got %d sources", n)
	}
	if n := w.count("addMarker"); n != 3 {
		t.Errorf("expected 3 markers, got %d", n)
	}
}

func TestMapHost_NoRegistrationBeforeLoad(t *testing.T) {
	w := newMockWidget()
	host := newHost(w, &mockDisplay{}, nil)

	if _, err := host.Initialize(context.Background(), domain.DefaultMapOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, prefix := range []string{"addSource", "addLayer", "addMarker"} {
		if n := w.count(prefix); n != 0 {
			t.Errorf("expected no %s before load, got %d", prefix, n)
		}
	}

	if err := w.emit(context.Background(), domain.EventLoad); err != nil {
		t.Fatalf("load: %v", err)
	}
	if n := w.count("addMarker"); n != 3 {
		t.Errorf("expected 3 markers after load, got %d", n)
	}
}

func TestMapHost_ReadoutBeforeMove(t *testing.T) {
	d := &mockDisplay{}
	host := newHost(newMockWidget(), d, nil)

	if _, err := host.Initialize(context.Background(), domain.DefaultMapOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, err := host.Viewport()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.ViewportState{Lng: -71.61, Lat: 42.27, Zoom: 8}
	if v != want {
		t.Errorf("expected %+v, got %+v", want, v)
	}
	if len(d.shown) != 1 || d.last() != want {
		t.Errorf("expected initial readout to be rendered once, got %+v", d.shown)
	}
}

func TestMapHost_MoveUpdatesReadout(t *testing.T) {
	w := newMockWidget()
	d := &mockDisplay{}
	p := &mockPublisher{}
	host := newHost(w, d, p)
	ctx := context.Background()

	if _, err := host.Initialize(ctx, domain.DefaultMapOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w.center = domain.GeoPoint{Lng: -71.608234, Lat: 42.269876}
	w.zoom = 7.996
	if err := w.emit(ctx, domain.EventMove); err != nil {
		t.Fatalf("move: %v", err)
	}

	want := domain.ViewportState{Lng: -71.6082, Lat: 42.2699, Zoom: 8}
	v, _ := host.Viewport()
	if v != want {
		t.Errorf("expected %+v, got %+v", want, v)
	}
	if got := d.last().Text(); got != "Longitude: -71.6082 | Latitude: 42.2699 | Zoom: 8.00" {
		t.Errorf("unexpected readout text %q", got)
	}
	if len(p.states) != 1 || p.sessionIDs[0] != "session-1" || p.states[0] != want {
		t.Errorf("expected one published viewport, got %+v / %v", p.states, p.sessionIDs)
	}
}
