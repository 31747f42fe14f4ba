package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// RouteSourceID names both the GeoJSON source and the line layer.
	RouteSourceID = "route"

	DefaultContainer = "map"
	DefaultStyleURL  = "mapbox://styles/mapbox/streets-v12"
	DefaultZoom      = 8.0

	// PopupOffset is the popup distance from its marker anchor, in pixels.
	PopupOffset = 25

	NavigationControlPosition = "top-right"
)

// DefaultCenter is the initial map center.
var DefaultCenter = GeoPoint{Lng: -71.61, Lat: 42.27}

// MarkerColor is the fill color of a point marker.
type MarkerColor string

const (
	MarkerGreen MarkerColor = "green"
	MarkerRed   MarkerColor = "red"
	MarkerBlue  MarkerColor = "blue"
)

// Valid reports whether c is one of the supported marker colors.
func (c MarkerColor) Valid() bool {
	switch c {
	case MarkerGreen, MarkerRed, MarkerBlue:
		return true
	}
	return false
}

// MarkerAnnotation is a colored marker with a text popup.
type MarkerAnnotation struct {
	Position  GeoPoint    `json:"position"`
	Color     MarkerColor `json:"color"`
	PopupText string      `json:"popup_text"`
}

// DefaultMarkers returns the markers in registration order: start, end, current.
func DefaultMarkers() []MarkerAnnotation {
	return []MarkerAnnotation{
		{Position: StartLocation, Color: MarkerGreen, PopupText: "Start location"},
		{Position: EndLocation, Color: MarkerRed, PopupText: "End location"},
		{Position: CurrentLocation, Color: MarkerBlue, PopupText: "Current location"},
	}
}

// LineStyle describes how the route layer is drawn.
type LineStyle struct {
	Join  string  `json:"line-join"`
	Cap   string  `json:"line-cap"`
	Color string  `json:"line-color"`
	Width float64 `json:"line-width"`
}

// DefaultLineStyle is the route line look.
func DefaultLineStyle() LineStyle {
	return LineStyle{Join: "round", Cap: "round", Color: "#1db7dd", Width: 8}
}

// MapOptions are the construction parameters of the map widget.
type MapOptions struct {
	Container string   `json:"container"`
	StyleURL  string   `json:"style"`
	Center    GeoPoint `json:"center"`
	Zoom      float64  `json:"zoom"`
}

// DefaultMapOptions returns the options used when nothing is configured.
func DefaultMapOptions() MapOptions {
	return MapOptions{
		Container: DefaultContainer,
		StyleURL:  DefaultStyleURL,
		Center:    DefaultCenter,
		Zoom:      DefaultZoom,
	}
}

// ViewportState is the displayed center and zoom.
type ViewportState struct {
	Lng  float64 `json:"lng"`
	Lat  float64 `json:"lat"`
	Zoom float64 `json:"zoom"`
}

// NewViewportState rounds center to 4 and zoom to 2 decimal places.
func NewViewportState(center GeoPoint, zoom float64) ViewportState {
	return ViewportState{
		Lng:  RoundTo(center.Lng, 4),
		Lat:  RoundTo(center.Lat, 4),
		Zoom: RoundTo(zoom, 2),
	}
}

// Text renders the readout shown over the map.
func (v ViewportState) Text() string {
	return fmt.Sprintf("Longitude: %.4f | Latitude: %.4f | Zoom: %.2f", v.Lng, v.Lat, v.Zoom)
}

// RoundTo rounds v to the given number of decimal places. Inexact values
// round to the nearest decimal (7.996 → 8, -71.608234 → -71.6082). Exact
// halfway values round away from zero (7.125 → 7.13), the way
// Number.prototype.toFixed does.
func RoundTo(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	if isHalfway(v, places) {
		v = math.Nextafter(v, math.Copysign(math.Inf(1), v))
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// isHalfway reports whether the exact binary value of v lies midway between
// two decimals with the given number of places.
func isHalfway(v float64, places int) bool {
	if v == 0 {
		return false
	}
	// v = frac × 2^exp with a 53-bit mantissa, so it has at most 53-exp
	// fractional binary digits and as many fractional decimal digits.
	_, exp := math.Frexp(v)
	digits := 53 - exp
	if digits <= places {
		return false
	}

	s := strconv.FormatFloat(math.Abs(v), 'f', digits, 64)
	tail := strings.TrimRight(s[len(s)-(digits-places):], "0")
	return tail == "5"
}

// MapEventType names a lifecycle event emitted by the map widget.
type MapEventType string

const (
	// EventLoad fires once the style and initial tiles have loaded.
	EventLoad MapEventType = "load"
	// EventMove fires on every pan or zoom.
	EventMove MapEventType = "move"
)
