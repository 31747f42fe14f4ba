package mapbox

import "github.com/samirrijal/routemap/internal/core/domain"

// Command ops understood by the page script.
const (
	OpCreate     = "create"
	OpAddControl = "addControl"
	OpAddSource  = "addSource"
	OpAddLayer   = "addLayer"
	OpAddMarker  = "addMarker"
	OpReadout    = "readout"
	OpError      = "error"
)

// Command is a server → browser frame.
type Command struct {
	Op          string                `json:"op"`
	AccessToken string                `json:"accessToken,omitempty"`
	Options     *domain.MapOptions    `json:"options,omitempty"`
	Position    string                `json:"position,omitempty"`
	ID          string                `json:"id,omitempty"`
	Source      string                `json:"source,omitempty"`
	Data        *domain.RouteFeature  `json:"data,omitempty"`
	Layout      map[string]string     `json:"layout,omitempty"`
	Paint       map[string]any        `json:"paint,omitempty"`
	Marker      *MarkerFrame          `json:"marker,omitempty"`
	Viewport    *domain.ViewportState `json:"viewport,omitempty"`
	Text        string                `json:"text,omitempty"`
	Error       string                `json:"error,omitempty"`
}

// MarkerFrame is a colored marker with its popup.
type MarkerFrame struct {
	Lng    float64 `json:"lng"`
	Lat    float64 `json:"lat"`
	Color  string  `json:"color"`
	Popup  string  `json:"popup"`
	Offset int     `json:"offset"`
}

// Event is a browser → server frame.
//
//	{"event":"load"}
//	{"event":"move","center":{"lng":-71.6,"lat":42.2},"zoom":8.1}
type Event struct {
	Event  string           `json:"event"`
	Center *domain.GeoPoint `json:"center,omitempty"`
	Zoom   *float64         `json:"zoom,omitempty"`
}

// ErrorCommand builds an error frame.
func ErrorCommand(msg string) Command {
	return Command{Op: OpError, Error: msg}
}
