package http

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/routemap/internal/core/domain"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Route Map</title>
  <link rel="stylesheet" href="https://api.mapbox.com/mapbox-gl-js/v2.15.0/mapbox-gl.css">
  <style>
    body{margin:0;font-family:system-ui,sans-serif}
    .sidebar{position:absolute;top:0;left:0;z-index:1;margin:12px;padding:6px 12px;
      background:rgba(35,55,75,.9);color:#fff;font-family:monospace;border-radius:4px}
    .map-container{height:100vh;width:100%}
    .notes{max-width:48rem;margin:1.5rem auto;padding:0 1rem;line-height:1.5}
  </style>
</head>
<body>
  <div class="sidebar" id="readout">{{.Readout}}</div>
  <div id="{{.Container}}" class="map-container"></div>
  <div class="notes">
    <p>The line is drawn from a GeoJSON source holding one LineString feature
      that runs from the start location through the current location to the
      end location.</p>
    <p>Each point carries a marker with a popup. Pan or zoom the map and the
      readout above follows the map center and zoom level.</p>
  </div>
  <script src="https://api.mapbox.com/mapbox-gl-js/v2.15.0/mapbox-gl.js"></script>
  <script>
  (function () {
    var scheme = location.protocol === 'https:' ? 'wss://' : 'ws://';
    var ws = new WebSocket(scheme + location.host + '/ws');
    var map = null;
    function send(m) { if (ws.readyState === 1) ws.send(JSON.stringify(m)); }
    ws.onmessage = function (e) {
      var c = JSON.parse(e.data);
      switch (c.op) {
      case 'create':
        mapboxgl.accessToken = c.accessToken || '';
        map = new mapboxgl.Map({
          container: c.options.container,
          style: c.options.style,
          center: [c.options.center.lng, c.options.center.lat],
          zoom: c.options.zoom
        });
        map.on('load', function () { send({event: 'load'}); });
        map.on('move', function () {
          var ct = map.getCenter();
          send({event: 'move', center: {lng: ct.lng, lat: ct.lat}, zoom: map.getZoom()});
        });
        break;
      case 'addControl':
        map.addControl(new mapboxgl.NavigationControl(), c.position);
        break;
      case 'addSource':
        map.addSource(c.id, {type: 'geojson', data: c.data});
        break;
      case 'addLayer':
        map.addLayer({id: c.id, type: 'line', source: c.source, layout: c.layout, paint: c.paint});
        break;
      case 'addMarker':
        new mapboxgl.Marker({color: c.marker.color})
          .setLngLat([c.marker.lng, c.marker.lat])
          .setPopup(new mapboxgl.Popup({offset: c.marker.offset}).setText(c.marker.popup))
          .addTo(map);
        break;
      case 'readout':
        document.getElementById('readout').textContent = c.text;
        break;
      case 'error':
        console.warn('routemap:', c.error);
        break;
      }
    };
  })();
  </script>
</body>
</html>`))

type pageData struct {
	Container string
	Readout   string
}

// PageHandler serves the single map page. The map itself is built over /ws.
func PageHandler(deps *Dependencies) fiber.Handler {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Container: deps.MapOptions.Container,
		Readout:   domain.NewViewportState(deps.MapOptions.Center, deps.MapOptions.Zoom).Text(),
	})
	if err != nil {
		panic("page template: " + err.Error())
	}
	page := buf.Bytes()

	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(page)
	}
}
