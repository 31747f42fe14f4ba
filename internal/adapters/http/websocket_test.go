package http_test

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/fasthttp/websocket"

	"github.com/samirrijal/routemap/internal/adapters/mapbox"
)

// dialSession starts the app on a loopback listener and opens /ws.
func dialSession(t *testing.T) *websocket.Conn {
	t.Helper()

	app := setupApp(makeDeps())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go app.Listener(ln)
	t.Cleanup(func() { _ = app.Shutdown() })

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readCommand(t *testing.T, conn *websocket.Conn) mapbox.Command {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatal(err)
	}
	var cmd mapbox.Command
	if err := conn.ReadJSON(&cmd); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return cmd
}

func sendText(t *testing.T, conn *websocket.Conn, msg string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestMapSession_Lifecycle(t *testing.T) {
	conn := dialSession(t)

	create := readCommand(t, conn)
	if create.Op != mapbox.OpCreate || create.AccessToken != "pk.secret-token" {
		t.Fatalf("unexpected create frame %+v", create)
	}
	if create.Options == nil || create.Options.Container != "map" {
		t.Errorf("unexpected create options %+v", create.Options)
	}

	control := readCommand(t, conn)
	if control.Op != mapbox.OpAddControl || control.Position != "top-right" {
		t.Errorf("unexpected control frame %+v", control)
	}

	initial := readCommand(t, conn)
	if initial.Op != mapbox.OpReadout || initial.Text != "Longitude: -71.6100 | Latitude: 42.2700 | Zoom: 8.00" {
		t.Errorf("unexpected initial readout %+v", initial)
	}

	sendText(t, conn, `{"event":"load"}`)

	source := readCommand(t, conn)
	if source.Op != mapbox.OpAddSource || source.ID != "route" {
		t.Fatalf("unexpected source frame %+v", source)
	}
	if source.Data == nil || len(source.Data.Line) != 3 {
		t.Errorf("expected 3-point route line, got %+v", source.Data)
	}

	layer := readCommand(t, conn)
	if layer.Op != mapbox.OpAddLayer || layer.Source != "route" {
		t.Errorf("unexpected layer frame %+v", layer)
	}

	var colors []string
	for i := 0; i < 3; i++ {
		m := readCommand(t, conn)
		if m.Op != mapbox.OpAddMarker || m.Marker == nil {
			t.Fatalf("expected marker frame, got %+v", m)
		}
		if m.Marker.Offset != 25 {
			t.Errorf("expected popup offset 25, got %d", m.Marker.Offset)
		}
		colors = append(colors, m.Marker.Color)
	}
	if got := strings.Join(colors, ","); got != "green,red,blue" {
		t.Errorf("unexpected marker order %s", got)
	}

	sendText(t, conn, `{"event":"move","center":{"lng":-71.608234,"lat":42.269876},"zoom":7.996}`)

	moved := readCommand(t, conn)
	if moved.Op != mapbox.OpReadout || moved.Text != "Longitude: -71.6082 | Latitude: 42.2699 | Zoom: 8.00" {
		t.Errorf("unexpected move readout %+v", moved)
	}
}

func TestMapSession_ErrorFrames(t *testing.T) {
	conn := dialSession(t)
	for i := 0; i < 3; i++ {
		readCommand(t, conn) // create, addControl, readout
	}

	sendText(t, conn, `{not json`)
	if cmd := readCommand(t, conn); cmd.Op != mapbox.OpError || cmd.Error != "invalid JSON" {
		t.Errorf("expected invalid JSON error frame, got %+v", cmd)
	}

	sendText(t, conn, `{"event":"resize"}`)
	if cmd := readCommand(t, conn); cmd.Op != mapbox.OpError || !strings.Contains(cmd.Error, "resize") {
		t.Errorf("expected unknown event error frame, got %+v", cmd)
	}

	// A second load is rejected and the session stays up.
	sendText(t, conn, `{"event":"load"}`)
	for i := 0; i < 5; i++ {
		readCommand(t, conn)
	}
	sendText(t, conn, `{"event":"load"}`)
	if cmd := readCommand(t, conn); cmd.Op != mapbox.OpError || !strings.Contains(cmd.Error, "already registered") {
		t.Errorf("expected already registered error frame, got %+v", cmd)
	}
}
