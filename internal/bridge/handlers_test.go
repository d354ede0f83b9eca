package bridge

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"

	"github.com/leranyappi/training-diary/internal/app"
	"github.com/leranyappi/training-diary/internal/store"
)

func testSettings() app.Settings {
	return app.Settings{
		DefaultZoom:     13,
		FocusZoom:       15,
		TileURL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		TileAttribution: "&copy; OpenStreetMap contributors",
	}
}

func newBridgeApp(t *testing.T) (*fiber.App, *store.BadgerStore) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	st := store.NewBadgerStore(db)
	fiberApp := fiber.New()
	RegisterRoutes(fiberApp.Group("/ws"), testSettings(), st)
	return fiberApp, st
}

func dialBridge(t *testing.T, fiberApp *fiber.App) *websocket.Conn {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		_ = fiberApp.Listener(ln)
	}()
	t.Cleanup(func() { _ = fiberApp.Shutdown() })

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws/", nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

type wireCommand struct {
	Cmd     string `json:"cmd"`
	Zoom    int    `json:"zoom"`
	Message string `json:"message"`
	Coords  *struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"coords"`
	Popup *struct {
		Content  string `json:"content"`
		MaxWidth int    `json:"max_width"`
	} `json:"popup"`
	Workout *struct {
		ID   string  `json:"id"`
		Type string  `json:"type"`
		Pace float64 `json:"pace_min_per_km"`
	} `json:"workout"`
}

func readCommand(t *testing.T, conn *websocket.Conn) wireCommand {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	var cmd wireCommand
	if err := json.Unmarshal(msg, &cmd); err != nil {
		t.Fatalf("decode %q: %v", msg, err)
	}
	return cmd
}

func sendEvent(t *testing.T, conn *websocket.Conn, payload string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		t.Fatalf("write error: %v", err)
	}
}

func TestBridgeUpgradeRequired(t *testing.T) {
	fiberApp, _ := newBridgeApp(t)

	req := httptest.NewRequest(http.MethodGet, "/ws/", nil)
	resp, err := fiberApp.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode == http.StatusOK {
		t.Fatalf("expected non-200 for non-websocket request")
	}
}

func TestBridgeWorkoutFlow(t *testing.T) {
	fiberApp, st := newBridgeApp(t)
	conn := dialBridge(t, fiberApp)

	if cmd := readCommand(t, conn); cmd.Cmd != "locate" {
		t.Fatalf("expected locate first, got %q", cmd.Cmd)
	}

	sendEvent(t, conn, `{"event":"position","coords":{"lat":51.505,"lng":-0.09}}`)
	if cmd := readCommand(t, conn); cmd.Cmd != "set_view" || cmd.Zoom != 13 {
		t.Fatalf("expected set_view at zoom 13, got %+v", cmd)
	}
	if cmd := readCommand(t, conn); cmd.Cmd != "tile_layer" {
		t.Fatalf("expected tile_layer, got %q", cmd.Cmd)
	}

	sendEvent(t, conn, `{"event":"map_click","coords":{"lat":51.51,"lng":-0.1}}`)
	if cmd := readCommand(t, conn); cmd.Cmd != "show_form" {
		t.Fatalf("expected show_form, got %q", cmd.Cmd)
	}

	sendEvent(t, conn, `{"event":"submit","form":{"type":"running","distance":"5","duration":"25","cadence":"160"}}`)

	marker := readCommand(t, conn)
	if marker.Cmd != "add_marker" {
		t.Fatalf("expected add_marker, got %q", marker.Cmd)
	}
	if marker.Coords == nil || marker.Coords.Lat != 51.51 || marker.Coords.Lng != -0.1 {
		t.Fatalf("marker at wrong coords: %+v", marker.Coords)
	}
	if marker.Popup == nil || marker.Popup.MaxWidth != 250 || !strings.Contains(marker.Popup.Content, "Running") {
		t.Fatalf("unexpected popup: %+v", marker.Popup)
	}

	row := readCommand(t, conn)
	if row.Cmd != "render_row" || row.Workout == nil || row.Workout.Pace != 5.0 {
		t.Fatalf("expected render_row with pace 5.0, got %+v", row)
	}
	if cmd := readCommand(t, conn); cmd.Cmd != "hide_form" {
		t.Fatalf("expected hide_form, got %q", cmd.Cmd)
	}

	saved, err := st.Load(context.Background())
	if err != nil || len(saved) != 1 {
		t.Fatalf("expected one persisted workout, got %d (%v)", len(saved), err)
	}

	sendEvent(t, conn, `{"event":"row_click","id":"`+row.Workout.ID+`"}`)
	if cmd := readCommand(t, conn); cmd.Cmd != "pan_to" || cmd.Zoom != 15 {
		t.Fatalf("expected pan_to at zoom 15, got %+v", cmd)
	}
}

func TestBridgeMalformedEventIgnored(t *testing.T) {
	fiberApp, _ := newBridgeApp(t)
	conn := dialBridge(t, fiberApp)

	if cmd := readCommand(t, conn); cmd.Cmd != "locate" {
		t.Fatalf("expected locate first, got %q", cmd.Cmd)
	}

	sendEvent(t, conn, `{not json`)
	sendEvent(t, conn, `{"event":"unknown_thing"}`)
	sendEvent(t, conn, `{"event":"position_denied"}`)

	if cmd := readCommand(t, conn); cmd.Cmd != "alert" || cmd.Message == "" {
		t.Fatalf("expected denial alert after garbage, got %+v", cmd)
	}
}

func TestBridgeReset(t *testing.T) {
	fiberApp, st := newBridgeApp(t)

	if err := st.Save(context.Background(), nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	conn := dialBridge(t, fiberApp)
	if cmd := readCommand(t, conn); cmd.Cmd != "locate" {
		t.Fatalf("expected locate first, got %q", cmd.Cmd)
	}

	sendEvent(t, conn, `{"event":"reset"}`)
	if cmd := readCommand(t, conn); cmd.Cmd != "reload" {
		t.Fatalf("expected reload, got %q", cmd.Cmd)
	}
}
