package bridge

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/leranyappi/training-diary/internal/app"
	"github.com/leranyappi/training-diary/internal/workout"
)

// Session is one browser connection. It implements the controller's view
// interfaces by marshaling commands onto Send; a writer goroutine drains the
// channel to the websocket.
type Session struct {
	ID   string
	Send chan []byte
}

type command struct {
	Cmd         string           `json:"cmd"`
	Coords      *workout.Coords  `json:"coords,omitempty"`
	Zoom        int              `json:"zoom,omitempty"`
	URL         string           `json:"url,omitempty"`
	Attribution string           `json:"attribution,omitempty"`
	Popup       *app.Popup       `json:"popup,omitempty"`
	Workout     *workout.Workout `json:"workout,omitempty"`
	Message     string           `json:"message,omitempty"`
	Animate     bool             `json:"animate,omitempty"`
	DurationSec float64          `json:"duration_sec,omitempty"`
}

func NewSession() *Session {
	return &Session{
		ID:   uuid.NewString(),
		Send: make(chan []byte, 64),
	}
}

func (s *Session) Close() {
	close(s.Send)
}

func (s *Session) emit(cmd command) {
	buf, err := json.Marshal(cmd)
	if err != nil {
		log.Warn().Err(err).Str("cmd", cmd.Cmd).Msg("failed to marshal command")
		return
	}
	select {
	case s.Send <- buf:
	default:
	}
}

func (s *Session) Locate() {
	s.emit(command{Cmd: "locate"})
}

func (s *Session) SetView(coords workout.Coords, zoom int) {
	s.emit(command{Cmd: "set_view", Coords: &coords, Zoom: zoom})
}

func (s *Session) AddTileLayer(url, attribution string) {
	s.emit(command{Cmd: "tile_layer", URL: url, Attribution: attribution})
}

func (s *Session) AddMarker(coords workout.Coords, popup app.Popup) {
	s.emit(command{Cmd: "add_marker", Coords: &coords, Popup: &popup})
}

func (s *Session) PanTo(coords workout.Coords, zoom int) {
	s.emit(command{Cmd: "pan_to", Coords: &coords, Zoom: zoom, Animate: true, DurationSec: 1})
}

func (s *Session) ShowForm() {
	s.emit(command{Cmd: "show_form"})
}

func (s *Session) HideForm() {
	s.emit(command{Cmd: "hide_form"})
}

func (s *Session) ToggleTypeFields() {
	s.emit(command{Cmd: "toggle_fields"})
}

func (s *Session) RenderRow(w workout.Workout) {
	s.emit(command{Cmd: "render_row", Workout: &w})
}

func (s *Session) Alert(msg string) {
	s.emit(command{Cmd: "alert", Message: msg})
}

func (s *Session) Reload() {
	s.emit(command{Cmd: "reload"})
}
