package app

import (
	"context"
	"math"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/leranyappi/training-diary/internal/store"
	"github.com/leranyappi/training-diary/internal/workout"
)

// Settings are the map-facing knobs the controller needs.
type Settings struct {
	DefaultZoom     int
	FocusZoom       int
	TileURL         string
	TileAttribution string
}

// FormData is the raw form submission; values come in as the field strings
// the user typed.
type FormData struct {
	Type      string `json:"type"`
	Distance  string `json:"distance"`
	Duration  string `json:"duration"`
	Cadence   string `json:"cadence"`
	Elevation string `json:"elevation"`
}

// Controller coordinates geolocation, the map widget, the workout form and
// the store. One controller serves one session; every handler runs to
// completion on the session's event loop, so no locking is needed.
type Controller struct {
	settings Settings
	store    store.Store
	mapView  MapView
	ui       UserView
	geo      Geolocator

	workouts []workout.Workout
	mapReady bool
	clicked  *workout.Coords
}

func NewController(settings Settings, st store.Store, mapView MapView, ui UserView, geo Geolocator) *Controller {
	return &Controller{
		settings: settings,
		store:    st,
		mapView:  mapView,
		ui:       ui,
		geo:      geo,
	}
}

// Start loads the persisted collection and requests the device position.
// List rows render immediately; markers wait until the map exists.
func (c *Controller) Start(ctx context.Context) {
	workouts, err := c.store.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load workouts")
	}
	c.workouts = workouts
	for _, w := range c.workouts {
		c.ui.RenderRow(w)
	}

	c.geo.Locate()
}

func (c *Controller) HandlePosition(_ context.Context, coords workout.Coords) {
	c.mapReady = true
	c.mapView.SetView(coords, c.settings.DefaultZoom)
	c.mapView.AddTileLayer(c.settings.TileURL, c.settings.TileAttribution)
	for _, w := range c.workouts {
		c.renderMarker(w)
	}
}

func (c *Controller) HandlePositionDenied(_ context.Context) {
	c.ui.Alert("Could not get your position")
}

func (c *Controller) HandleMapClick(_ context.Context, coords workout.Coords) {
	if !c.mapReady {
		return
	}
	c.clicked = &coords
	c.ui.ShowForm()
}

func (c *Controller) HandleSubmit(ctx context.Context, form FormData) {
	if c.clicked == nil {
		return
	}

	distance, okDist := parseField(form.Distance)
	duration, okDur := parseField(form.Duration)

	var w workout.Workout
	switch form.Type {
	case string(workout.TypeRunning):
		cadence, okCad := parseField(form.Cadence)
		if !okDist || !okDur || !okCad || distance <= 0 || duration <= 0 || cadence <= 0 {
			c.ui.Alert("Inputs have to be positive numbers")
			return
		}
		w = workout.NewRunning(*c.clicked, distance, duration, cadence)
	case string(workout.TypeCycling):
		elevation, okElev := parseField(form.Elevation)
		if !okDist || !okDur || !okElev || distance <= 0 || duration <= 0 {
			c.ui.Alert("Inputs have to be positive numbers")
			return
		}
		w = workout.NewCycling(*c.clicked, distance, duration, elevation)
	default:
		c.ui.Alert("Unknown workout type")
		return
	}

	c.workouts = append(c.workouts, w)
	c.renderMarker(w)
	c.ui.RenderRow(w)
	c.clicked = nil
	c.ui.HideForm()

	if err := c.store.Save(ctx, c.workouts); err != nil {
		log.Warn().Err(err).Msg("failed to save workouts")
	}
}

func (c *Controller) HandleToggleType(_ context.Context) {
	c.ui.ToggleTypeFields()
}

func (c *Controller) HandleRowClick(_ context.Context, id string) {
	if !c.mapReady {
		return
	}
	for _, w := range c.workouts {
		if w.ID == id {
			c.mapView.PanTo(w.Coords, c.settings.FocusZoom)
			return
		}
	}
}

func (c *Controller) HandleReset(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to clear store")
		return
	}
	c.ui.Reload()
}

// Workouts returns the in-memory collection in creation order.
func (c *Controller) Workouts() []workout.Workout {
	return c.workouts
}

func (c *Controller) renderMarker(w workout.Workout) {
	c.mapView.AddMarker(w.Coords, Popup{
		Content:      icon(w.Type) + " " + w.Descr,
		MaxWidth:     250,
		MinWidth:     100,
		AutoClose:    false,
		CloseOnClick: false,
		ClassName:    "mark-popup",
	})
}

func icon(t workout.Type) string {
	if t == workout.TypeRunning {
		return "🏃"
	}
	return "🚴"
}

func parseField(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
