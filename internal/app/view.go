package app

import "github.com/leranyappi/training-diary/internal/workout"

// Popup carries the Leaflet popup options for a workout marker.
type Popup struct {
	Content      string `json:"content"`
	MaxWidth     int    `json:"max_width"`
	MinWidth     int    `json:"min_width"`
	AutoClose    bool   `json:"auto_close"`
	CloseOnClick bool   `json:"close_on_click"`
	ClassName    string `json:"class_name"`
}

// MapView is the map widget as seen by the controller.
type MapView interface {
	SetView(coords workout.Coords, zoom int)
	AddTileLayer(url, attribution string)
	AddMarker(coords workout.Coords, popup Popup)
	PanTo(coords workout.Coords, zoom int)
}

// UserView is the form, workout list and notification surface.
type UserView interface {
	ShowForm()
	HideForm()
	ToggleTypeFields()
	RenderRow(w workout.Workout)
	Alert(msg string)
	Reload()
}

// Geolocator requests the device position once. The outcome arrives later as
// a HandlePosition or HandlePositionDenied call.
type Geolocator interface {
	Locate()
}
