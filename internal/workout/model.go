package workout

import (
	"fmt"
	"time"

	"github.com/segmentio/ksuid"
)

type Type string

const (
	TypeRunning Type = "running"
	TypeCycling Type = "cycling"
)

type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Workout is a single recorded session. Running and cycling share one struct
// with Type as the discriminator; only the variant's own metric fields are
// meaningful (Cadence/Pace for running, ElevationM/Speed for cycling).
// Derived fields are filled once by the constructors and never mutated.
type Workout struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	Date        time.Time `json:"date"`
	Coords      Coords    `json:"coords"`
	DistanceKm  float64   `json:"distance_km"`
	DurationMin float64   `json:"duration_min"`
	Cadence     float64   `json:"cadence_spm,omitempty"`
	ElevationM  float64   `json:"elevation_m,omitempty"`
	Pace        float64   `json:"pace_min_per_km,omitempty"`
	Speed       float64   `json:"speed_kmh,omitempty"`
	Descr       string    `json:"descr"`
}

// NewRunning builds a running workout. Inputs are assumed validated by the
// caller; constructors never fail.
func NewRunning(coords Coords, distanceKm, durationMin, cadence float64) Workout {
	w := Workout{
		ID:          ksuid.New().String(),
		Type:        TypeRunning,
		Date:        time.Now(),
		Coords:      coords,
		DistanceKm:  distanceKm,
		DurationMin: durationMin,
		Cadence:     cadence,
	}
	w.Pace = durationMin / distanceKm
	w.Descr = describe(w.Type, w.Date)
	return w
}

// NewCycling builds a cycling workout. Elevation may be zero or negative.
func NewCycling(coords Coords, distanceKm, durationMin, elevationM float64) Workout {
	w := Workout{
		ID:          ksuid.New().String(),
		Type:        TypeCycling,
		Date:        time.Now(),
		Coords:      coords,
		DistanceKm:  distanceKm,
		DurationMin: durationMin,
		ElevationM:  elevationM,
	}
	w.Speed = distanceKm / (durationMin / 60)
	w.Descr = describe(w.Type, w.Date)
	return w
}

// Rehydrate recomputes the derived fields of a stored workout from its raw
// fields, keeping ID and Date. Stored pace/speed/descr values are not trusted.
func Rehydrate(w Workout) Workout {
	switch w.Type {
	case TypeRunning:
		w.Pace = w.DurationMin / w.DistanceKm
		w.Speed = 0
	case TypeCycling:
		w.Speed = w.DistanceKm / (w.DurationMin / 60)
		w.Pace = 0
	}
	w.Descr = describe(w.Type, w.Date)
	return w
}

// Metric returns the primary derived metric for the workout's type.
func (w Workout) Metric() float64 {
	if w.Type == TypeRunning {
		return w.Pace
	}
	return w.Speed
}

func describe(t Type, date time.Time) string {
	title := string(t)
	if len(title) > 0 {
		title = string(title[0]-'a'+'A') + title[1:]
	}
	return fmt.Sprintf("%s %s %d", title, date.Month(), date.Day())
}
