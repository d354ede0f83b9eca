package bridge

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"

	"github.com/leranyappi/training-diary/internal/app"
	"github.com/leranyappi/training-diary/internal/store"
	"github.com/leranyappi/training-diary/internal/workout"
)

type event struct {
	Event  string          `json:"event"`
	Coords *workout.Coords `json:"coords,omitempty"`
	Form   *app.FormData   `json:"form,omitempty"`
	ID     string          `json:"id,omitempty"`
}

func RegisterRoutes(r fiber.Router, settings app.Settings, st store.Store) {
	r.Get("/", websocket.New(func(c *websocket.Conn) {
		session := NewSession()
		ctrl := app.NewController(settings, st, session, session, session)

		done := make(chan struct{})
		go func() {
			for msg := range session.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
			close(done)
		}()

		ctx := context.Background()
		ctrl.Start(ctx)

		// single read loop: handlers run to completion one at a time
		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}
			dispatch(ctx, ctrl, msg)
		}

		session.Close()
		<-done
		log.Debug().Str("session", session.ID).Msg("session closed")
	}))
}

func dispatch(ctx context.Context, ctrl *app.Controller, msg []byte) {
	var e event
	if err := json.Unmarshal(msg, &e); err != nil {
		log.Debug().Err(err).Msg("ignoring malformed event")
		return
	}

	switch e.Event {
	case "position":
		if e.Coords != nil {
			ctrl.HandlePosition(ctx, *e.Coords)
		}
	case "position_denied":
		ctrl.HandlePositionDenied(ctx)
	case "map_click":
		if e.Coords != nil {
			ctrl.HandleMapClick(ctx, *e.Coords)
		}
	case "submit":
		if e.Form != nil {
			ctrl.HandleSubmit(ctx, *e.Form)
		}
	case "toggle_type":
		ctrl.HandleToggleType(ctx)
	case "row_click":
		ctrl.HandleRowClick(ctx, e.ID)
	case "reset":
		ctrl.HandleReset(ctx)
	}
}
