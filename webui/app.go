// Package webui exposes the action server over HTTP: the dialogue engine
// POSTs the recognized action name plus a tracker snapshot to /webhook
// and gets back the responses to utter and the slot events to persist.
package webui

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mudler/xlog"

	"github.com/lingobot/actionserver/core/types"
)

type App struct {
	config *Config
	*fiber.App
}

func NewApp(opts ...Option) *App {
	config := NewConfig(opts...)

	a := &App{
		config: config,
		App:    fiber.New(fiber.Config{DisableStartupMessage: true}),
	}

	a.registerRoutes()

	return a
}

type WebhookRequest struct {
	NextAction string        `json:"next_action"`
	SenderID   string        `json:"sender_id"`
	Tracker    types.Tracker `json:"tracker"`
}

type WebhookResponse struct {
	Events    []types.Event     `json:"events"`
	Responses []ResponseMessage `json:"responses"`
}

type ResponseMessage struct {
	Text string `json:"text"`
}

// ExecuteAction dispatches one turn: it merges the mirrored session slots
// under the incoming tracker snapshot, runs the named action and applies
// the returned slot events back to the mirror. Handler errors degrade to
// an apology response; nothing here is fatal to the host.
func (a *App) ExecuteAction() func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		req := WebhookRequest{}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		if req.SenderID == "" {
			req.SenderID = req.Tracker.SenderID
		}
		if req.SenderID == "" {
			req.SenderID = uuid.New().String()
		}

		action := a.config.Actions.Find(req.NextAction)
		if action == nil {
			xlog.Error("Action not found", "name", req.NextAction)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "action not registered: " + req.NextAction,
			})
		}

		tracker := req.Tracker
		tracker.SenderID = req.SenderID
		merged := a.config.Pool.Snapshot(req.SenderID)
		for k, v := range tracker.Slots {
			merged[k] = v
		}
		tracker.Slots = merged

		xlog.Debug("Running action", "name", req.NextAction, "sender", req.SenderID)
		result, err := action.Run(c.UserContext(), &tracker)
		if err != nil {
			xlog.Error("Action failed", "name", req.NextAction, "error", err)
			result.Utter("Sorry, something went wrong on my side. Please try again.")
		}

		a.config.Pool.Apply(req.SenderID, result.Events)

		resp := WebhookResponse{
			Events:    result.Events,
			Responses: []ResponseMessage{},
		}
		if resp.Events == nil {
			resp.Events = []types.Event{}
		}
		for _, text := range result.Responses {
			resp.Responses = append(resp.Responses, ResponseMessage{Text: text})
		}
		return c.JSON(resp)
	}
}
