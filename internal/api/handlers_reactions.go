package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hazelbrook/doseline/internal/models"
	"github.com/hazelbrook/doseline/internal/services"
)

type reactionRequest struct {
	Date         string   `json:"date"`
	ItemID       *uint    `json:"item_id"`
	Symptoms     []string `json:"symptoms"`
	OtherSymptom string   `json:"other_symptom"`
	Description  string   `json:"description"`
}

func (handler *Handler) ListSymptoms(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"symptoms": models.BuiltinSymptoms()})
}

func (handler *Handler) ListReactions(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid cycle id")
	}
	if _, _, _, err := handler.requireCycleAccess(cycleID, user); err != nil {
		return handler.serviceError(c, err)
	}

	reactions, err := handler.reactionService.ListReactions(cycleID)
	if err != nil {
		return handler.serviceError(c, err)
	}

	views := make([]fiber.Map, 0, len(reactions))
	for _, reaction := range reactions {
		views = append(views, reactionView(reaction))
	}
	return c.JSON(fiber.Map{"reactions": views})
}

func (handler *Handler) CreateReaction(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid cycle id")
	}
	if _, _, _, err := handler.requireCycleAccess(cycleID, user); err != nil {
		return handler.serviceError(c, err)
	}

	var payload reactionRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}
	day, err := parseDateParam(payload.Date, handler.location)
	if err != nil {
		return badRequest(c, "date must be YYYY-MM-DD")
	}

	reaction, err := handler.reactionService.LogReaction(cycleID, user.ID, services.ReactionInput{
		Date:         day,
		ItemID:       payload.ItemID,
		Symptoms:     payload.Symptoms,
		OtherSymptom: payload.OtherSymptom,
		Description:  payload.Description,
	})
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"reaction": reactionView(reaction)})
}

func (handler *Handler) DeleteReaction(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	reactionID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid reaction id")
	}

	reaction, err := handler.reactionService.FindReaction(reactionID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	if _, _, _, err := handler.requireCycleAccess(reaction.CycleID, user); err != nil {
		return handler.serviceError(c, err)
	}

	if err := handler.reactionService.DeleteReaction(reactionID); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func reactionView(reaction models.Reaction) fiber.Map {
	view := fiber.Map{
		"id":            reaction.ID,
		"cycle_id":      reaction.CycleID,
		"user_id":       reaction.UserID,
		"date":          reaction.Date.Format("2006-01-02"),
		"symptoms":      reaction.Symptoms,
		"other_symptom": reaction.OtherSymptom,
		"description":   reaction.Description,
	}
	if reaction.ItemID != nil {
		view["item_id"] = *reaction.ItemID
	}
	return view
}
