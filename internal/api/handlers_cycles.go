package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hazelbrook/doseline/internal/models"
	"github.com/hazelbrook/doseline/internal/services"
)

type cycleRequest struct {
	PatientName       string `json:"patient_name"`
	StartDate         string `json:"start_date"`
	FoodChallengeDate string `json:"food_challenge_date"`
}

type missedDoseRequest struct {
	Date string `json:"date"`
}

func (handler *Handler) ListCycles(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	roomID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid room id")
	}
	if _, _, err := handler.requireRoomMember(roomID, user); err != nil {
		return handler.serviceError(c, err)
	}

	cycles, err := handler.cycleService.ListCycles(roomID)
	if err != nil {
		return handler.serviceError(c, err)
	}

	views := make([]fiber.Map, 0, len(cycles))
	for _, cycle := range cycles {
		views = append(views, cycleView(cycle))
	}
	return c.JSON(fiber.Map{"cycles": views})
}

func (handler *Handler) CreateCycle(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	roomID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid room id")
	}
	if _, _, err := handler.requireRoomMember(roomID, user); err != nil {
		return handler.serviceError(c, err)
	}

	input, err := handler.parseCycleRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cycle, err := handler.cycleService.CreateCycle(roomID, input)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"cycle": cycleView(cycle)})
}

func (handler *Handler) UpdateCycle(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid cycle id")
	}
	if _, _, _, err := handler.requireCycleAccess(cycleID, user); err != nil {
		return handler.serviceError(c, err)
	}

	input, err := handler.parseCycleRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cycle, err := handler.cycleService.UpdateCycle(cycleID, input)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"cycle": cycleView(cycle)})
}

func (handler *Handler) GetCycle(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid cycle id")
	}
	cycle, _, _, err := handler.requireCycleAccess(cycleID, user)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"cycle": cycleView(cycle)})
}

// GetWeekView returns the dose grid for one treatment week. The :week param is
// the 1-based week number shown to the user.
func (handler *Handler) GetWeekView(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid cycle id")
	}
	week, err := parseIntParam(c, "week")
	if err != nil || week < 1 {
		return badRequest(c, "invalid week number")
	}

	cycle, _, _, err := handler.requireCycleAccess(cycleID, user)
	if err != nil {
		return handler.serviceError(c, err)
	}

	view, err := handler.cycleService.BuildWeekView(cycle, week-1, time.Now())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(view)
}

func (handler *Handler) ListMissedDoses(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid cycle id")
	}
	if _, _, _, err := handler.requireCycleAccess(cycleID, user); err != nil {
		return handler.serviceError(c, err)
	}

	missed, err := handler.cycleService.ListMissedDoses(cycleID)
	if err != nil {
		return handler.serviceError(c, err)
	}

	views := make([]fiber.Map, 0, len(missed))
	for _, record := range missed {
		views = append(views, fiber.Map{
			"id":   record.ID,
			"date": record.Date.Format("2006-01-02"),
		})
	}
	return c.JSON(fiber.Map{"missed_doses": views})
}

func (handler *Handler) RecordMissedDose(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid cycle id")
	}
	if _, _, _, err := handler.requireCycleAccess(cycleID, user); err != nil {
		return handler.serviceError(c, err)
	}

	var payload missedDoseRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}
	day, err := parseDateParam(payload.Date, handler.location)
	if err != nil {
		return badRequest(c, "date must be YYYY-MM-DD")
	}

	missed, err := handler.cycleService.RecordMissedDose(cycleID, day)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":   missed.ID,
		"date": missed.Date.Format("2006-01-02"),
	})
}

func (handler *Handler) RemoveMissedDose(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid cycle id")
	}
	if _, _, _, err := handler.requireCycleAccess(cycleID, user); err != nil {
		return handler.serviceError(c, err)
	}

	day, err := parseDateParam(c.Params("date"), handler.location)
	if err != nil {
		return badRequest(c, "date must be YYYY-MM-DD")
	}

	if err := handler.cycleService.RemoveMissedDose(cycleID, day); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) parseCycleRequest(c *fiber.Ctx) (services.CycleInput, error) {
	var payload cycleRequest
	if err := c.BodyParser(&payload); err != nil {
		return services.CycleInput{}, errInvalidBody
	}

	startDate, err := parseDateParam(payload.StartDate, handler.location)
	if err != nil {
		return services.CycleInput{}, errInvalidDate
	}
	challengeDate, err := parseDateParam(payload.FoodChallengeDate, handler.location)
	if err != nil {
		return services.CycleInput{}, errInvalidDate
	}

	return services.CycleInput{
		PatientName:       payload.PatientName,
		StartDate:         startDate,
		FoodChallengeDate: challengeDate,
	}, nil
}

func cycleView(cycle models.Cycle) fiber.Map {
	return fiber.Map{
		"id":                  cycle.ID,
		"room_id":             cycle.RoomID,
		"number":              cycle.Number,
		"patient_name":        cycle.PatientName,
		"start_date":          cycle.StartDate.Format("2006-01-02"),
		"food_challenge_date": cycle.FoodChallengeDate.Format("2006-01-02"),
	}
}
