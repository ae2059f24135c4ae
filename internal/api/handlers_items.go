package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hazelbrook/doseline/internal/models"
	"github.com/hazelbrook/doseline/internal/services"
)

type weeklyDoseRequest struct {
	Week int     `json:"week"`
	Dose float64 `json:"dose"`
	Unit string  `json:"unit"`
}

type itemRequest struct {
	Name              string              `json:"name"`
	Category          string              `json:"category"`
	Dose              *float64            `json:"dose"`
	Unit              string              `json:"unit"`
	ScheduleType      string              `json:"schedule_type"`
	ScheduleStartDate string              `json:"schedule_start_date"`
	ScheduleWeekdays  []int               `json:"schedule_weekdays"`
	WeeklyDoses       []weeklyDoseRequest `json:"weekly_doses"`
}

type reorderRequest struct {
	ItemIDs []uint `json:"item_ids"`
}

func (handler *Handler) ListItems(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid cycle id")
	}
	if _, _, _, err := handler.requireCycleAccess(cycleID, user); err != nil {
		return handler.serviceError(c, err)
	}

	items, err := handler.itemService.ListItems(cycleID)
	if err != nil {
		return handler.serviceError(c, err)
	}

	views := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		views = append(views, itemView(item))
	}
	return c.JSON(fiber.Map{"items": views})
}

func (handler *Handler) CreateItem(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid cycle id")
	}
	if _, _, _, err := handler.requireCycleAccess(cycleID, user); err != nil {
		return handler.serviceError(c, err)
	}

	input, err := handler.parseItemRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	item, err := handler.itemService.CreateItem(cycleID, input)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item": itemView(item)})
}

func (handler *Handler) UpdateItem(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	itemID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid item id")
	}
	if _, err := handler.requireItemAccess(itemID, user); err != nil {
		return handler.serviceError(c, err)
	}

	input, err := handler.parseItemRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	item, err := handler.itemService.UpdateItem(itemID, input)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"item": itemView(item)})
}

func (handler *Handler) DeleteItem(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	itemID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid item id")
	}
	if _, err := handler.requireItemAccess(itemID, user); err != nil {
		return handler.serviceError(c, err)
	}

	if err := handler.itemService.DeleteItem(itemID); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ReorderItems(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid cycle id")
	}
	if _, _, _, err := handler.requireCycleAccess(cycleID, user); err != nil {
		return handler.serviceError(c, err)
	}

	var payload reorderRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(payload.ItemIDs) == 0 {
		return badRequest(c, "item_ids required")
	}

	if err := handler.itemService.ReorderItems(cycleID, payload.ItemIDs); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// requireItemAccess resolves an item and checks membership of the room its
// cycle belongs to.
func (handler *Handler) requireItemAccess(itemID uint, user *models.User) (models.Item, error) {
	item, err := handler.itemService.FindItem(itemID)
	if err != nil {
		return models.Item{}, err
	}
	if _, _, _, err := handler.requireCycleAccess(item.CycleID, user); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (handler *Handler) parseItemRequest(c *fiber.Ctx) (services.ItemInput, error) {
	var payload itemRequest
	if err := c.BodyParser(&payload); err != nil {
		return services.ItemInput{}, errInvalidBody
	}

	input := services.ItemInput{
		Name:             payload.Name,
		Category:         payload.Category,
		Dose:             payload.Dose,
		Unit:             payload.Unit,
		ScheduleType:     payload.ScheduleType,
		ScheduleWeekdays: payload.ScheduleWeekdays,
	}

	if payload.ScheduleStartDate != "" {
		start, err := parseDateParam(payload.ScheduleStartDate, handler.location)
		if err != nil {
			return services.ItemInput{}, errInvalidDate
		}
		input.ScheduleStartDate = &start
	}

	for _, weekly := range payload.WeeklyDoses {
		input.WeeklyDoses = append(input.WeeklyDoses, models.WeeklyDose{
			Week: weekly.Week,
			Dose: weekly.Dose,
			Unit: weekly.Unit,
		})
	}
	return input, nil
}

func itemView(item models.Item) fiber.Map {
	view := fiber.Map{
		"id":            item.ID,
		"cycle_id":      item.CycleID,
		"name":          item.Name,
		"category":      item.Category,
		"dose":          item.Dose,
		"unit":          item.Unit,
		"display_order": item.DisplayOrder,
		"schedule_type": item.ScheduleType,
	}
	if item.ScheduleStartDate != nil {
		view["schedule_start_date"] = item.ScheduleStartDate.Format("2006-01-02")
	}
	if len(item.ScheduleWeekdays) > 0 {
		view["schedule_weekdays"] = item.ScheduleWeekdays
	}
	if len(item.WeeklyDoses) > 0 {
		doses := make([]fiber.Map, 0, len(item.WeeklyDoses))
		for _, weekly := range item.WeeklyDoses {
			doses = append(doses, fiber.Map{
				"week": weekly.Week,
				"dose": weekly.Dose,
				"unit": weekly.Unit,
			})
		}
		view["weekly_doses"] = doses
	}
	return view
}
