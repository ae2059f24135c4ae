package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ToggleConsumption flips the taken mark for an item on a given day. The
// mobile client calls this from the week grid checkmarks.
func (handler *Handler) ToggleConsumption(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid cycle id")
	}
	itemID, err := parseUintParam(c, "itemID")
	if err != nil {
		return badRequest(c, "invalid item id")
	}
	day, err := parseDateParam(c.Params("date"), handler.location)
	if err != nil {
		return badRequest(c, "date must be YYYY-MM-DD")
	}

	if _, _, _, err := handler.requireCycleAccess(cycleID, user); err != nil {
		return handler.serviceError(c, err)
	}
	item, err := handler.itemService.FindItem(itemID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	if item.CycleID != cycleID {
		return badRequest(c, "item does not belong to cycle")
	}

	taken, err := handler.consumptionService.ToggleConsumption(cycleID, itemID, user.ID, day, time.Now())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"item_id": itemID,
		"date":    day.Format("2006-01-02"),
		"taken":   taken,
	})
}

func (handler *Handler) ListConsumptionLogs(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid cycle id")
	}
	if _, _, _, err := handler.requireCycleAccess(cycleID, user); err != nil {
		return handler.serviceError(c, err)
	}

	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := parseDateParam(raw, handler.location)
		if err != nil {
			return badRequest(c, "from must be YYYY-MM-DD")
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := parseDateParam(raw, handler.location)
		if err != nil {
			return badRequest(c, "to must be YYYY-MM-DD")
		}
		to = &parsed
	}

	entries, err := handler.consumptionService.ListLogs(cycleID, from, to)
	if err != nil {
		return handler.serviceError(c, err)
	}

	views := make([]fiber.Map, 0, len(entries))
	for _, entry := range entries {
		views = append(views, fiber.Map{
			"id":       entry.ID,
			"item_id":  entry.ItemID,
			"user_id":  entry.UserID,
			"date":     entry.Date.Format("2006-01-02"),
			"taken_at": entry.TakenAt,
		})
	}
	return c.JSON(fiber.Map{"logs": views})
}
