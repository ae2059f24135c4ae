package api

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hazelbrook/doseline/internal/models"
)

type subscriptionRequest struct {
	PlanID      string `json:"plan_id"`
	GracePeriod bool   `json:"grace_period"`
}

func (handler *Handler) GetSubscription(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	summary, err := handler.roomService.Subscription(*user)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"subscription": summary})
}

// UpdateSubscription records the plan state reported by the store receipt.
// After a change it completes any transfer requests that were parked waiting
// for the recipient's room gate to open.
func (handler *Handler) UpdateSubscription(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	var payload subscriptionRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}
	if !models.KnownPlan(payload.PlanID) {
		return badRequest(c, "unknown plan")
	}

	user.PlanID = payload.PlanID
	user.GracePeriod = payload.GracePeriod
	if err := handler.authService.SaveUser(user); err != nil {
		return handler.serviceError(c, err)
	}

	promoted, err := handler.transferService.PromoteAwaitingPlan(*user, time.Now())
	if err != nil {
		log.Printf("subscription: promote parked transfers for user %d failed: %v", user.ID, err)
	}

	summary, err := handler.roomService.Subscription(*user)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"subscription":       summary,
		"promoted_transfers": len(promoted),
	})
}
