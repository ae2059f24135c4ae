package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hazelbrook/doseline/internal/models"
)

type createTransferRequest struct {
	RoomID      uint `json:"room_id"`
	RecipientID uint `json:"recipient_id"`
}

func (handler *Handler) ListTransfers(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	requests, err := handler.transferService.ListForUser(user.ID)
	if err != nil {
		return handler.serviceError(c, err)
	}

	now := time.Now()
	views := make([]fiber.Map, 0, len(requests))
	for _, request := range requests {
		views = append(views, transferView(request, now))
	}
	return c.JSON(fiber.Map{"transfers": views})
}

func (handler *Handler) CreateTransfer(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	var payload createTransferRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	request, err := handler.transferService.Propose(*user, payload.RoomID, payload.RecipientID, time.Now())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"transfer": transferView(request, time.Now())})
}

func (handler *Handler) AcceptTransfer(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	request, err := handler.transferService.Accept(c.Params("token"), *user, time.Now())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"transfer": transferView(request, time.Now())})
}

func (handler *Handler) DeclineTransfer(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	request, err := handler.transferService.Decline(c.Params("token"), *user, time.Now())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"transfer": transferView(request, time.Now())})
}

func (handler *Handler) CancelTransfer(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	request, err := handler.transferService.Cancel(c.Params("token"), *user, time.Now())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"transfer": transferView(request, time.Now())})
}

func transferView(request models.TransferRequest, now time.Time) fiber.Map {
	return fiber.Map{
		"token":        request.Token,
		"room_id":      request.RoomID,
		"initiator_id": request.InitiatorID,
		"recipient_id": request.RecipientID,
		"status":       request.EffectiveStatus(now),
		"created_at":   request.CreatedAt,
		"expires_at":   request.ExpiresAt,
	}
}
