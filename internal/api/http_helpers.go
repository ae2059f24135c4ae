package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hazelbrook/doseline/internal/db"
	"github.com/hazelbrook/doseline/internal/models"
	"github.com/hazelbrook/doseline/internal/services"
)

var (
	errRoomAccessDenied = errors.New("room access denied")
	errInvalidBody      = errors.New("invalid request body")
	errInvalidDate      = errors.New("date must be YYYY-MM-DD")
)

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

func parseIntParam(c *fiber.Ctx, name string) (int, error) {
	return strconv.Atoi(c.Params(name))
}

func parseDateParam(raw string, location *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", raw, location)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

// serviceError maps sentinel service errors onto HTTP statuses; anything
// unmapped is a 500 so data bugs surface loudly in logs rather than as
// silent 4xx noise.
func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case db.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrTransferPendingExists),
		errors.Is(err, services.ErrTransferNotPending):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrTransferExpired):
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrRoomLimitReached):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotRoomOwner),
		errors.Is(err, services.ErrNotTransferRecipient),
		errors.Is(err, services.ErrNotTransferInitiator),
		errors.Is(err, services.ErrOwnerCannotBeLeft),
		errors.Is(err, errRoomAccessDenied):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInviteCodeUnknown),
		errors.Is(err, services.ErrMemberNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrRoomNameRequired),
		errors.Is(err, services.ErrInvalidReminder),
		errors.Is(err, services.ErrPatientNameRequired),
		errors.Is(err, services.ErrCycleDatesInverted),
		errors.Is(err, services.ErrMissedDateOutside),
		errors.Is(err, services.ErrItemNameRequired),
		errors.Is(err, services.ErrUnknownCategory),
		errors.Is(err, services.ErrUnknownScheduleType),
		errors.Is(err, services.ErrEmptyWeekdaySet),
		errors.Is(err, services.ErrInvalidWeekday),
		errors.Is(err, services.ErrScheduleStartRequired),
		errors.Is(err, services.ErrDoseConflict),
		errors.Is(err, services.ErrInvalidWeekNumber),
		errors.Is(err, services.ErrNoSymptoms),
		errors.Is(err, services.ErrUnknownSymptom),
		errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrTransferToSelf):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

// requireRoomMember loads the room and verifies the user is an active member.
func (handler *Handler) requireRoomMember(roomID uint, user *models.User) (models.Room, models.RoomMember, error) {
	room, err := handler.roomService.FindRoom(roomID)
	if err != nil {
		return models.Room{}, models.RoomMember{}, err
	}
	member, found, err := handler.roomService.Membership(roomID, user.ID)
	if err != nil {
		return models.Room{}, models.RoomMember{}, err
	}
	if !found || !member.IsActive {
		return models.Room{}, models.RoomMember{}, errRoomAccessDenied
	}
	return room, member, nil
}

// requireCycleAccess resolves a cycle and checks membership of its room.
func (handler *Handler) requireCycleAccess(cycleID uint, user *models.User) (models.Cycle, models.Room, models.RoomMember, error) {
	cycle, err := handler.cycleService.FindCycle(cycleID)
	if err != nil {
		return models.Cycle{}, models.Room{}, models.RoomMember{}, err
	}
	room, member, err := handler.requireRoomMember(cycle.RoomID, user)
	if err != nil {
		return models.Cycle{}, models.Room{}, models.RoomMember{}, err
	}
	return cycle, room, member, nil
}
