package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hazelbrook/doseline/internal/models"
	"github.com/hazelbrook/doseline/internal/services"
)

type createRoomRequest struct {
	Name string `json:"name"`
}

type joinRoomRequest struct {
	InviteCode string `json:"invite_code"`
}

type memberActiveRequest struct {
	Active bool `json:"active"`
}

type roomSettingsRequest struct {
	RemindersEnabled bool   `json:"reminders_enabled"`
	ReminderTime     string `json:"reminder_time"`
	TreatmentTimer   bool   `json:"treatment_timer"`
}

func (handler *Handler) ListRooms(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	rooms, err := handler.roomService.ListRooms(user.ID)
	if err != nil {
		return handler.serviceError(c, err)
	}

	views := make([]fiber.Map, 0, len(rooms))
	for _, room := range rooms {
		views = append(views, roomView(room, room.OwnerID == user.ID))
	}
	return c.JSON(fiber.Map{"rooms": views})
}

func (handler *Handler) CreateRoom(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	var payload createRoomRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	room, err := handler.roomService.CreateRoom(*user, payload.Name, time.Now())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"room": roomView(room, true)})
}

func (handler *Handler) JoinRoom(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	var payload joinRoomRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	room, err := handler.roomService.JoinByInviteCode(*user, payload.InviteCode, time.Now())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"room": roomView(room, room.OwnerID == user.ID)})
}

func (handler *Handler) ListRoomMembers(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	roomID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid room id")
	}
	if _, _, err := handler.requireRoomMember(roomID, user); err != nil {
		return handler.serviceError(c, err)
	}

	members, err := handler.roomService.ListMembers(roomID)
	if err != nil {
		return handler.serviceError(c, err)
	}

	views := make([]fiber.Map, 0, len(members))
	for _, member := range members {
		views = append(views, fiber.Map{
			"user_id":   member.UserID,
			"is_admin":  member.IsAdmin,
			"is_active": member.IsActive,
			"joined_at": member.JoinedAt,
		})
	}
	return c.JSON(fiber.Map{"members": views})
}

func (handler *Handler) SetMemberActive(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	roomID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid room id")
	}
	memberUserID, err := parseUintParam(c, "userID")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	_, member, err := handler.requireRoomMember(roomID, user)
	if err != nil {
		return handler.serviceError(c, err)
	}
	// Admins manage others; anyone may deactivate themselves (leave).
	if !member.IsAdmin && memberUserID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
	}

	var payload memberActiveRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	updated, err := handler.roomService.SetMemberActive(roomID, memberUserID, payload.Active)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"user_id":   updated.UserID,
		"is_active": updated.IsActive,
	})
}

func (handler *Handler) RegenerateInvite(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	roomID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid room id")
	}

	room, _, err := handler.requireRoomMember(roomID, user)
	if err != nil {
		return handler.serviceError(c, err)
	}
	if room.OwnerID != user.ID {
		return handler.serviceError(c, services.ErrNotRoomOwner)
	}

	updated, err := handler.roomService.RegenerateInviteCode(roomID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"room": roomView(updated, true)})
}

func (handler *Handler) GetRoomSettings(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	roomID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid room id")
	}
	if _, _, err := handler.requireRoomMember(roomID, user); err != nil {
		return handler.serviceError(c, err)
	}

	settings, err := handler.roomService.Settings(roomID, user.ID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"settings": settingsView(settings)})
}

func (handler *Handler) UpdateRoomSettings(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	roomID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid room id")
	}
	if _, _, err := handler.requireRoomMember(roomID, user); err != nil {
		return handler.serviceError(c, err)
	}

	var payload roomSettingsRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	settings, err := handler.roomService.UpsertSettings(roomID, user.ID, services.RoomSettingsInput{
		RemindersEnabled: payload.RemindersEnabled,
		ReminderTime:     payload.ReminderTime,
		TreatmentTimer:   payload.TreatmentTimer,
	})
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"settings": settingsView(settings)})
}

func roomView(room models.Room, isOwner bool) fiber.Map {
	view := fiber.Map{
		"id":       room.ID,
		"name":     room.Name,
		"owner_id": room.OwnerID,
		"is_owner": isOwner,
	}
	if isOwner {
		view["invite_code"] = room.InviteCode
	}
	return view
}

func settingsView(settings models.RoomSettings) fiber.Map {
	return fiber.Map{
		"room_id":           settings.RoomID,
		"reminders_enabled": settings.RemindersEnabled,
		"reminder_time":     settings.ReminderTime,
		"treatment_timer":   settings.TreatmentTimer,
	}
}
