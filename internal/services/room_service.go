package services

import (
	"errors"
	"strings"
	"time"

	"github.com/hazelbrook/doseline/internal/models"
	"github.com/hazelbrook/doseline/internal/security"
)

var (
	ErrRoomNameRequired   = errors.New("room name required")
	ErrRoomLimitReached   = errors.New("room limit reached")
	ErrInviteCodeUnknown  = errors.New("invite code not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrOwnerCannotBeLeft  = errors.New("owner cannot be deactivated")
	ErrInvalidReminder    = errors.New("reminder time must be HH:MM")
)

type RoomStore interface {
	Create(room *models.Room) error
	Save(room *models.Room) error
	FindByID(roomID uint) (models.Room, error)
	FindByInviteCode(code string) (models.Room, error)
	CountOwnedBy(userID uint) (int, error)
	ListForUser(userID uint) ([]models.Room, error)
	AddMember(member *models.RoomMember) error
	SaveMember(member *models.RoomMember) error
	FindMember(roomID uint, userID uint) (models.RoomMember, bool, error)
	ListMembers(roomID uint) ([]models.RoomMember, error)
	FindSettings(roomID uint, userID uint) (models.RoomSettings, bool, error)
	SaveSettings(settings *models.RoomSettings) error
}

type RoomService struct {
	rooms RoomStore
}

func NewRoomService(rooms RoomStore) *RoomService {
	return &RoomService{rooms: rooms}
}

// CreateRoom creates a room owned by the user, provided the subscription gate
// allows one more.
func (service *RoomService) CreateRoom(owner models.User, name string, now time.Time) (models.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Room{}, ErrRoomNameRequired
	}

	ownedRooms, err := service.rooms.CountOwnedBy(owner.ID)
	if err != nil {
		return models.Room{}, err
	}
	if allowed, _ := CanAcquireRoom(owner.PlanID, ownedRooms, owner.GracePeriod); !allowed {
		return models.Room{}, ErrRoomLimitReached
	}

	code, err := security.NewInviteCode()
	if err != nil {
		return models.Room{}, err
	}

	room := models.Room{
		Name:       name,
		OwnerID:    owner.ID,
		InviteCode: code,
		CreatedAt:  now,
	}
	if err := service.rooms.Create(&room); err != nil {
		return models.Room{}, err
	}

	member := models.RoomMember{
		RoomID:   room.ID,
		UserID:   owner.ID,
		IsAdmin:  true,
		IsActive: true,
		JoinedAt: now,
	}
	if err := service.rooms.AddMember(&member); err != nil {
		return models.Room{}, err
	}
	return room, nil
}

// JoinByInviteCode adds the user to the room behind the code. Re-joining an
// existing membership reactivates it instead of duplicating the row.
func (service *RoomService) JoinByInviteCode(user models.User, code string, now time.Time) (models.Room, error) {
	room, err := service.rooms.FindByInviteCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return models.Room{}, ErrInviteCodeUnknown
	}

	member, found, err := service.rooms.FindMember(room.ID, user.ID)
	if err != nil {
		return models.Room{}, err
	}
	if found {
		if !member.IsActive {
			member.IsActive = true
			if err := service.rooms.SaveMember(&member); err != nil {
				return models.Room{}, err
			}
		}
		return room, nil
	}

	newMember := models.RoomMember{
		RoomID:   room.ID,
		UserID:   user.ID,
		IsAdmin:  false,
		IsActive: true,
		JoinedAt: now,
	}
	if err := service.rooms.AddMember(&newMember); err != nil {
		return models.Room{}, err
	}
	return room, nil
}

func (service *RoomService) ListRooms(userID uint) ([]models.Room, error) {
	return service.rooms.ListForUser(userID)
}

func (service *RoomService) FindRoom(roomID uint) (models.Room, error) {
	return service.rooms.FindByID(roomID)
}

func (service *RoomService) ListMembers(roomID uint) ([]models.RoomMember, error) {
	return service.rooms.ListMembers(roomID)
}

func (service *RoomService) Membership(roomID uint, userID uint) (models.RoomMember, bool, error) {
	return service.rooms.FindMember(roomID, userID)
}

func (service *RoomService) SetMemberActive(roomID uint, userID uint, active bool) (models.RoomMember, error) {
	room, err := service.rooms.FindByID(roomID)
	if err != nil {
		return models.RoomMember{}, err
	}
	if !active && room.OwnerID == userID {
		return models.RoomMember{}, ErrOwnerCannotBeLeft
	}

	member, found, err := service.rooms.FindMember(roomID, userID)
	if err != nil {
		return models.RoomMember{}, err
	}
	if !found {
		return models.RoomMember{}, ErrMemberNotFound
	}

	member.IsActive = active
	if err := service.rooms.SaveMember(&member); err != nil {
		return models.RoomMember{}, err
	}
	return member, nil
}

// RegenerateInviteCode invalidates the old code, for when it leaked.
func (service *RoomService) RegenerateInviteCode(roomID uint) (models.Room, error) {
	room, err := service.rooms.FindByID(roomID)
	if err != nil {
		return models.Room{}, err
	}

	code, err := security.NewInviteCode()
	if err != nil {
		return models.Room{}, err
	}
	room.InviteCode = code
	if err := service.rooms.Save(&room); err != nil {
		return models.Room{}, err
	}
	return room, nil
}

type RoomSettingsInput struct {
	RemindersEnabled bool
	ReminderTime     string
	TreatmentTimer   bool
}

func (service *RoomService) Settings(roomID uint, userID uint) (models.RoomSettings, error) {
	settings, found, err := service.rooms.FindSettings(roomID, userID)
	if err != nil {
		return models.RoomSettings{}, err
	}
	if !found {
		return models.RoomSettings{
			RoomID:       roomID,
			UserID:       userID,
			ReminderTime: "08:00",
		}, nil
	}
	return settings, nil
}

func (service *RoomService) UpsertSettings(roomID uint, userID uint, input RoomSettingsInput) (models.RoomSettings, error) {
	if !validReminderTime(input.ReminderTime) {
		return models.RoomSettings{}, ErrInvalidReminder
	}

	settings, found, err := service.rooms.FindSettings(roomID, userID)
	if err != nil {
		return models.RoomSettings{}, err
	}
	if !found {
		settings = models.RoomSettings{RoomID: roomID, UserID: userID}
	}

	settings.RemindersEnabled = input.RemindersEnabled
	settings.ReminderTime = input.ReminderTime
	settings.TreatmentTimer = input.TreatmentTimer
	if err := service.rooms.SaveSettings(&settings); err != nil {
		return models.RoomSettings{}, err
	}
	return settings, nil
}

type SubscriptionSummary struct {
	PlanID        string `json:"plan_id"`
	EffectivePlan string `json:"effective_plan"`
	GracePeriod   bool   `json:"grace_period"`
	RoomLimit     int    `json:"room_limit"`
	OwnedRooms    int    `json:"owned_rooms"`
	CanCreateRoom bool   `json:"can_create_room"`
}

func (service *RoomService) Subscription(user models.User) (SubscriptionSummary, error) {
	ownedRooms, err := service.rooms.CountOwnedBy(user.ID)
	if err != nil {
		return SubscriptionSummary{}, err
	}

	allowed, limit := CanAcquireRoom(user.PlanID, ownedRooms, user.GracePeriod)
	return SubscriptionSummary{
		PlanID:        user.PlanID,
		EffectivePlan: EffectivePlan(user.PlanID, user.GracePeriod),
		GracePeriod:   user.GracePeriod,
		RoomLimit:     limit,
		OwnedRooms:    ownedRooms,
		CanCreateRoom: allowed,
	}, nil
}

func validReminderTime(raw string) bool {
	if _, err := time.Parse("15:04", raw); err != nil {
		return false
	}
	return true
}
