package services

import (
	"errors"
	"time"

	"github.com/hazelbrook/doseline/internal/models"
)

var errFakeNotFound = errors.New("not found")

type fakeTransferStore struct {
	requests []models.TransferRequest
	nextID   uint
}

func (store *fakeTransferStore) Create(request *models.TransferRequest) error {
	store.nextID++
	request.ID = store.nextID
	store.requests = append(store.requests, *request)
	return nil
}

func (store *fakeTransferStore) Save(request *models.TransferRequest) error {
	for index := range store.requests {
		if store.requests[index].ID == request.ID {
			store.requests[index] = *request
			return nil
		}
	}
	return errFakeNotFound
}

func (store *fakeTransferStore) FindByToken(token string) (models.TransferRequest, error) {
	for _, request := range store.requests {
		if request.Token == token {
			return request, nil
		}
	}
	return models.TransferRequest{}, errFakeNotFound
}

func (store *fakeTransferStore) ExistsPendingForRoom(roomID uint) (bool, error) {
	for _, request := range store.requests {
		if request.RoomID == roomID && request.Status == models.TransferPending {
			return true, nil
		}
	}
	return false, nil
}

func (store *fakeTransferStore) ListForUser(userID uint) ([]models.TransferRequest, error) {
	matched := make([]models.TransferRequest, 0)
	for _, request := range store.requests {
		if request.RecipientID == userID || request.InitiatorID == userID {
			matched = append(matched, request)
		}
	}
	return matched, nil
}

func (store *fakeTransferStore) ListPendingExpiredBefore(now time.Time) ([]models.TransferRequest, error) {
	matched := make([]models.TransferRequest, 0)
	for _, request := range store.requests {
		if request.Status == models.TransferPending && request.ExpiresAt.Before(now) {
			matched = append(matched, request)
		}
	}
	return matched, nil
}

func (store *fakeTransferStore) ListAwaitingPlanByRecipient(userID uint) ([]models.TransferRequest, error) {
	matched := make([]models.TransferRequest, 0)
	for _, request := range store.requests {
		if request.Status == models.TransferAcceptedPendingPlan && request.RecipientID == userID {
			matched = append(matched, request)
		}
	}
	return matched, nil
}

type fakeRoomStore struct {
	rooms    []models.Room
	members  []models.RoomMember
	settings []models.RoomSettings
	nextID   uint
}

func (store *fakeRoomStore) Create(room *models.Room) error {
	store.nextID++
	room.ID = store.nextID
	store.rooms = append(store.rooms, *room)
	return nil
}

func (store *fakeRoomStore) Save(room *models.Room) error {
	for index := range store.rooms {
		if store.rooms[index].ID == room.ID {
			store.rooms[index] = *room
			return nil
		}
	}
	return errFakeNotFound
}

func (store *fakeRoomStore) FindByID(roomID uint) (models.Room, error) {
	for _, room := range store.rooms {
		if room.ID == roomID {
			return room, nil
		}
	}
	return models.Room{}, errFakeNotFound
}

func (store *fakeRoomStore) FindByInviteCode(code string) (models.Room, error) {
	for _, room := range store.rooms {
		if room.InviteCode == code {
			return room, nil
		}
	}
	return models.Room{}, errFakeNotFound
}

func (store *fakeRoomStore) CountOwnedBy(userID uint) (int, error) {
	count := 0
	for _, room := range store.rooms {
		if room.OwnerID == userID {
			count++
		}
	}
	return count, nil
}

func (store *fakeRoomStore) ListForUser(userID uint) ([]models.Room, error) {
	matched := make([]models.Room, 0)
	for _, member := range store.members {
		if member.UserID != userID || !member.IsActive {
			continue
		}
		for _, room := range store.rooms {
			if room.ID == member.RoomID {
				matched = append(matched, room)
			}
		}
	}
	return matched, nil
}

func (store *fakeRoomStore) AddMember(member *models.RoomMember) error {
	store.nextID++
	member.ID = store.nextID
	store.members = append(store.members, *member)
	return nil
}

func (store *fakeRoomStore) SaveMember(member *models.RoomMember) error {
	for index := range store.members {
		if store.members[index].ID == member.ID {
			store.members[index] = *member
			return nil
		}
	}
	return errFakeNotFound
}

func (store *fakeRoomStore) FindMember(roomID uint, userID uint) (models.RoomMember, bool, error) {
	for _, member := range store.members {
		if member.RoomID == roomID && member.UserID == userID {
			return member, true, nil
		}
	}
	return models.RoomMember{}, false, nil
}

func (store *fakeRoomStore) ListMembers(roomID uint) ([]models.RoomMember, error) {
	matched := make([]models.RoomMember, 0)
	for _, member := range store.members {
		if member.RoomID == roomID {
			matched = append(matched, member)
		}
	}
	return matched, nil
}

func (store *fakeRoomStore) FindSettings(roomID uint, userID uint) (models.RoomSettings, bool, error) {
	for _, settings := range store.settings {
		if settings.RoomID == roomID && settings.UserID == userID {
			return settings, true, nil
		}
	}
	return models.RoomSettings{}, false, nil
}

func (store *fakeRoomStore) SaveSettings(settings *models.RoomSettings) error {
	for index := range store.settings {
		if store.settings[index].RoomID == settings.RoomID && store.settings[index].UserID == settings.UserID {
			store.settings[index] = *settings
			return nil
		}
	}
	store.nextID++
	settings.ID = store.nextID
	store.settings = append(store.settings, *settings)
	return nil
}

type fakeUserStore struct {
	users []models.User
}

func (store *fakeUserStore) FindByID(userID uint) (models.User, error) {
	for _, user := range store.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, errFakeNotFound
}

type fakeCycleStore struct {
	cycles []models.Cycle
	missed []models.MissedDose
	nextID uint
}

func (store *fakeCycleStore) Create(cycle *models.Cycle) error {
	store.nextID++
	cycle.ID = store.nextID
	store.cycles = append(store.cycles, *cycle)
	return nil
}

func (store *fakeCycleStore) Save(cycle *models.Cycle) error {
	for index := range store.cycles {
		if store.cycles[index].ID == cycle.ID {
			store.cycles[index] = *cycle
			return nil
		}
	}
	return errFakeNotFound
}

func (store *fakeCycleStore) FindByID(cycleID uint) (models.Cycle, error) {
	for _, cycle := range store.cycles {
		if cycle.ID == cycleID {
			return cycle, nil
		}
	}
	return models.Cycle{}, errFakeNotFound
}

func (store *fakeCycleStore) ListByRoom(roomID uint) ([]models.Cycle, error) {
	matched := make([]models.Cycle, 0)
	for _, cycle := range store.cycles {
		if cycle.RoomID == roomID {
			matched = append(matched, cycle)
		}
	}
	return matched, nil
}

func (store *fakeCycleStore) MaxNumberForRoom(roomID uint) (int, error) {
	highest := 0
	for _, cycle := range store.cycles {
		if cycle.RoomID == roomID && cycle.Number > highest {
			highest = cycle.Number
		}
	}
	return highest, nil
}

func (store *fakeCycleStore) CreateMissedDose(missed *models.MissedDose) error {
	store.nextID++
	missed.ID = store.nextID
	store.missed = append(store.missed, *missed)
	return nil
}

func (store *fakeCycleStore) FindMissedDose(cycleID uint, dayStart time.Time, dayEnd time.Time) (models.MissedDose, bool, error) {
	for _, missed := range store.missed {
		if missed.CycleID == cycleID && !missed.Date.Before(dayStart) && !missed.Date.After(dayEnd) {
			return missed, true, nil
		}
	}
	return models.MissedDose{}, false, nil
}

func (store *fakeCycleStore) DeleteMissedDose(missedID uint) error {
	for index, missed := range store.missed {
		if missed.ID == missedID {
			store.missed = append(store.missed[:index], store.missed[index+1:]...)
			return nil
		}
	}
	return errFakeNotFound
}

func (store *fakeCycleStore) ListMissedDoses(cycleID uint) ([]models.MissedDose, error) {
	matched := make([]models.MissedDose, 0)
	for _, missed := range store.missed {
		if missed.CycleID == cycleID {
			matched = append(matched, missed)
		}
	}
	return matched, nil
}

type fakeItemStore struct {
	items []models.Item
}

func (store *fakeItemStore) ListByCycle(cycleID uint) ([]models.Item, error) {
	matched := make([]models.Item, 0)
	for _, item := range store.items {
		if item.CycleID == cycleID {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

type fakeLogStore struct {
	entries []models.ConsumptionLog
}

func (store *fakeLogStore) ListByCycleRange(cycleID uint, from *time.Time, to *time.Time) ([]models.ConsumptionLog, error) {
	matched := make([]models.ConsumptionLog, 0)
	for _, entry := range store.entries {
		if entry.CycleID != cycleID {
			continue
		}
		if from != nil && entry.Date.Before(*from) {
			continue
		}
		if to != nil && entry.Date.After(*to) {
			continue
		}
		matched = append(matched, entry)
	}
	return matched, nil
}
