package db

import (
	"github.com/hazelbrook/doseline/internal/models"
	"gorm.io/gorm"
)

type RoomRepository struct {
	database *gorm.DB
}

func NewRoomRepository(database *gorm.DB) *RoomRepository {
	return &RoomRepository{database: database}
}

func (repo *RoomRepository) Create(room *models.Room) error {
	return repo.database.Create(room).Error
}

func (repo *RoomRepository) Save(room *models.Room) error {
	return repo.database.Save(room).Error
}

func (repo *RoomRepository) FindByID(roomID uint) (models.Room, error) {
	var room models.Room
	if err := repo.database.First(&room, roomID).Error; err != nil {
		return models.Room{}, err
	}
	return room, nil
}

func (repo *RoomRepository) FindByInviteCode(code string) (models.Room, error) {
	var room models.Room
	if err := repo.database.Where("invite_code = ?", code).First(&room).Error; err != nil {
		return models.Room{}, err
	}
	return room, nil
}

func (repo *RoomRepository) CountOwnedBy(userID uint) (int, error) {
	var count int64
	if err := repo.database.Model(&models.Room{}).
		Where("owner_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (repo *RoomRepository) ListForUser(userID uint) ([]models.Room, error) {
	rooms := make([]models.Room, 0)
	err := repo.database.
		Joins("JOIN room_members ON room_members.room_id = rooms.id").
		Where("room_members.user_id = ? AND room_members.is_active = ?", userID, true).
		Order("rooms.created_at ASC").
		Find(&rooms).Error
	return rooms, err
}

func (repo *RoomRepository) AddMember(member *models.RoomMember) error {
	return repo.database.Create(member).Error
}

func (repo *RoomRepository) SaveMember(member *models.RoomMember) error {
	return repo.database.Save(member).Error
}

func (repo *RoomRepository) FindMember(roomID uint, userID uint) (models.RoomMember, bool, error) {
	var member models.RoomMember
	err := repo.database.
		Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&member).Error
	if IsNotFound(err) {
		return models.RoomMember{}, false, nil
	}
	if err != nil {
		return models.RoomMember{}, false, err
	}
	return member, true, nil
}

func (repo *RoomRepository) ListMembers(roomID uint) ([]models.RoomMember, error) {
	members := make([]models.RoomMember, 0)
	err := repo.database.
		Where("room_id = ?", roomID).
		Order("joined_at ASC").
		Find(&members).Error
	return members, err
}

func (repo *RoomRepository) FindSettings(roomID uint, userID uint) (models.RoomSettings, bool, error) {
	var settings models.RoomSettings
	err := repo.database.
		Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&settings).Error
	if IsNotFound(err) {
		return models.RoomSettings{}, false, nil
	}
	if err != nil {
		return models.RoomSettings{}, false, err
	}
	return settings, true, nil
}

func (repo *RoomRepository) SaveSettings(settings *models.RoomSettings) error {
	return repo.database.Save(settings).Error
}

func (repo *RoomRepository) ListEnabledReminderSettings() ([]models.RoomSettings, error) {
	settings := make([]models.RoomSettings, 0)
	err := repo.database.
		Where("reminders_enabled = ?", true).
		Find(&settings).Error
	return settings, err
}
