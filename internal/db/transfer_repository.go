package db

import (
	"time"

	"github.com/hazelbrook/doseline/internal/models"
	"gorm.io/gorm"
)

type TransferRepository struct {
	database *gorm.DB
}

func NewTransferRepository(database *gorm.DB) *TransferRepository {
	return &TransferRepository{database: database}
}

func (repo *TransferRepository) Create(request *models.TransferRequest) error {
	return repo.database.Create(request).Error
}

func (repo *TransferRepository) Save(request *models.TransferRequest) error {
	return repo.database.Save(request).Error
}

func (repo *TransferRepository) FindByToken(token string) (models.TransferRequest, error) {
	var request models.TransferRequest
	if err := repo.database.Where("token = ?", token).First(&request).Error; err != nil {
		return models.TransferRequest{}, err
	}
	return request, nil
}

func (repo *TransferRepository) ExistsPendingForRoom(roomID uint) (bool, error) {
	var matched int64
	err := repo.database.Model(&models.TransferRequest{}).
		Where("room_id = ? AND status = ?", roomID, models.TransferPending).
		Count(&matched).Error
	return matched > 0, err
}

func (repo *TransferRepository) ListForUser(userID uint) ([]models.TransferRequest, error) {
	requests := make([]models.TransferRequest, 0)
	err := repo.database.
		Where("recipient_id = ? OR initiator_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (repo *TransferRepository) ListPendingExpiredBefore(now time.Time) ([]models.TransferRequest, error) {
	requests := make([]models.TransferRequest, 0)
	err := repo.database.
		Where("status = ? AND expires_at < ?", models.TransferPending, now).
		Find(&requests).Error
	return requests, err
}

func (repo *TransferRepository) ListAwaitingPlanByRecipient(userID uint) ([]models.TransferRequest, error) {
	requests := make([]models.TransferRequest, 0)
	err := repo.database.
		Where("status = ? AND recipient_id = ?", models.TransferAcceptedPendingPlan, userID).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}
