package db

import (
	"time"

	"github.com/hazelbrook/doseline/internal/models"
	"gorm.io/gorm"
)

type ConsumptionRepository struct {
	database *gorm.DB
}

func NewConsumptionRepository(database *gorm.DB) *ConsumptionRepository {
	return &ConsumptionRepository{database: database}
}

func (repo *ConsumptionRepository) Create(entry *models.ConsumptionLog) error {
	return repo.database.Create(entry).Error
}

func (repo *ConsumptionRepository) Delete(entryID uint) error {
	return repo.database.Delete(&models.ConsumptionLog{}, entryID).Error
}

func (repo *ConsumptionRepository) FindByItemDayUser(itemID uint, dayStart time.Time, dayEnd time.Time, userID uint) (models.ConsumptionLog, bool, error) {
	var entry models.ConsumptionLog
	err := repo.database.
		Where("item_id = ? AND user_id = ? AND date >= ? AND date <= ?", itemID, userID, dayStart, dayEnd).
		First(&entry).Error
	if IsNotFound(err) {
		return models.ConsumptionLog{}, false, nil
	}
	if err != nil {
		return models.ConsumptionLog{}, false, err
	}
	return entry, true, nil
}

func (repo *ConsumptionRepository) ListByCycleRange(cycleID uint, from *time.Time, to *time.Time) ([]models.ConsumptionLog, error) {
	query := repo.database.Where("cycle_id = ?", cycleID)
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}

	entries := make([]models.ConsumptionLog, 0)
	err := query.Order("date ASC, taken_at ASC").Find(&entries).Error
	return entries, err
}
