package db

import (
	"time"

	"github.com/hazelbrook/doseline/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

func (repo *CycleRepository) Create(cycle *models.Cycle) error {
	return repo.database.Create(cycle).Error
}

func (repo *CycleRepository) Save(cycle *models.Cycle) error {
	return repo.database.Save(cycle).Error
}

func (repo *CycleRepository) FindByID(cycleID uint) (models.Cycle, error) {
	var cycle models.Cycle
	if err := repo.database.First(&cycle, cycleID).Error; err != nil {
		return models.Cycle{}, err
	}
	return cycle, nil
}

func (repo *CycleRepository) ListByRoom(roomID uint) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	err := repo.database.
		Where("room_id = ?", roomID).
		Order("number ASC").
		Find(&cycles).Error
	return cycles, err
}

func (repo *CycleRepository) MaxNumberForRoom(roomID uint) (int, error) {
	var row struct {
		Max *int
	}
	err := repo.database.Model(&models.Cycle{}).
		Select("MAX(number) AS max").
		Where("room_id = ?", roomID).
		Scan(&row).Error
	if err != nil {
		return 0, err
	}
	if row.Max == nil {
		return 0, nil
	}
	return *row.Max, nil
}

func (repo *CycleRepository) CreateMissedDose(missed *models.MissedDose) error {
	return repo.database.Create(missed).Error
}

func (repo *CycleRepository) FindMissedDose(cycleID uint, dayStart time.Time, dayEnd time.Time) (models.MissedDose, bool, error) {
	var missed models.MissedDose
	err := repo.database.
		Where("cycle_id = ? AND date >= ? AND date <= ?", cycleID, dayStart, dayEnd).
		First(&missed).Error
	if IsNotFound(err) {
		return models.MissedDose{}, false, nil
	}
	if err != nil {
		return models.MissedDose{}, false, err
	}
	return missed, true, nil
}

func (repo *CycleRepository) DeleteMissedDose(missedID uint) error {
	return repo.database.Delete(&models.MissedDose{}, missedID).Error
}

func (repo *CycleRepository) ListMissedDoses(cycleID uint) ([]models.MissedDose, error) {
	missed := make([]models.MissedDose, 0)
	err := repo.database.
		Where("cycle_id = ?", cycleID).
		Order("date ASC").
		Find(&missed).Error
	return missed, err
}
