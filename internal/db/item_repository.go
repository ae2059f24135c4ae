package db

import (
	"github.com/hazelbrook/doseline/internal/models"
	"gorm.io/gorm"
)

type ItemRepository struct {
	database *gorm.DB
}

func NewItemRepository(database *gorm.DB) *ItemRepository {
	return &ItemRepository{database: database}
}

func (repo *ItemRepository) Create(item *models.Item) error {
	return repo.database.Create(item).Error
}

func (repo *ItemRepository) Save(item *models.Item) error {
	return repo.database.Save(item).Error
}

func (repo *ItemRepository) Delete(itemID uint) error {
	return repo.database.Delete(&models.Item{}, itemID).Error
}

func (repo *ItemRepository) FindByID(itemID uint) (models.Item, error) {
	var item models.Item
	if err := repo.database.Preload("WeeklyDoses").First(&item, itemID).Error; err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (repo *ItemRepository) ListByCycle(cycleID uint) ([]models.Item, error) {
	items := make([]models.Item, 0)
	err := repo.database.
		Preload("WeeklyDoses").
		Where("cycle_id = ?", cycleID).
		Order("display_order ASC, id ASC").
		Find(&items).Error
	return items, err
}

// ReplaceWeeklyDoses swaps the whole weekly table of an item; the mobile
// client always sends the full table on edit.
func (repo *ItemRepository) ReplaceWeeklyDoses(itemID uint, doses []models.WeeklyDose) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", itemID).Delete(&models.WeeklyDose{}).Error; err != nil {
			return err
		}
		for index := range doses {
			doses[index].ID = 0
			doses[index].ItemID = itemID
			if err := tx.Create(&doses[index]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *ItemRepository) UpdateDisplayOrders(cycleID uint, orderedIDs []uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		for position, itemID := range orderedIDs {
			if err := tx.Model(&models.Item{}).
				Where("id = ? AND cycle_id = ?", itemID, cycleID).
				Update("display_order", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
