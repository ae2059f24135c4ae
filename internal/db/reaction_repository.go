package db

import (
	"github.com/hazelbrook/doseline/internal/models"
	"gorm.io/gorm"
)

type ReactionRepository struct {
	database *gorm.DB
}

func NewReactionRepository(database *gorm.DB) *ReactionRepository {
	return &ReactionRepository{database: database}
}

func (repo *ReactionRepository) Create(reaction *models.Reaction) error {
	return repo.database.Create(reaction).Error
}

func (repo *ReactionRepository) Delete(reactionID uint) error {
	return repo.database.Delete(&models.Reaction{}, reactionID).Error
}

func (repo *ReactionRepository) FindByID(reactionID uint) (models.Reaction, error) {
	var reaction models.Reaction
	if err := repo.database.First(&reaction, reactionID).Error; err != nil {
		return models.Reaction{}, err
	}
	return reaction, nil
}

func (repo *ReactionRepository) ListByCycle(cycleID uint) ([]models.Reaction, error) {
	reactions := make([]models.Reaction, 0)
	err := repo.database.
		Where("cycle_id = ?", cycleID).
		Order("date DESC, id DESC").
		Find(&reactions).Error
	return reactions, err
}
