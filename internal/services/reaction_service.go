package services

import (
	"errors"
	"strings"
	"time"

	"github.com/hazelbrook/doseline/internal/models"
)

var (
	ErrNoSymptoms     = errors.New("at least one symptom required")
	ErrUnknownSymptom = errors.New("unknown symptom tag")
)

type ReactionStore interface {
	Create(reaction *models.Reaction) error
	Delete(reactionID uint) error
	FindByID(reactionID uint) (models.Reaction, error)
	ListByCycle(cycleID uint) ([]models.Reaction, error)
}

type ReactionService struct {
	reactions ReactionStore
	location  *time.Location
}

func NewReactionService(reactions ReactionStore, location *time.Location) *ReactionService {
	if location == nil {
		location = time.Local
	}
	return &ReactionService{reactions: reactions, location: location}
}

type ReactionInput struct {
	Date         time.Time
	ItemID       *uint
	Symptoms     []string
	OtherSymptom string
	Description  string
}

// LogReaction records an adverse event. ItemID nil means "unknown cause".
// Symptom tags must come from the builtin catalog; anything else goes into
// the free-text other field.
func (service *ReactionService) LogReaction(cycleID uint, userID uint, input ReactionInput) (models.Reaction, error) {
	other := strings.TrimSpace(input.OtherSymptom)
	if len(input.Symptoms) == 0 && other == "" {
		return models.Reaction{}, ErrNoSymptoms
	}
	for _, symptom := range input.Symptoms {
		if !models.KnownSymptom(symptom) {
			return models.Reaction{}, ErrUnknownSymptom
		}
	}

	dayStart, _ := DayRange(input.Date, service.location)
	reaction := models.Reaction{
		CycleID:      cycleID,
		ItemID:       input.ItemID,
		UserID:       userID,
		Date:         dayStart,
		Symptoms:     input.Symptoms,
		OtherSymptom: other,
		Description:  strings.TrimSpace(input.Description),
	}
	if err := service.reactions.Create(&reaction); err != nil {
		return models.Reaction{}, err
	}
	return reaction, nil
}

func (service *ReactionService) ListReactions(cycleID uint) ([]models.Reaction, error) {
	return service.reactions.ListByCycle(cycleID)
}

func (service *ReactionService) FindReaction(reactionID uint) (models.Reaction, error) {
	return service.reactions.FindByID(reactionID)
}

func (service *ReactionService) DeleteReaction(reactionID uint) error {
	return service.reactions.Delete(reactionID)
}
