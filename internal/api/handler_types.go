package api

import (
	"time"

	"github.com/hazelbrook/doseline/internal/db"
	"github.com/hazelbrook/doseline/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL  = 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	cookieSecure bool
	location     *time.Location

	repositories       *db.Repositories
	authService        *services.AuthService
	roomService        *services.RoomService
	cycleService       *services.CycleService
	itemService        *services.ItemService
	consumptionService *services.ConsumptionService
	reactionService    *services.ReactionService
	transferService    *services.TransferService
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location) *Handler {
	if location == nil {
		location = time.Local
	}

	handler := &Handler{
		db:        database,
		secretKey: []byte(secretKey),
		location:  location,
	}
	return handler.withDependencies(database)
}

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.roomService = services.NewRoomService(handler.repositories.Rooms)
	handler.cycleService = services.NewCycleService(
		handler.repositories.Cycles,
		handler.repositories.Items,
		handler.repositories.Consumptions,
		handler.location,
	)
	handler.itemService = services.NewItemService(handler.repositories.Items)
	handler.consumptionService = services.NewConsumptionService(handler.repositories.Consumptions, handler.location)
	handler.reactionService = services.NewReactionService(handler.repositories.Reactions, handler.location)
	handler.transferService = services.NewTransferService(
		handler.repositories.Transfers,
		handler.repositories.Rooms,
		handler.repositories.Users,
	)
	return handler
}

// TransferService exposes the transfer workflow for background sweeps.
func (handler *Handler) TransferService() *services.TransferService {
	return handler.transferService
}
