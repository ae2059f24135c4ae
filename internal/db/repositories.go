package db

import "gorm.io/gorm"

type Repositories struct {
	Users        *UserRepository
	Rooms        *RoomRepository
	Cycles       *CycleRepository
	Items        *ItemRepository
	Consumptions *ConsumptionRepository
	Reactions    *ReactionRepository
	Transfers    *TransferRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(database),
		Rooms:        NewRoomRepository(database),
		Cycles:       NewCycleRepository(database),
		Items:        NewItemRepository(database),
		Consumptions: NewConsumptionRepository(database),
		Reactions:    NewReactionRepository(database),
		Transfers:    NewTransferRepository(database),
	}
}
