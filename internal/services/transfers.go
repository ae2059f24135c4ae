package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hazelbrook/doseline/internal/models"
)

var (
	ErrNotRoomOwner          = errors.New("not room owner")
	ErrTransferToSelf        = errors.New("cannot transfer to yourself")
	ErrTransferPendingExists = errors.New("room already has a pending transfer")
	ErrNotTransferRecipient  = errors.New("not transfer recipient")
	ErrNotTransferInitiator  = errors.New("not transfer initiator")
	ErrTransferExpired       = errors.New("transfer request expired")
	ErrTransferNotPending    = errors.New("transfer request is not pending")
)

type TransferStore interface {
	Create(request *models.TransferRequest) error
	Save(request *models.TransferRequest) error
	FindByToken(token string) (models.TransferRequest, error)
	ExistsPendingForRoom(roomID uint) (bool, error)
	ListForUser(userID uint) ([]models.TransferRequest, error)
	ListPendingExpiredBefore(now time.Time) ([]models.TransferRequest, error)
	ListAwaitingPlanByRecipient(userID uint) ([]models.TransferRequest, error)
}

type TransferRoomStore interface {
	FindByID(roomID uint) (models.Room, error)
	Save(room *models.Room) error
	CountOwnedBy(userID uint) (int, error)
	FindMember(roomID uint, userID uint) (models.RoomMember, bool, error)
	AddMember(member *models.RoomMember) error
	SaveMember(member *models.RoomMember) error
}

type TransferUserStore interface {
	FindByID(userID uint) (models.User, error)
}

type TransferService struct {
	transfers TransferStore
	rooms     TransferRoomStore
	users     TransferUserStore
}

func NewTransferService(transfers TransferStore, rooms TransferRoomStore, users TransferUserStore) *TransferService {
	return &TransferService{
		transfers: transfers,
		rooms:     rooms,
		users:     users,
	}
}

// Propose creates a pending ownership-transfer request. One pending request
// per room at a time; the recipient has seven days to act.
func (service *TransferService) Propose(initiator models.User, roomID uint, recipientID uint, now time.Time) (models.TransferRequest, error) {
	room, err := service.rooms.FindByID(roomID)
	if err != nil {
		return models.TransferRequest{}, err
	}
	if room.OwnerID != initiator.ID {
		return models.TransferRequest{}, ErrNotRoomOwner
	}
	if recipientID == initiator.ID {
		return models.TransferRequest{}, ErrTransferToSelf
	}
	if _, err := service.users.FindByID(recipientID); err != nil {
		return models.TransferRequest{}, err
	}

	pendingExists, err := service.transfers.ExistsPendingForRoom(roomID)
	if err != nil {
		return models.TransferRequest{}, err
	}
	if pendingExists {
		return models.TransferRequest{}, ErrTransferPendingExists
	}

	request := models.TransferRequest{
		Token:       uuid.NewString(),
		RoomID:      roomID,
		InitiatorID: initiator.ID,
		RecipientID: recipientID,
		Status:      models.TransferPending,
		CreatedAt:   now,
		ExpiresAt:   now.Add(models.TransferRequestTTL),
	}
	if err := service.transfers.Create(&request); err != nil {
		return models.TransferRequest{}, err
	}
	return request, nil
}

// Accept moves a pending request to accepted when the recipient's room gate
// is open, otherwise parks it as accepted_pending_subscription until the
// recipient upgrades.
func (service *TransferService) Accept(token string, recipient models.User, now time.Time) (models.TransferRequest, error) {
	request, err := service.transfers.FindByToken(token)
	if err != nil {
		return models.TransferRequest{}, err
	}
	if request.RecipientID != recipient.ID {
		return models.TransferRequest{}, ErrNotTransferRecipient
	}
	if err := service.failIfNotActionable(&request, now); err != nil {
		return request, err
	}

	ownedRooms, err := service.rooms.CountOwnedBy(recipient.ID)
	if err != nil {
		return models.TransferRequest{}, err
	}

	allowed, _ := CanAcquireRoom(recipient.PlanID, ownedRooms, recipient.GracePeriod)
	if !allowed {
		request.Status = models.TransferAcceptedPendingPlan
		if err := service.transfers.Save(&request); err != nil {
			return models.TransferRequest{}, err
		}
		return request, nil
	}

	if err := service.completeTransfer(&request, recipient, now); err != nil {
		return models.TransferRequest{}, err
	}
	return request, nil
}

func (service *TransferService) Decline(token string, recipient models.User, now time.Time) (models.TransferRequest, error) {
	request, err := service.transfers.FindByToken(token)
	if err != nil {
		return models.TransferRequest{}, err
	}
	if request.RecipientID != recipient.ID {
		return models.TransferRequest{}, ErrNotTransferRecipient
	}
	if err := service.failIfNotActionable(&request, now); err != nil {
		return request, err
	}

	request.Status = models.TransferDeclined
	if err := service.transfers.Save(&request); err != nil {
		return models.TransferRequest{}, err
	}
	return request, nil
}

func (service *TransferService) Cancel(token string, initiator models.User, now time.Time) (models.TransferRequest, error) {
	request, err := service.transfers.FindByToken(token)
	if err != nil {
		return models.TransferRequest{}, err
	}
	if request.InitiatorID != initiator.ID {
		return models.TransferRequest{}, ErrNotTransferInitiator
	}
	if err := service.failIfNotActionable(&request, now); err != nil {
		return request, err
	}

	request.Status = models.TransferCancelled
	if err := service.transfers.Save(&request); err != nil {
		return models.TransferRequest{}, err
	}
	return request, nil
}

func (service *TransferService) ListForUser(userID uint) ([]models.TransferRequest, error) {
	return service.transfers.ListForUser(userID)
}

// PromoteAwaitingPlan completes parked requests whose recipient's room gate
// has opened, called after any subscription change.
func (service *TransferService) PromoteAwaitingPlan(recipient models.User, now time.Time) ([]models.TransferRequest, error) {
	parked, err := service.transfers.ListAwaitingPlanByRecipient(recipient.ID)
	if err != nil {
		return nil, err
	}

	promoted := make([]models.TransferRequest, 0, len(parked))
	for _, request := range parked {
		ownedRooms, err := service.rooms.CountOwnedBy(recipient.ID)
		if err != nil {
			return promoted, err
		}
		allowed, _ := CanAcquireRoom(recipient.PlanID, ownedRooms, recipient.GracePeriod)
		if !allowed {
			break
		}
		if err := service.completeTransfer(&request, recipient, now); err != nil {
			return promoted, err
		}
		promoted = append(promoted, request)
	}
	return promoted, nil
}

// ExpireOverdue stamps lapsed pending requests as expired. Returns how many
// rows were updated.
func (service *TransferService) ExpireOverdue(now time.Time) (int, error) {
	overdue, err := service.transfers.ListPendingExpiredBefore(now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, request := range overdue {
		request.Status = models.TransferExpired
		if err := service.transfers.Save(&request); err != nil {
			log.Printf("transfers: expire request %s failed: %v", request.Token, err)
			continue
		}
		expired++
	}
	return expired, nil
}

func (service *TransferService) failIfNotActionable(request *models.TransferRequest, now time.Time) error {
	if request.Status == models.TransferPending && request.IsExpired(now) {
		request.Status = models.TransferExpired
		if err := service.transfers.Save(request); err != nil {
			return err
		}
		return ErrTransferExpired
	}
	if request.Status != models.TransferPending {
		return ErrTransferNotPending
	}
	return nil
}

func (service *TransferService) completeTransfer(request *models.TransferRequest, recipient models.User, now time.Time) error {
	targetStatus := models.TransferAccepted
	if !models.ValidTransferTransition(request.Status, targetStatus) {
		return ErrTransferNotPending
	}

	room, err := service.rooms.FindByID(request.RoomID)
	if err != nil {
		return err
	}

	room.OwnerID = recipient.ID
	if err := service.rooms.Save(&room); err != nil {
		return err
	}

	member, found, err := service.rooms.FindMember(room.ID, recipient.ID)
	if err != nil {
		return err
	}
	if found {
		member.IsAdmin = true
		member.IsActive = true
		if err := service.rooms.SaveMember(&member); err != nil {
			return err
		}
	} else {
		newMember := models.RoomMember{
			RoomID:   room.ID,
			UserID:   recipient.ID,
			IsAdmin:  true,
			IsActive: true,
			JoinedAt: now,
		}
		if err := service.rooms.AddMember(&newMember); err != nil {
			return err
		}
	}

	request.Status = targetStatus
	return service.transfers.Save(request)
}
