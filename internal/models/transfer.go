package models

import "time"

const (
	TransferPending             = "pending"
	TransferAccepted            = "accepted"
	TransferAcceptedPendingPlan = "accepted_pending_subscription"
	TransferDeclined            = "declined"
	TransferExpired             = "expired"
	TransferCancelled           = "cancelled"
)

// TransferRequestTTL is the window a recipient has to act on a request.
const TransferRequestTTL = 7 * 24 * time.Hour

// TransferRequest proposes moving ownership of a room from InitiatorID to
// RecipientID. Token is the externally visible identifier.
type TransferRequest struct {
	ID          uint      `gorm:"primaryKey"`
	Token       string    `gorm:"uniqueIndex;not null"`
	RoomID      uint      `gorm:"not null;index"`
	InitiatorID uint      `gorm:"not null"`
	RecipientID uint      `gorm:"not null;index"`
	Status      string    `gorm:"not null;default:pending"`
	CreatedAt   time.Time `gorm:"not null"`
	ExpiresAt   time.Time `gorm:"not null"`
}

func (request TransferRequest) IsExpired(now time.Time) bool {
	return now.After(request.ExpiresAt)
}

// EffectiveStatus folds lapsed pending requests into expired without touching
// the stored row; the sweep persists the transition later.
func (request TransferRequest) EffectiveStatus(now time.Time) string {
	if request.Status == TransferPending && request.IsExpired(now) {
		return TransferExpired
	}
	return request.Status
}

func (request TransferRequest) CanBeAccepted(now time.Time) bool {
	return request.EffectiveStatus(now) == TransferPending
}

func TransferStatusTerminal(status string) bool {
	switch status {
	case TransferAccepted, TransferDeclined, TransferExpired, TransferCancelled:
		return true
	default:
		return false
	}
}

// ValidTransferTransition encodes the request lifecycle: pending fans out to
// every other state, accepted_pending_subscription can only complete into
// accepted, terminal states never move.
func ValidTransferTransition(from, to string) bool {
	switch from {
	case TransferPending:
		switch to {
		case TransferAccepted, TransferAcceptedPendingPlan, TransferDeclined, TransferCancelled, TransferExpired:
			return true
		}
	case TransferAcceptedPendingPlan:
		return to == TransferAccepted
	}
	return false
}
