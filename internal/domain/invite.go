package domain

import (
	"time"

	"github.com/google/uuid"
)

// Invite is a capped, time-limited opaque code that adds its redeemer to a
// room. Spent invites are kept for audit, never deleted.
type Invite struct {
	ID        uuid.UUID   `json:"id"`
	Code      string      `json:"code"`
	RoomID    uuid.UUID   `json:"room_id"`
	CreatedBy uuid.UUID   `json:"created_by"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
	MaxUses   int         `json:"max_uses"`
	UsedCount int         `json:"used_count"`
	UsedBy    []uuid.UUID `json:"used_by,omitempty"`
}

func (i *Invite) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

func (i *Invite) Exhausted() bool {
	return i.UsedCount >= i.MaxUses
}

// RedeemOutcome is the result of the store-level redemption transaction.
type RedeemOutcome int

const (
	RedeemOK RedeemOutcome = iota
	// RedeemAlreadyUsed: this user already redeemed this invite. Redemption
	// is idempotent per user, so this is not an error for the caller.
	RedeemAlreadyUsed
	// RedeemRefused: the conditional increment found the invite expired or at
	// its cap at commit time.
	RedeemRefused
)
