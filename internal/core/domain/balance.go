package domain

import "time"

// Balance is the single wallet row of an identity. Amount is in the smallest
// currency unit and never goes below zero.
type Balance struct {
	IdentityID int64     `json:"identity_id"`
	Amount     int64     `json:"amount"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CanCover reports whether the balance can pay amount without overdraft.
func (b *Balance) CanCover(amount int64) bool {
	return b.Amount >= amount
}
