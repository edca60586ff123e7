package domain

import "time"

// EntryKind distinguishes credits from debits.
type EntryKind string

const (
	EntryKindTopup   EntryKind = "TOPUP"
	EntryKindPayment EntryKind = "PAYMENT"
)

// TopupDescription is recorded on every TOPUP entry.
const TopupDescription = "Top Up balance"

// LedgerEntry is an immutable record of one balance change.
// Amount is always the positive magnitude; Kind carries the direction.
// PAYMENT entries snapshot the service code, name (as Description) and tariff
// (as Amount) at the time of payment, so later catalog edits never rewrite history.
type LedgerEntry struct {
	ID            int64     `json:"id"`
	IdentityID    int64     `json:"identity_id"`
	InvoiceNumber string    `json:"invoice_number"`
	ServiceID     *int64    `json:"service_id,omitempty"`
	ServiceCode   *string   `json:"service_code,omitempty"`
	Description   string    `json:"description"`
	Amount        int64     `json:"amount"`
	Kind          EntryKind `json:"kind"`
	CreatedOn     time.Time `json:"created_on"`
}

// IsCredit returns true for entries that increased the balance.
func (e *LedgerEntry) IsCredit() bool {
	return e.Kind == EntryKindTopup
}

// SignedAmount returns the entry's effect on the balance.
func (e *LedgerEntry) SignedAmount() int64 {
	if e.IsCredit() {
		return e.Amount
	}
	return -e.Amount
}

// NewTopupEntry builds a credit entry.
func NewTopupEntry(identityID, amount int64, invoice string, at time.Time) *LedgerEntry {
	return &LedgerEntry{
		IdentityID:    identityID,
		InvoiceNumber: invoice,
		Description:   TopupDescription,
		Amount:        amount,
		Kind:          EntryKindTopup,
		CreatedOn:     at,
	}
}

// NewPaymentEntry builds a debit entry against svc, snapshotting its code, name and tariff.
func NewPaymentEntry(identityID int64, svc *Service, invoice string, at time.Time) *LedgerEntry {
	serviceID := svc.ID
	serviceCode := svc.Code
	return &LedgerEntry{
		IdentityID:    identityID,
		InvoiceNumber: invoice,
		ServiceID:     &serviceID,
		ServiceCode:   &serviceCode,
		Description:   svc.Name,
		Amount:        svc.Tariff,
		Kind:          EntryKindPayment,
		CreatedOn:     at,
	}
}
