package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind indicates whether a ledger entry is income or an expense.
type TransactionKind string

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"
)

// IsValid reports whether the kind is one of the allowed values.
func (k TransactionKind) IsValid() bool {
	return k == Income || k == Expense
}

// Category groups transactions by ranch activity.
type Category string

const (
	CategoryAgriculture    Category = "agriculture"
	CategoryFeedlot        Category = "livestock-feedlot"
	CategoryLivestockRange Category = "livestock-range"
	CategoryGeneral        Category = "general"
)

// IsValid reports whether the category is one of the allowed values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryAgriculture, CategoryFeedlot, CategoryLivestockRange, CategoryGeneral:
		return true
	}
	return false
}

// PaymentMethod indicates how a transaction was paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCard     PaymentMethod = "card"
	PaymentCheck    PaymentMethod = "check"
)

// IsValid reports whether the payment method is one of the allowed values.
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentTransfer, PaymentCard, PaymentCheck:
		return true
	}
	return false
}

// SyncState tracks whether a locally created transaction has been
// acknowledged by the remote ledger. Local-only, never transmitted.
type SyncState string

const (
	SyncPending SyncState = "pending"
	SyncSynced  SyncState = "synced"
)

// DateLayout is the calendar-date format used throughout the ledger.
// Dates carry no time component; lexical order equals chronological order.
const DateLayout = "2006-01-02"

// Transaction is the atomic unit of the ledger.
//
// GlobalID is assigned once on the originating device and is the sole
// identity used for merge and dedup across local and remote stores.
// LocalKey is the on-device surrogate key and is never transmitted.
type Transaction struct {
	LocalKey      int64           `json:"-"`
	GlobalID      string          `json:"id"`
	Kind          TransactionKind `json:"kind"`
	Amount        decimal.Decimal `json:"amount"` // always > 0
	Date          string          `json:"date"`   // YYYY-MM-DD
	Description   string          `json:"description"`
	Category      Category        `json:"category"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Author        string          `json:"author"`
	CreatedAt     time.Time       `json:"createdAt"`
	SyncState     SyncState       `json:"-"`
	Attachment    []byte          `json:"-"` // inline image, local-only
}

// ParseDate validates and parses the transaction's calendar date.
func (t Transaction) ParseDate() (time.Time, error) {
	return time.Parse(DateLayout, t.Date)
}
