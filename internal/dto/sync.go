package dto

import (
	"time"

	"github.com/ghb72/Ranch-Finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WireTransaction is the transaction shape exchanged with the sync endpoint.
// Local-only fields (local key, sync state, attachment) are deliberately
// absent: the global ID is the sole identity used for merge and dedup.
type WireTransaction struct {
	ID            string          `json:"id" binding:"required"`
	Kind          string          `json:"kind" binding:"required,oneof=income expense"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Date          string          `json:"date" binding:"required,ledgerdate"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"paymentMethod"`
	Author        string          `json:"author"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// SyncRequest is a batch of pending transactions pushed by a device.
// The batch is accepted or rejected as a whole.
type SyncRequest struct {
	Transactions []WireTransaction `json:"transactions" binding:"required,min=1,max=100,dive"`
}

// SyncResponse acknowledges a push batch. Synced counts rows actually
// appended; duplicates are skipped silently and not counted.
type SyncResponse struct {
	Synced  int    `json:"synced"`
	Message string `json:"message"`
}

// TransactionsResponse is the remote ledger set returned to pulling devices.
type TransactionsResponse struct {
	Transactions []WireTransaction `json:"transactions"`
	Total        int               `json:"total"`
}

// ToWireTransaction converts a domain.Transaction to its wire shape.
func ToWireTransaction(txn *domain.Transaction) WireTransaction {
	return WireTransaction{
		ID:            txn.GlobalID,
		Kind:          string(txn.Kind),
		Amount:        txn.Amount,
		Date:          txn.Date,
		Description:   txn.Description,
		Category:      string(txn.Category),
		PaymentMethod: string(txn.PaymentMethod),
		Author:        txn.Author,
		CreatedAt:     txn.CreatedAt,
	}
}

// ToWireTransactions converts a slice of domain.Transaction to wire shapes.
func ToWireTransactions(txns []domain.Transaction) []WireTransaction {
	wire := make([]WireTransaction, len(txns))
	for i := range txns {
		wire[i] = ToWireTransaction(&txns[i])
	}
	return wire
}

// FromWireTransaction converts a wire transaction back to the domain shape.
// Kind, category and payment method fall back to defaults for values this
// build does not know, so older and newer devices can still exchange data.
func FromWireTransaction(w WireTransaction) domain.Transaction {
	category := domain.Category(w.Category)
	if !category.IsValid() {
		category = domain.CategoryGeneral
	}
	method := domain.PaymentMethod(w.PaymentMethod)
	if !method.IsValid() {
		method = domain.PaymentCash
	}
	return domain.Transaction{
		GlobalID:      w.ID,
		Kind:          domain.TransactionKind(w.Kind),
		Amount:        w.Amount,
		Date:          w.Date,
		Description:   w.Description,
		Category:      category,
		PaymentMethod: method,
		Author:        w.Author,
		CreatedAt:     w.CreatedAt,
	}
}

// FromWireTransactions converts a slice of wire transactions to domain shapes.
func FromWireTransactions(wire []WireTransaction) []domain.Transaction {
	txns := make([]domain.Transaction, len(wire))
	for i, w := range wire {
		txns[i] = FromWireTransaction(w)
	}
	return txns
}
