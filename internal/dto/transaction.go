package dto

import (
	"time"

	"github.com/ghb72/Ranch-Finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest carries user input for a new ledger entry.
// Category and payment method fall back to their defaults when empty.
type CreateTransactionRequest struct {
	Kind          string          `json:"kind" binding:"required,oneof=income expense"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Date          string          `json:"date" binding:"required,ledgerdate"`
	Description   string          `json:"description" binding:"max=500"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"paymentMethod"`
	Attachment    []byte          `json:"-"`
}

// TransactionResponse is the on-device representation returned by list
// operations. It includes the local key and sync state, which never cross
// the wire to the remote ledger.
type TransactionResponse struct {
	LocalKey      int64           `json:"localKey"`
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"paymentMethod"`
	Author        string          `json:"author"`
	CreatedAt     time.Time       `json:"createdAt"`
	SyncState     string          `json:"syncState"`
	HasAttachment bool            `json:"hasAttachment"`
}

// ToTransactionResponse converts a domain.Transaction to its local DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		LocalKey:      txn.LocalKey,
		ID:            txn.GlobalID,
		Kind:          string(txn.Kind),
		Amount:        txn.Amount,
		Date:          txn.Date,
		Description:   txn.Description,
		Category:      string(txn.Category),
		PaymentMethod: string(txn.PaymentMethod),
		Author:        txn.Author,
		CreatedAt:     txn.CreatedAt,
		SyncState:     string(txn.SyncState),
		HasAttachment: len(txn.Attachment) > 0,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// SummaryResponse is the aggregate view over a date range.
type SummaryResponse struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
	Count        int             `json:"count"`
}

// ToSummaryResponse converts a domain.Summary to its DTO.
func ToSummaryResponse(s domain.Summary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		Balance:      s.Balance,
		Count:        s.Count,
	}
}
