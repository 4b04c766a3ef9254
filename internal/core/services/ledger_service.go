package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghb72/Ranch-Finance/internal/apperrors"
	"github.com/ghb72/Ranch-Finance/internal/core/domain"
	portsrepo "github.com/ghb72/Ranch-Finance/internal/core/ports/repositories"
	portssvc "github.com/ghb72/Ranch-Finance/internal/core/ports/services"
	"github.com/ghb72/Ranch-Finance/internal/dto"
)

const (
	// maxDescriptionLen bounds free-text descriptions.
	maxDescriptionLen = 500
	// maxAttachmentBytes bounds inline receipt images (1 MiB).
	maxAttachmentBytes = 1 << 20
	// defaultAuthor is stamped when no display name has been configured.
	defaultAuthor = "Usuario"
)

// ledgerServiceImpl implements the LedgerSvcFacade interface.
type ledgerServiceImpl struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	settingRepo portsrepo.SettingRepository
}

// NewLedgerService creates the ledger service over the local store.
func NewLedgerService(txnRepo portsrepo.TransactionRepositoryFacade, settingRepo portsrepo.SettingRepository) portssvc.LedgerSvcFacade {
	return &ledgerServiceImpl{txnRepo: txnRepo, settingRepo: settingRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerServiceImpl)(nil)

func (s *ledgerServiceImpl) AddTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.buildTransaction(ctx, req)
	if err != nil {
		return nil, err
	}

	localKey, err := s.txnRepo.SaveTransaction(ctx, *txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to persist transaction", slog.String("global_id", txn.GlobalID))
		return nil, err
	}
	txn.LocalKey = localKey

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("global_id", txn.GlobalID),
		slog.String("kind", string(txn.Kind)),
		slog.String("amount", txn.Amount.String()))
	return txn, nil
}

// buildTransaction validates the request and assembles the domain record.
// Validation failures are rejected before anything reaches the store.
func (s *ledgerServiceImpl) buildTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	kind := domain.TransactionKind(req.Kind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("kind must be income or expense: %w", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than zero: %w", apperrors.ErrValidation)
	}
	if _, err := time.Parse(domain.DateLayout, req.Date); err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %w", apperrors.ErrValidation)
	}
	if len(req.Description) > maxDescriptionLen {
		return nil, fmt.Errorf("description exceeds %d characters: %w", maxDescriptionLen, apperrors.ErrValidation)
	}
	if len(req.Attachment) > maxAttachmentBytes {
		return nil, fmt.Errorf("attachment exceeds %d bytes: %w", maxAttachmentBytes, apperrors.ErrValidation)
	}

	category := domain.CategoryGeneral
	if req.Category != "" {
		category = domain.Category(req.Category)
		if !category.IsValid() {
			return nil, fmt.Errorf("unknown category %q: %w", req.Category, apperrors.ErrValidation)
		}
	}

	method := domain.PaymentCash
	if req.PaymentMethod != "" {
		method = domain.PaymentMethod(req.PaymentMethod)
		if !method.IsValid() {
			return nil, fmt.Errorf("unknown payment method %q: %w", req.PaymentMethod, apperrors.ErrValidation)
		}
	}

	author, err := s.UserName(ctx)
	if err != nil {
		return nil, err
	}
	if author == "" {
		author = defaultAuthor
	}

	return &domain.Transaction{
		GlobalID:      uuid.NewString(),
		Kind:          kind,
		Amount:        req.Amount,
		Date:          req.Date,
		Description:   strings.TrimSpace(req.Description),
		Category:      category,
		PaymentMethod: method,
		Author:        author,
		CreatedAt:     time.Now().UTC(),
		SyncState:     domain.SyncPending,
		Attachment:    req.Attachment,
	}, nil
}

func (s *ledgerServiceImpl) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.txnRepo.ListTransactions(ctx)
}

func (s *ledgerServiceImpl) ListTransactionsByDateRange(ctx context.Context, start, end string) ([]domain.Transaction, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	return s.txnRepo.ListTransactionsByDateRange(ctx, start, end)
}

func (s *ledgerServiceImpl) ListPendingTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.txnRepo.ListPendingTransactions(ctx)
}

func (s *ledgerServiceImpl) CountPendingTransactions(ctx context.Context) (int, error) {
	return s.txnRepo.CountPendingTransactions(ctx)
}

func (s *ledgerServiceImpl) Summarize(ctx context.Context, start, end string) (domain.Summary, error) {
	txns, err := s.ListTransactionsByDateRange(ctx, start, end)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(txns), nil
}

func (s *ledgerServiceImpl) DeleteTransaction(ctx context.Context, localKey int64) error {
	if err := s.txnRepo.DeleteTransaction(ctx, localKey); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.Int64("local_key", localKey))
		return err
	}
	s.LogInfo(ctx, "Transaction deleted locally", slog.Int64("local_key", localKey))
	return nil
}

func (s *ledgerServiceImpl) UserName(ctx context.Context) (string, error) {
	name, err := s.settingRepo.GetSetting(ctx, domain.SettingUserName)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", nil
	}
	return name, err
}

func (s *ledgerServiceImpl) SetUserName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("display name cannot be empty: %w", apperrors.ErrValidation)
	}
	return s.settingRepo.SetSetting(ctx, domain.SettingUserName, name)
}

func validateRange(start, end string) error {
	if _, err := time.Parse(domain.DateLayout, start); err != nil {
		return fmt.Errorf("start date must be YYYY-MM-DD: %w", apperrors.ErrValidation)
	}
	if _, err := time.Parse(domain.DateLayout, end); err != nil {
		return fmt.Errorf("end date must be YYYY-MM-DD: %w", apperrors.ErrValidation)
	}
	if start > end {
		return fmt.Errorf("start date is after end date: %w", apperrors.ErrValidation)
	}
	return nil
}
