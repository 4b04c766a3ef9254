package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghb72/Ranch-Finance/internal/apperrors"
	"github.com/ghb72/Ranch-Finance/internal/core/ports/repositories"
)

type settingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates the SQLite-backed key/value settings store.
func NewSettingRepository(db *sql.DB) repositories.SettingRepository {
	return &settingRepository{db: db}
}

var _ repositories.SettingRepository = (*settingRepository)(nil)

func (r *settingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?;`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("setting %q: %w", key, apperrors.ErrNotFound)
	}
	if err != nil {
		return "", storageErr("get setting", err)
	}
	return value, nil
}

func (r *settingRepository) SetSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;
	`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return storageErr("set setting", err)
	}
	return nil
}
