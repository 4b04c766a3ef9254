package repositories

import "context"

// SettingRepository provides persisted key/value access on the device.
type SettingRepository interface {
	// GetSetting returns the value for key, or apperrors.ErrNotFound.
	GetSetting(ctx context.Context, key string) (string, error)

	// SetSetting stores or replaces the value for key.
	SetSetting(ctx context.Context, key, value string) error
}
