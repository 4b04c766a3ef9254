package domain

// Setting is a persisted key/value pair on the device.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Well-known setting keys.
const (
	// SettingUserName is the display name stamped on new transactions.
	SettingUserName = "user_name"
	// SettingLastSyncAt is the RFC3339 watermark of the last successful pull.
	SettingLastSyncAt = "last_sync_at"
)
