package domain

// SyncResult reports the outcome of a combined push/pull reconciliation run.
// Connectivity failures are folded into the counts instead of being raised:
// Sent is how many pending records the remote acknowledged, Pulled is how
// many remote records were newly inserted locally, StillPending is what
// remains unacknowledged after the run.
type SyncResult struct {
	Sent         int `json:"sent"`
	Pulled       int `json:"pulled"`
	StillPending int `json:"stillPending"`
}
