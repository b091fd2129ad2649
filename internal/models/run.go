package models

import "time"

// Outcome is what became of one query in a batch.
type Outcome string

const (
	OutcomePublished     Outcome = "published"
	OutcomeNotFound      Outcome = "not_found"
	OutcomeGeocodeFailed Outcome = "geocode_failed"
	OutcomePublishFailed Outcome = "publish_failed"
)

// Run is the ledger row for a single query handled in batch mode. It carries
// metadata only; the report itself is never stored.
type Run struct {
	ID        string    `json:"id"`
	BatchID   string    `json:"batch_id"`
	Variant   Variant   `json:"variant"`
	Query     string    `json:"query"`
	Outcome   Outcome   `json:"outcome"`
	CreatedAt time.Time `json:"created_at"`
}
