package keys

import (
	"fmt"
	"strings"

	"scout/internal/models"
)

// sanitizeKey replaces spaces and commas with hyphens and lowercases the string.
func sanitizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(",", "", " ", "-").Replace(s)
	return s
}

// Report returns the message key a rendered report is published under.
func Report(r *models.Report) string {
	return fmt.Sprintf("%s/%s/%s", r.Variant, sanitizeKey(r.Query), r.ID)
}

// Batch returns the canonical object key for a batch request.
func Batch(b models.BatchRequest) string {
	return fmt.Sprintf("batches/%s/%s.json", b.Variant, b.ID)
}
