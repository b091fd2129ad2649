package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"scout/internal/models"
)

var ErrInvalidBatch = errors.New("invalid batch request")

// DecodeBatch reads a batch request and normalizes it: blank queries are
// dropped and a missing ID is generated.
func DecodeBatch(r io.Reader) (*models.BatchRequest, error) {
	var b models.BatchRequest
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode JSON from stream: %w", err)
	}
	if !b.Variant.Valid() {
		return nil, fmt.Errorf("%w: unknown variant %q", ErrInvalidBatch, b.Variant)
	}

	queries := b.Queries[:0]
	for _, q := range b.Queries {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("%w: no queries", ErrInvalidBatch)
	}
	b.Queries = queries

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return &b, nil
}
