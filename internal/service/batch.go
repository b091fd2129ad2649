package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"scout/internal/keys"
	"scout/internal/models"
	"scout/internal/report"
	"scout/pkg/location"
)

// Runner produces one report per query. *aggregator.Aggregator satisfies it.
type Runner interface {
	Run(ctx context.Context, query string) (*models.Report, error)
}

// RunnerFactory builds the runner for a variant.
type RunnerFactory func(kind models.Variant) (Runner, error)

type Publisher interface {
	Publish(ctx context.Context, key string, value []byte, headers map[string]string) error
}

type Recorder interface {
	Record(ctx context.Context, run models.Run) error
}

// BatchProcessor runs every query of a batch request as an independent report
// and publishes each rendered report.
type BatchProcessor struct {
	factory   RunnerFactory
	publisher Publisher
	recorder  Recorder

	mu      sync.Mutex
	runners map[models.Variant]Runner
	now     func() time.Time
}

func NewBatchProcessor(factory RunnerFactory, publisher Publisher, recorder Recorder) *BatchProcessor {
	return &BatchProcessor{
		factory:   factory,
		publisher: publisher,
		recorder:  recorder,
		runners:   make(map[models.Variant]Runner),
		now:       time.Now,
	}
}

// Process handles b and returns how many reports were published. Queries that
// fail to geocode or publish are recorded and skipped. An error is returned
// only when the batch itself cannot be run.
func (p *BatchProcessor) Process(ctx context.Context, b *models.BatchRequest) (int, error) {
	if !b.Variant.Valid() {
		return 0, fmt.Errorf("batch %s: unknown variant %q", b.ID, b.Variant)
	}
	runner, err := p.runner(b.Variant)
	if err != nil {
		return 0, fmt.Errorf("batch %s: %w", b.ID, err)
	}

	log.Printf("Processing batch %s: %d %s queries", b.ID, len(b.Queries), b.Variant)
	published := 0
	for _, query := range b.Queries {
		if ctx.Err() != nil {
			return published, ctx.Err()
		}
		outcome := p.handle(ctx, runner, b, query)
		if outcome == models.OutcomePublished {
			published++
		}
		p.record(ctx, b, query, outcome)
	}
	log.Printf("Batch %s finished: %d/%d reports published", b.ID, published, len(b.Queries))
	return published, nil
}

func (p *BatchProcessor) handle(ctx context.Context, runner Runner, b *models.BatchRequest, query string) models.Outcome {
	r, err := runner.Run(ctx, query)
	if err != nil {
		if errors.Is(err, location.ErrNotFound) {
			return models.OutcomeNotFound
		}
		return models.OutcomeGeocodeFailed
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, r); err != nil {
		log.Printf("Failed to render report %s: %v", r.ID, err)
		return models.OutcomePublishFailed
	}
	headers := map[string]string{
		"batch_id": b.ID,
		"variant":  string(r.Variant),
		"query":    query,
	}
	if err := p.publisher.Publish(ctx, keys.Report(r), buf.Bytes(), headers); err != nil {
		log.Printf("Failed to publish report for %q: %v", query, err)
		return models.OutcomePublishFailed
	}
	return models.OutcomePublished
}

func (p *BatchProcessor) record(ctx context.Context, b *models.BatchRequest, query string, outcome models.Outcome) {
	if p.recorder == nil {
		return
	}
	run := models.Run{
		ID:        uuid.NewString(),
		BatchID:   b.ID,
		Variant:   b.Variant,
		Query:     query,
		Outcome:   outcome,
		CreatedAt: p.now().UTC(),
	}
	if err := p.recorder.Record(ctx, run); err != nil {
		log.Printf("Failed to record run for %q: %v", query, err)
	}
}

func (p *BatchProcessor) runner(kind models.Variant) (Runner, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if r, ok := p.runners[kind]; ok {
		return r, nil
	}
	r, err := p.factory(kind)
	if err != nil {
		return nil, err
	}
	p.runners[kind] = r
	return r, nil
}
