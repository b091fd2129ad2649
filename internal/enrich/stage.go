// Package enrich provides a small, generic pipeline abstraction that runs
// independent steps in parallel within a stage, while enforcing sequential
// execution between stages.
package enrich

import (
	"context"
)

// Step is a single operation that fills part of the given item. Steps in the
// same stage run concurrently on the same item, so each step must write only
// fields no other step in its stage touches. A failing step returns an error;
// the pipeline logs it and continues.
//
// Example:
//
//	func addWeather(ctx context.Context, r *Report) error { r.Weather = ...; return nil }
type Step[T any] func(ctx context.Context, item *T) error

// Stage groups steps that are safe to execute in parallel for a single item.
// The pipeline waits for every step of a stage before starting the next.
type Stage[T any] struct {
	name  string
	steps []Step[T]
}

// NewStage constructs a Stage from the provided steps.
func NewStage[T any](name string, steps ...Step[T]) Stage[T] {
	return Stage[T]{name: name, steps: steps}
}
