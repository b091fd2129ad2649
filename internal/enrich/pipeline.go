package enrich

import (
	"context"
	"log"
	"sync"
)

// Pipeline applies a sequence of stages to items. Step errors are logged and
// never stop processing of the current item.
type Pipeline[T any] struct {
	stages []Stage[T]
}

func NewPipeline[T any](stages ...Stage[T]) *Pipeline[T] {
	return &Pipeline[T]{stages: stages}
}

// Run applies every stage to item and returns the number of failed steps.
// Stages after a cancelled context are skipped.
func (p *Pipeline[T]) Run(ctx context.Context, item *T) int {
	failed := 0
	for _, stage := range p.stages {
		if ctx.Err() != nil {
			log.Printf("Skipping stage %q: %v", stage.name, ctx.Err())
			return failed
		}

		var (
			wg sync.WaitGroup
			mu sync.Mutex
		)
		for _, step := range stage.steps {
			wg.Add(1)
			go func(step Step[T]) {
				defer wg.Done()
				if err := step(ctx, item); err != nil {
					log.Printf("Step in stage %q failed: %v", stage.name, err)
					mu.Lock()
					failed++
					mu.Unlock()
				}
			}(step)
		}
		wg.Wait() // stage barrier
	}
	return failed
}
