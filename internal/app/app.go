// Package app wires configuration, clients and the aggregator into the flow
// shared by the command-line programs.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"scout/internal/aggregator"
	"scout/internal/config"
	"scout/internal/report"
	"scout/pkg/location"
	"scout/pkg/places"
	"scout/pkg/weather"
)

// Build constructs an aggregator for variant from cfg. Every client gets the
// configuration injected here; a missing credential fails at this point.
func Build(cfg *config.Config, variant aggregator.Variant) (*aggregator.Aggregator, error) {
	geocoder, err := location.New(cfg)
	if err != nil {
		return nil, err
	}
	finder, err := places.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	var reporter weather.Reporter
	if variant.Weather {
		reporter = weather.NewFromConfig(cfg)
	}
	log.Printf("Initialized %s report with %s geocoder", variant.Kind, geocoder.Name())
	return aggregator.New(variant, geocoder, finder, reporter, cfg.Radius), nil
}

// ReadQuery reads one line from in, substituting fallback when it is blank.
func ReadQuery(in io.Reader, out io.Writer, prompt, fallback string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback, nil
	}
	return line, nil
}

// Run produces one report for query and writes it, or the failure notice, to out.
func Run(ctx context.Context, agg *aggregator.Aggregator, query string, out io.Writer) error {
	r, err := agg.Run(ctx, query)
	if err != nil {
		if werr := report.RenderFailure(out, agg.Variant().Kind, query, err); werr != nil {
			log.Printf("Failed to write failure notice: %v", werr)
		}
		return err
	}
	return report.Render(out, r)
}

// Program is one interactive command: the variant it reports on and how it
// asks for the query.
type Program struct {
	Variant  aggregator.Variant
	Prompt   string
	Fallback string
}

// Execute builds the aggregator, reads a query from in and writes the report
// to out. It returns the process exit code: 1 for setup, input, or geocoding
// failures, 0 otherwise.
func (p Program) Execute(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) int {
	agg, err := Build(cfg, p.Variant)
	if err != nil {
		log.Printf("Initialization failed: %v", err)
		return 1
	}
	query, err := ReadQuery(in, out, p.Prompt, p.Fallback)
	if err != nil {
		log.Print(err)
		return 1
	}

	log.Printf("--- Starting %s report for %s ---", p.Variant.Kind, query)
	if err := Run(ctx, agg, query, out); err != nil {
		return 1
	}
	return 0
}
