package main

import (
	"context"
	"log"
	"os"

	"scout/internal/aggregator"
	"scout/internal/app"
	"scout/internal/config"
	"scout/internal/env"
	"scout/pkg/graceful"
)

const defaultCity = "Paris"

func main() {
	os.Exit(run())
}

func run() int {
	env.LoadEnv()
	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Initialization failed: %v", err)
		return 1
	}
	program := app.Program{
		Variant:  aggregator.Trip(),
		Prompt:   "Enter the city you want to visit (or press Enter for " + defaultCity + "): ",
		Fallback: defaultCity,
	}
	return program.Execute(ctx, cfg, os.Stdin, os.Stdout)
}
