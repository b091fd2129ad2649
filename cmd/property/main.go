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

const defaultAddress = "1600 Amphitheatre Parkway, Mountain View, CA"

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
		Variant:  aggregator.Property(),
		Prompt:   "Enter the address to analyze (or press Enter to use default): ",
		Fallback: defaultAddress,
	}
	return program.Execute(ctx, cfg, os.Stdin, os.Stdout)
}
