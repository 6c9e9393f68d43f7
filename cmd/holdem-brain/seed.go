package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-brain/internal/history"
	"github.com/lox/holdem-brain/internal/randutil"
)

type SeedHistoryCmd struct {
	Out   string `short:"o" default:"hands.csv" help:"Output CSV path"`
	Hands int    `default:"50" help:"Hands to generate per opponent archetype"`
	Seed  *int64 `help:"Random seed for reproducible output"`
}

func (c *SeedHistoryCmd) Run(logger *log.Logger) error {
	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	records := history.GenerateMock(c.Hands, randutil.New(seed))
	if err := history.WriteAll(c.Out, records); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}

	logger.Info("Wrote mock hand history", "path", c.Out, "records", len(records))
	return nil
}
