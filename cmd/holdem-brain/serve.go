package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-brain/internal/brain"
	"github.com/lox/holdem-brain/internal/equity"
	"github.com/lox/holdem-brain/internal/evaluator"
	"github.com/lox/holdem-brain/internal/history"
	"github.com/lox/holdem-brain/internal/profile"
	"github.com/lox/holdem-brain/internal/server"
)

type ServeCmd struct {
	Addr      string `short:"a" default:":8080" help:"Address to bind the decision service to"`
	Config    string `short:"c" default:"holdem-brain.hcl" help:"Path to HCL configuration file"`
	History   string `default:"hands.csv" help:"Path to the hand-history CSV store"`
	NoHistory bool   `help:"Disable hand-history persistence"`
}

func (c *ServeCmd) Run(logger *log.Logger) error {
	cfg, err := brain.LoadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	model := profile.NewModel(logger)

	var store *history.Store
	if !c.NoHistory {
		if _, err := os.Stat(c.History); err == nil {
			records, err := history.Load(c.History, logger)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			model.SeedFromRecords(records)
			logger.Info("Seeded opponent profiles from history",
				"path", c.History, "records", len(records))
		}

		store, err = history.Open(c.History, logger)
		if err != nil {
			return fmt.Errorf("opening history store: %w", err)
		}
		defer func() { _ = store.Close() }()
	}

	estimator := equity.NewEstimator(evaluator.New(), logger)
	engine := brain.NewEngine(cfg, estimator, model, logger)
	service := server.NewService(engine, model, store, logger)
	srv := server.NewServer(c.Addr, service, logger)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Info("Shutting down decision service")
		_ = srv.Stop()
		if store != nil {
			_ = store.Close()
		}
		os.Exit(0)
	}()

	logger.Info("Starting decision service",
		"addr", c.Addr,
		"samples", cfg.Equity.Samples,
		"budget", cfg.Equity.TimeBudget())
	return srv.Start()
}
