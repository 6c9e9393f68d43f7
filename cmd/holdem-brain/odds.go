package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-brain/internal/deck"
	"github.com/lox/holdem-brain/internal/equity"
	"github.com/lox/holdem-brain/internal/evaluator"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

type OddsCmd struct {
	Hole       string `arg:"" help:"Hole cards, e.g. 'AsKd'"`
	Board      string `short:"b" help:"Community board cards, e.g. 'Td7s8h'"`
	Range      string `short:"r" enum:"random,tight,medium,loose" default:"random" help:"Assumed opponent range"`
	Samples    int    `short:"n" default:"10000" help:"Number of Monte Carlo samples"`
	TimeBudget int    `help:"Time budget in milliseconds (0 for none)"`
	Seed       *int64 `help:"Random seed for reproducible results"`
}

func (c *OddsCmd) Run(logger *log.Logger) error {
	hole, err := deck.ParseCards(c.Hole)
	if err != nil {
		return fmt.Errorf("parsing hole cards: %w", err)
	}
	if len(hole) != 2 {
		return fmt.Errorf("need exactly 2 hole cards, got %d", len(hole))
	}

	var board []deck.Card
	if c.Board != "" {
		board, err = deck.ParseCards(c.Board)
		if err != nil {
			return fmt.Errorf("parsing board: %w", err)
		}
	}

	var hint equity.Range
	switch c.Range {
	case "tight":
		hint = equity.TightRange{}
	case "medium":
		hint = equity.MediumRange{}
	case "loose":
		hint = equity.LooseRange{}
	default:
		hint = equity.RandomRange{}
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	estimator := equity.NewEstimator(evaluator.New(), logger)
	start := time.Now()
	est, err := estimator.Estimate(context.Background(), hole, board, hint, equity.Options{
		Samples:    c.Samples,
		Seed:       seed,
		TimeBudget: time.Duration(c.TimeBudget) * time.Millisecond,
	})
	if err != nil {
		return err
	}
	duration := time.Since(start)

	if len(board) > 0 {
		fmt.Printf("%s\n%s\n\n", headerStyle.Render("board"), deck.FormatCards(board))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("loss"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		handStyle.Render(deck.FormatCards(hole)),
		winStyle.Render(fmt.Sprintf("%.1f%%", est.Win*100)),
		tieStyle.Render(fmt.Sprintf("%.1f%%", est.Tie*100)),
		lossStyle.Render(fmt.Sprintf("%.1f%%", est.Loss*100)))
	_ = w.Flush()

	fmt.Printf("\n")
	if est.Exact {
		fmt.Printf("%d combinations enumerated exactly in %v\n", est.Samples, duration.Truncate(time.Millisecond))
	} else {
		lower, upper := est.ConfidenceInterval()
		fmt.Printf("equity %.1f%% (95%% CI %.1f%%-%.1f%%), %d samples in %v\n",
			est.Equity()*100, lower*100, upper*100, est.Samples, duration.Truncate(time.Millisecond))
		if est.Budgeted {
			fmt.Printf("time budget hit; estimate is best-effort\n")
		}
	}
	return nil
}
