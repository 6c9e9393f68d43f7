package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

type CLI struct {
	LogLevel string `short:"l" default:"info" help:"Log level (debug, info, warn, error)"`

	Odds        OddsCmd        `cmd:"" help:"Estimate equity for a hand against an opponent range"`
	Serve       ServeCmd       `cmd:"" help:"Run the WebSocket decision service"`
	SeedHistory SeedHistoryCmd `cmd:"" name:"seed-history" help:"Generate a mock hand-history file for profile seeding"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem-brain"),
		kong.Description("Heads-up no-limit hold'em decision core"))

	logger := log.New(os.Stderr)
	switch cli.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	ctx.FatalIfErrorf(ctx.Run(logger))
}
