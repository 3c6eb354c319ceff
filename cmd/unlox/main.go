package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

type CLI struct {
	LogLevel string `help:"Log level" default:"info" enum:"debug,info,warn,error" env:"UNLOX_LOG_LEVEL"`

	Fit       FitCmd       `cmd:"" help:"Fit encoders and the feature matrix from a catalog CSV and store them"`
	Recommend RecommendCmd `cmd:"" help:"Recommend services for a set of preferences"`
	Compare   CompareCmd   `cmd:"" help:"Compare cosine and nearest-neighbour rankings on the same candidates"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("unlox"),
		kong.Description("Business service recommender"),
		kong.UsageOnError(),
	)

	logger := log.New(os.Stderr)
	level, err := log.ParseLevel(cli.LogLevel)
	if err != nil {
		logger.Fatal("Invalid log level", "error", err)
	}
	logger.SetLevel(level)

	ctx.FatalIfErrorf(ctx.Run(logger))
}
