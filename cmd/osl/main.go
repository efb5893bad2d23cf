package main

import (
	"fmt"
	"log"
	"os"

	"github.com/banky/go-osl/config"
	"github.com/banky/go-osl/exchange"
	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	configDir string
	currency  string
	baseURL   string
	debug     bool

	logger *zap.Logger
	client *exchange.Exchange
)

func jsonOutput(in any) error {
	j, err := json.MarshalIndent(in, "", " ")
	if err != nil {
		return err
	}
	fmt.Println(string(j))
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// setup loads the configuration and builds the shared client. Flags take
// priority over the config file and environment.
func setup(c *cli.Context) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if c.IsSet("currency") {
		cfg.Currency = currency
	}
	if c.IsSet("base-url") {
		cfg.BaseURL = baseURL
	}
	if c.IsSet("debug") {
		cfg.Debug = debug
	}

	logger, err = newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger.Debug("loaded config", zap.Stringer("config", cfg))

	client, err = exchange.New(cfg.ExchangeConfig(logger))
	if err != nil {
		return fmt.Errorf("failed to create exchange client: %w", err)
	}
	return nil
}

func teardown(_ *cli.Context) error {
	if logger != nil {
		_ = logger.Sync()
	}
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "osl"
	app.Usage = "command line client for the OSL trading API"
	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Value:       ".",
			Usage:       "directory holding osl.yaml and .env",
			Destination: &configDir,
		},
		&cli.StringFlag{
			Name:        "currency",
			Usage:       "currency pair, overrides the configured one",
			Destination: &currency,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "API server root, overrides the configured one",
			Destination: &baseURL,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable development logging",
			Destination: &debug,
		},
	}
	app.Before = setup
	app.After = teardown
	app.Commands = []*cli.Command{
		tickerCommand,
		depthCommand,
		tradesCommand,
		accountInfoCommand,
		ordersCommand,
		dataTokenCommand,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
