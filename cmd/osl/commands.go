package main

import (
	"github.com/banky/go-osl/exchange"
	"github.com/banky/go-osl/info"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var tickerCommand = &cli.Command{
	Name:  "ticker",
	Usage: "print the ticker of the currency pair",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "fast",
			Usage: "use the lightweight ticker",
		},
	},
	Action: func(c *cli.Context) error {
		if c.Bool("fast") {
			result, err := client.Info().TickerFast(c.Context)
			if err != nil {
				return err
			}
			return jsonOutput(result)
		}

		result, err := client.Info().Ticker(c.Context)
		if err != nil {
			return err
		}
		return jsonOutput(result)
	},
}

var depthCommand = &cli.Command{
	Name:  "depth",
	Usage: "print the order book, one side per line with --full",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "full",
			Usage: "stream the full order book",
		},
	},
	Action: func(c *cli.Context) error {
		if !c.Bool("full") {
			result, err := client.Info().FetchDepth(c.Context)
			if err != nil {
				return err
			}
			return jsonOutput(result)
		}

		for side, err := range client.Info().StreamFullDepth(c.Context).All() {
			if err != nil {
				return err
			}
			if err := jsonOutput(side); err != nil {
				return err
			}
		}
		return nil
	},
}

var tradesCommand = &cli.Command{
	Name:  "trades",
	Usage: "stream recent trades, one per line",
	Flags: []cli.Flag{
		&cli.Int64Flag{
			Name:  "since",
			Usage: "only trades after this trade id",
		},
	},
	Action: func(c *cli.Context) error {
		var opts []info.TradesOption
		if c.IsSet("since") {
			opts = append(opts, info.WithTradesSince(c.Int64("since")))
		}

		stream := client.Info().StreamTrades(c.Context, opts...)
		defer stream.Close()

		count := 0
		for stream.Next() {
			if err := jsonOutput(stream.Value()); err != nil {
				return err
			}
			count++
		}
		logger.Debug("trades streamed", zap.Int("count", count))
		return stream.Err()
	},
}

var accountInfoCommand = &cli.Command{
	Name:  "info",
	Usage: "print account information",
	Action: func(c *cli.Context) error {
		result, err := client.AccountInfo(c.Context)
		if err != nil {
			return err
		}
		return jsonOutput(result)
	},
}

var ordersCommand = &cli.Command{
	Name:  "orders",
	Usage: "print open orders",
	Action: func(c *cli.Context) error {
		result, err := client.Orders(c.Context)
		if err != nil {
			return err
		}
		return jsonOutput(result)
	},
}

var dataTokenCommand = &cli.Command{
	Name:  "datatoken",
	Usage: "request a token for the streaming data service",
	Action: func(c *cli.Context) error {
		result, err := client.DataToken(c.Context)
		if err != nil {
			return err
		}
		if err := exchange.CheckResultCode("fetching data token", result); err != nil {
			return err
		}
		return jsonOutput(result)
	},
}
