package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	natspkg "github.com/brojonat/curioweave/service/nats"
	"github.com/urfave/cli/v2"
)

func eventsSubscribeCommand() *cli.Command {
	return &cli.Command{
		Name:      "subscribe",
		Usage:     "Stream profile creation events from NATS",
		ArgsUsage: "[wallet_address]",
		Description: `Subscribe to profile events the API publishes to NATS JetStream.

Events are published to the subject: profiles.{wallet_address}
Without an address, events for every wallet are shown.

Example:
  curioweave events subscribe --json`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "durable",
				Aliases: []string{"d"},
				Usage:   "Create a durable consumer (survives restarts)",
			},
			&cli.StringFlag{
				Name:  "consumer-name",
				Usage: "Consumer name for --durable",
				Value: "curioweave-cli",
			},
		},
		Action: func(c *cli.Context) error {
			opts := natspkg.SubscribeOptions{WalletAddress: c.Args().First()}
			if c.Bool("durable") {
				opts.Durable = c.String("consumer-name")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			jsonOutput := c.Bool("json")
			if !jsonOutput {
				fmt.Fprintf(c.App.ErrWriter, "Subscribed to %s (Ctrl+C to stop)\n", opts.FilterSubject())
			}

			return natspkg.Subscribe(ctx, c.String("nats-url"), opts, newLogger(c), func(event *natspkg.ProfileEvent) {
				if jsonOutput {
					outputJSON(c.App.Writer, event)
					return
				}
				fmt.Fprintf(c.App.Writer, "%s  %s (%s)  wallet=%s  interests=%s\n",
					event.PublishedAt.Format("15:04:05"),
					event.Username,
					event.FullName,
					event.WalletAddress,
					strings.Join(event.Interests, ","),
				)
			})
		},
	}
}
