package main

import (
	"fmt"
	"log"
	"os"

	"github.com/brojonat/curioweave/service/config"
	"github.com/urfave/cli/v2"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "curioweave",
		Usage: "CurioWeave wallet, content and feed CLI",
		Description: `A command-line client for CurioWeave.

Use this CLI to manage a ledger wallet, publish profiles and content as signed
transactions, browse the sample feed and inspect classified wallet history.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Commands: []*cli.Command{
			{
				Name:  "wallet",
				Usage: "Ledger wallet commands",
				Subcommands: []*cli.Command{
					walletGenerateCommand(),
					walletAddressCommand(),
					walletBalanceCommand(),
					walletMintCommand(),
				},
			},
			{
				Name:  "profile",
				Usage: "Profile commands",
				Subcommands: []*cli.Command{
					profileCreateCommand(),
				},
			},
			{
				Name:  "content",
				Usage: "Content commands",
				Subcommands: []*cli.Command{
					contentUploadCommand(),
				},
			},
			{
				Name:  "feed",
				Usage: "Browse the sample feed",
				Subcommands: []*cli.Command{
					feedListCommand(),
					feedGetCommand(),
					feedCategoriesCommand(),
				},
			},
			{
				Name:  "tx",
				Usage: "Ledger transaction commands",
				Subcommands: []*cli.Command{
					txListCommand(),
				},
			},
			{
				Name:  "events",
				Usage: "NATS profile event commands",
				Subcommands: []*cli.Command{
					eventsSubscribeCommand(),
				},
			},
			{
				Name:  "receipts",
				Usage: "Submission receipt journal commands",
				Subcommands: []*cli.Command{
					receiptsListCommand(),
					receiptsGetCommand(),
					receiptsDeleteCommand(),
				},
			},
			{
				Name:  "server",
				Usage: "Server utility commands",
				Subcommands: []*cli.Command{
					healthCommand(),
					versionCommand(),
				},
			},
		},
		// Global flags available to all commands
		Flags: globalFlags(),
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "node-url",
			Usage:   "Ledger node URL",
			EnvVars: []string{"ARWEAVE_NODE_URL"},
			Value:   "http://localhost:1984",
		},
		&cli.StringFlag{
			Name:    "graphql-url",
			Usage:   "Ledger GraphQL URL (defaults to <node-url>/graphql)",
			EnvVars: []string{"ARWEAVE_GRAPHQL_URL"},
		},
		&cli.StringFlag{
			Name:    "api-url",
			Usage:   "CurioWeave API URL",
			EnvVars: []string{"CURIOWEAVE_API_URL"},
			Value:   "http://localhost:3000",
		},
		&cli.StringFlag{
			Name:    "key-file",
			Aliases: []string{"k"},
			Usage:   "Wallet key file (JWK)",
			EnvVars: []string{"CURIOWEAVE_KEY_FILE"},
			Value:   "wallet.json",
		},
		&cli.StringFlag{
			Name:    "app-name",
			Usage:   "App-Name tag for posted transactions",
			EnvVars: []string{"APP_NAME"},
			Value:   "CurioWeave",
		},
		&cli.StringFlag{
			Name:    "mint-amount",
			Usage:   "Winston minted into new or empty wallets",
			EnvVars: []string{"MINT_AMOUNT_WINSTON"},
			Value:   "1000000000000000",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Request timeout",
			EnvVars: []string{"REQUEST_TIMEOUT"},
			Value:   defaultTimeout,
		},
		&cli.StringFlag{
			Name:    "database-url",
			Usage:   "Database connection URL for the receipt journal",
			EnvVars: []string{"DATABASE_URL"},
		},
		&cli.StringFlag{
			Name:    "nats-url",
			Usage:   "NATS server URL",
			EnvVars: []string{"NATS_URL"},
			Value:   "nats://localhost:4222",
		},
		&cli.BoolFlag{
			Name:    "json",
			Aliases: []string{"j"},
			Usage:   "Output in JSON format",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log at debug level",
		},
	}
}
