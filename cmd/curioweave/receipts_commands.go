package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/brojonat/curioweave/service/db"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

func receiptsListCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List journaled submissions for a wallet",
		ArgsUsage: "[address]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Filter by kind (profile, content)",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Maximum number of receipts",
				Value:   50,
			},
		},
		Action: func(c *cli.Context) error {
			address, err := resolveAddress(c)
			if err != nil {
				return err
			}

			kind := c.String("kind")
			if kind != "" && kind != db.KindProfile && kind != db.KindContent {
				return fmt.Errorf("invalid kind %q: must be %s or %s", kind, db.KindProfile, db.KindContent)
			}

			store, closer, err := getStore(c)
			if err != nil {
				return err
			}
			defer closer()

			receipts, err := store.ListReceiptsByWallet(context.Background(), db.ListReceiptsByWalletParams{
				WalletAddress: address,
				Kind:          kind,
				Limit:         int32(c.Int("limit")),
			})
			if err != nil {
				return err
			}

			if c.Bool("json") {
				return outputJSON(c.App.Writer, receipts)
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TX ID\tKIND\tTITLE\tSIZE\tNODE STATUS\tCREATED")
			for _, r := range receipts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s (%s)\n",
					r.TxID,
					r.Kind,
					r.Title,
					humanize.Bytes(uint64(r.DataSize)),
					r.NodeStatus,
					r.CreatedAt.Format(time.RFC3339),
					humanize.Time(r.CreatedAt),
				)
			}
			w.Flush()

			fmt.Fprintf(c.App.ErrWriter, "\nTotal: %d receipts\n", len(receipts))
			return nil
		},
	}
}

func receiptsGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show one journaled submission",
		ArgsUsage: "<tx-id>",
		Action: func(c *cli.Context) error {
			txID := c.Args().First()
			if txID == "" {
				return fmt.Errorf("transaction id is required")
			}

			store, closer, err := getStore(c)
			if err != nil {
				return err
			}
			defer closer()

			r, err := store.GetReceipt(context.Background(), txID)
			if errors.Is(err, db.ErrNotFound) {
				return fmt.Errorf("no receipt for transaction %s", txID)
			}
			if err != nil {
				return err
			}

			if c.Bool("json") {
				return outputJSON(c.App.Writer, r)
			}
			fmt.Fprintf(c.App.Writer, "Transaction: %s\n", r.TxID)
			fmt.Fprintf(c.App.Writer, "  Wallet:      %s\n", r.WalletAddress)
			fmt.Fprintf(c.App.Writer, "  Kind:        %s\n", r.Kind)
			fmt.Fprintf(c.App.Writer, "  Title:       %s\n", r.Title)
			fmt.Fprintf(c.App.Writer, "  Size:        %s\n", humanize.Bytes(uint64(r.DataSize)))
			fmt.Fprintf(c.App.Writer, "  Node status: %d\n", r.NodeStatus)
			fmt.Fprintf(c.App.Writer, "  Created:     %s (%s)\n", r.CreatedAt.Format(time.RFC3339), humanize.Time(r.CreatedAt))
			return nil
		},
	}
}

func receiptsDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Remove a submission from the journal (the ledger transaction is unaffected)",
		ArgsUsage: "<tx-id>",
		Action: func(c *cli.Context) error {
			txID := c.Args().First()
			if txID == "" {
				return fmt.Errorf("transaction id is required")
			}

			store, closer, err := getStore(c)
			if err != nil {
				return err
			}
			defer closer()

			if err := store.DeleteReceipt(context.Background(), txID); err != nil {
				if errors.Is(err, db.ErrNotFound) {
					return fmt.Errorf("no receipt for transaction %s", txID)
				}
				return err
			}
			fmt.Fprintf(c.App.Writer, "✓ Receipt %s deleted\n", txID)
			return nil
		},
	}
}
