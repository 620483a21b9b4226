package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/brojonat/curioweave/service/arweave"
	"github.com/dustin/go-humanize"
	"github.com/itchyny/gojq"
	"github.com/urfave/cli/v2"
)

func txListCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List a wallet's recent transactions, classified",
		ArgsUsage: "[address]",
		Description: `Queries the ledger for recent transactions involving the address (the
--key-file wallet by default) and classifies each as Profile Creation,
Content Upload, Sent, Received or Other. Pending transactions come first.

Each --jq filter is evaluated against the transaction's JSON form; only
transactions for which every filter is truthy are shown.

Example:
  curioweave tx list --jq '.type == "Content Upload"' --jq '.status == "Completed"'`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "How many recent ledger transactions to query",
				Value:   10,
			},
			&cli.StringSliceFlag{
				Name:  "jq",
				Usage: "jq filter that must be truthy (repeatable)",
			},
		},
		Action: func(c *cli.Context) error {
			address, err := resolveAddress(c)
			if err != nil {
				return err
			}

			filters, err := compileJQFilters(c.StringSlice("jq"))
			if err != nil {
				return err
			}

			logger := newLogger(c)
			txs := newWalletClient(c, logger).QueryTransactions(context.Background(), address, c.Int("limit"))

			matched := make([]arweave.ProcessedTransaction, 0, len(txs))
			for _, tx := range txs {
				ok, err := matchesAll(filters, tx)
				if err != nil {
					logger.Debug("jq filter error", "id", tx.ID, "error", err)
				}
				if ok {
					matched = append(matched, tx)
				}
			}

			if c.Bool("json") {
				return outputJSON(c.App.Writer, matched)
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tAMOUNT\tSENDER\tRECIPIENT\tSIZE\tSTATUS\tTIMESTAMP")
			for _, tx := range matched {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					tx.ID,
					tx.Type,
					tx.Amount,
					tx.Sender,
					tx.Recipient,
					formatSize(tx.DataSize),
					tx.Status,
					tx.Timestamp,
				)
			}
			w.Flush()

			fmt.Fprintf(c.App.ErrWriter, "\nTotal: %d transactions\n", len(matched))
			return nil
		},
	}
}

func compileJQFilters(filters []string) ([]*gojq.Code, error) {
	compiled := make([]*gojq.Code, len(filters))
	for i, filter := range filters {
		query, err := gojq.Parse(filter)
		if err != nil {
			return nil, fmt.Errorf("failed to parse jq filter %q: %w", filter, err)
		}
		compiled[i], err = gojq.Compile(query)
		if err != nil {
			return nil, fmt.Errorf("failed to compile jq filter %q: %w", filter, err)
		}
	}
	return compiled, nil
}

// matchesAll runs every filter against v's JSON form. All must yield a
// truthy first result.
func matchesAll(filters []*gojq.Code, v any) (bool, error) {
	if len(filters) == 0 {
		return true, nil
	}

	// gojq works on plain JSON values, not structs.
	data, err := json.Marshal(v)
	if err != nil {
		return false, err
	}
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return false, err
	}

	for _, code := range filters {
		iter := code.Run(input)
		result, ok := iter.Next()
		if !ok {
			return false, nil
		}
		if err, isErr := result.(error); isErr {
			return false, err
		}
		if !isTruthy(result) {
			return false, nil
		}
	}
	return true, nil
}

// isTruthy follows jq: only null and false are falsy.
func isTruthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

func formatSize(dataSize string) string {
	n, err := strconv.ParseUint(dataSize, 10, 64)
	if err != nil {
		return dataSize
	}
	return humanize.Bytes(n)
}
