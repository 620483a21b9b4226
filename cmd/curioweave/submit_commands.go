package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brojonat/curioweave/service/submission"
	"github.com/urfave/cli/v2"
)

// newSubmitter wires the wallet client, the API client and, when a
// database is configured, the receipt journal.
func newSubmitter(c *cli.Context, logger *slog.Logger) (*submission.Submitter, func(), error) {
	var recorder submission.Recorder
	closer := func() {}

	if c.String("database-url") != "" {
		store, closeStore, err := getStore(c)
		if err != nil {
			return nil, nil, err
		}
		recorder = store
		closer = closeStore
	}

	s := submission.New(newWalletClient(c, logger), newAPIClient(c, logger), recorder, nil, logger)
	return s, closer, nil
}

func profileCreateCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a profile as a signed ledger transaction",
		Description: `Posts the profile to the ledger tagged with username, fullName and
interests, and sends it to the CurioWeave API. The ledger post and the API
call are independent; a ledger failure is reported but only an API failure
fails the command.

Example:
  curioweave profile create --full-name "Ada Lovelace" --username ada --interest ai --interest tech`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "full-name",
				Usage: "Full name",
			},
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "Username",
			},
			&cli.StringSliceFlag{
				Name:    "interest",
				Aliases: []string{"i"},
				Usage:   "Interest category id (repeatable), e.g. ai, web3, defi",
			},
		},
		Action: func(c *cli.Context) error {
			logger := newLogger(c)

			form := submission.ProfileForm{
				FullName:  c.String("full-name"),
				Username:  c.String("username"),
				Interests: c.StringSlice("interest"),
			}
			// Rejected forms must not reach the database either.
			if err := form.Validate(); err != nil {
				return err
			}

			sess, err := loadSession(c)
			if err != nil {
				return err
			}
			submitter, closer, err := newSubmitter(c, logger)
			if err != nil {
				return err
			}
			defer closer()

			result, err := submitter.SubmitProfile(context.Background(), sess, form)
			if err != nil {
				return err
			}

			if c.Bool("json") {
				out := map[string]any{
					"profile": result.Profile,
					"tx_id":   result.TxID,
					"message": result.Echo.Message,
				}
				if result.LedgerErr != nil {
					out["ledger_error"] = result.LedgerErr.Error()
				}
				return outputJSON(c.App.Writer, out)
			}

			fmt.Fprintf(c.App.Writer, "✓ %s\n", result.Echo.Message)
			fmt.Fprintf(c.App.Writer, "  Username:  %s\n", result.Profile.Username)
			fmt.Fprintf(c.App.Writer, "  Wallet:    %s\n", result.Profile.WalletAddress)
			if result.LedgerErr != nil {
				fmt.Fprintf(c.App.Writer, "  Ledger:    failed (%v)\n", result.LedgerErr)
			} else {
				fmt.Fprintf(c.App.Writer, "  Ledger tx: %s\n", result.TxID)
			}
			return nil
		},
	}
}

func contentUploadCommand() *cli.Command {
	return &cli.Command{
		Name:  "upload",
		Usage: "Upload a content item as a signed ledger transaction",
		Description: `Builds a feed item authored by your wallet and posts it tagged with its
Content-Kind and Category.

Example:
  curioweave content upload --title "Hello" --excerpt "First post" --category web3 \
      --tag Web3 --tag Tutorial --text "Body text"`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Usage: "Title"},
			&cli.StringFlag{Name: "excerpt", Usage: "Short excerpt"},
			&cli.StringFlag{Name: "category", Usage: "Category id, e.g. web3"},
			&cli.StringSliceFlag{Name: "tag", Aliases: []string{"t"}, Usage: "Tag (repeatable)"},
			&cli.StringFlag{Name: "type", Usage: "Content type: text, image or video", Value: "text"},
			&cli.StringFlag{Name: "text", Usage: "Text content (type text)"},
			&cli.StringFlag{Name: "media-url", Usage: "Image or video URL (type image or video)"},
		},
		Action: func(c *cli.Context) error {
			logger := newLogger(c)

			form := submission.ContentForm{
				Title:       c.String("title"),
				Excerpt:     c.String("excerpt"),
				Category:    c.String("category"),
				Tags:        c.StringSlice("tag"),
				ContentType: submission.ContentType(c.String("type")),
				TextContent: c.String("text"),
				MediaURL:    c.String("media-url"),
			}
			if err := form.Validate(); err != nil {
				return err
			}

			sess, err := loadSession(c)
			if err != nil {
				return err
			}
			submitter, closer, err := newSubmitter(c, logger)
			if err != nil {
				return err
			}
			defer closer()

			result, err := submitter.SubmitContent(context.Background(), sess, form)
			if err != nil {
				return err
			}

			if c.Bool("json") {
				return outputJSON(c.App.Writer, map[string]any{
					"item":  result.Item,
					"tx_id": result.TxID,
				})
			}

			fmt.Fprintf(c.App.Writer, "✓ Content uploaded successfully\n")
			fmt.Fprintf(c.App.Writer, "  Item:      %s\n", result.Item.ID)
			fmt.Fprintf(c.App.Writer, "  Title:     %s\n", result.Item.Title)
			fmt.Fprintf(c.App.Writer, "  Ledger tx: %s\n", result.TxID)
			return nil
		},
	}
}
