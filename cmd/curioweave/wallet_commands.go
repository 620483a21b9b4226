package main

import (
	"context"
	"fmt"
	"os"

	"github.com/brojonat/curioweave/service/arweave"
	"github.com/urfave/cli/v2"
)

func walletGenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate a new wallet key and mint test funds into it",
		Description: `Generates a 4096-bit RSA wallet, writes it as a JWK file and asks the
node to mint test funds into the new address. A failed mint is reported but
does not fail the command; production nodes have no mint endpoint.

Example:
  curioweave wallet generate --out wallet.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Where to write the key (defaults to --key-file)",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing key file",
			},
		},
		Action: func(c *cli.Context) error {
			out := c.String("out")
			if out == "" {
				out = c.String("key-file")
			}
			if _, err := os.Stat(out); err == nil && !c.Bool("force") {
				return fmt.Errorf("%s already exists (use --force to overwrite)", out)
			}

			wallets := newWalletClient(c, newLogger(c))
			wallet, err := wallets.GenerateWallet(context.Background())
			if err != nil {
				return fmt.Errorf("failed to generate wallet: %w", err)
			}
			if err := arweave.SaveKeyFile(out, wallet.Key); err != nil {
				return err
			}

			if c.Bool("json") {
				return outputJSON(c.App.Writer, map[string]string{
					"address":  wallet.Address,
					"key_file": out,
				})
			}

			fmt.Fprintf(c.App.Writer, "✓ Wallet generated\n")
			fmt.Fprintf(c.App.Writer, "  Address:  %s\n", wallet.Address)
			fmt.Fprintf(c.App.Writer, "  Key file: %s\n", out)
			return nil
		},
	}
}

func walletAddressCommand() *cli.Command {
	return &cli.Command{
		Name:  "address",
		Usage: "Print the address of the wallet in --key-file",
		Action: func(c *cli.Context) error {
			sess, err := loadSession(c)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return outputJSON(c.App.Writer, map[string]string{"address": sess.Address()})
			}
			fmt.Fprintln(c.App.Writer, sess.Address())
			return nil
		},
	}
}

func walletBalanceCommand() *cli.Command {
	return &cli.Command{
		Name:      "balance",
		Usage:     "Show a wallet balance in AR",
		ArgsUsage: "[address]",
		Action: func(c *cli.Context) error {
			address, err := resolveAddress(c)
			if err != nil {
				return err
			}

			wallets := newWalletClient(c, newLogger(c))
			balance := wallets.GetBalance(context.Background(), address)

			if c.Bool("json") {
				return outputJSON(c.App.Writer, map[string]string{
					"address": address,
					"balance": balance,
				})
			}
			fmt.Fprintf(c.App.Writer, "%s AR\n", balance)
			return nil
		},
	}
}

func walletMintCommand() *cli.Command {
	return &cli.Command{
		Name:      "mint",
		Usage:     "Mint test funds into a wallet (test nodes only)",
		ArgsUsage: "[address]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "ar",
				Usage: "Amount in AR (defaults to --mint-amount winston)",
			},
		},
		Action: func(c *cli.Context) error {
			address, err := resolveAddress(c)
			if err != nil {
				return err
			}

			winston := c.String("mint-amount")
			if ar := c.String("ar"); ar != "" {
				winston, err = arweave.ARToWinston(ar)
				if err != nil {
					return fmt.Errorf("invalid --ar amount: %w", err)
				}
			}

			wallets := newWalletClient(c, newLogger(c))
			ctx := context.Background()
			if !wallets.Mint(ctx, address, winston) {
				return fmt.Errorf("mint failed for %s", address)
			}
			balance := wallets.GetBalance(ctx, address)

			if c.Bool("json") {
				return outputJSON(c.App.Writer, map[string]string{
					"address": address,
					"minted":  winston,
					"balance": balance,
				})
			}
			fmt.Fprintf(c.App.Writer, "✓ Minted %s winston\n", winston)
			fmt.Fprintf(c.App.Writer, "  Balance: %s AR\n", balance)
			return nil
		},
	}
}
