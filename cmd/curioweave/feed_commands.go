package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/brojonat/curioweave/client"
	"github.com/brojonat/curioweave/service/feed"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

func feedListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List feed items, revealed a page at a time",
		Description: `Lists the sample feed filtered by category label and search text. Items
are revealed --page-size at a time; --pages reveals that many pages.

With --local the feed is generated in-process from --seed instead of being
fetched from the API.

Example:
  curioweave feed list --category DeFi --pages 2`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"c"},
				Usage:   "Category label, e.g. DeFi (All for everything)",
				Value:   feed.AllCategories,
			},
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Case-insensitive search over titles, excerpts and tags",
			},
			&cli.IntFlag{
				Name:  "page-size",
				Usage: "Items revealed per page",
				Value: feed.DefaultPageSize,
			},
			&cli.IntFlag{
				Name:  "pages",
				Usage: "Number of pages to reveal",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "local",
				Usage: "Generate the feed locally instead of calling the API",
			},
			&cli.Uint64Flag{
				Name:    "seed",
				Usage:   "Seed for --local generation",
				EnvVars: []string{"FEED_SEED"},
				Value:   42,
			},
		},
		Action: func(c *cli.Context) error {
			if c.Int("pages") < 1 {
				return fmt.Errorf("--pages must be at least 1")
			}

			items, err := fetchFeed(c)
			if err != nil {
				return err
			}

			pager := feed.NewPager(items, c.Int("page-size"))
			for i := 1; i < c.Int("pages") && pager.HasMore(); i++ {
				pager.More()
			}
			visible := pager.Visible()

			if c.Bool("json") {
				return outputJSON(c.App.Writer, map[string]any{
					"items":    visible,
					"total":    len(items),
					"has_more": pager.HasMore(),
				})
			}

			if len(items) == 0 {
				fmt.Fprintln(c.App.Writer, "No content found. Try a different category or search.")
				return nil
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tAUTHOR\tKIND\tLIKES\tCOMMENTS\tPOSTED")
			for _, it := range visible {
				kind := "image"
				if it.IsVideo {
					kind = "video"
				} else if it.TextContent != "" {
					kind = "text"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					it.ID,
					it.Title,
					it.Category,
					it.Author,
					kind,
					humanize.Comma(int64(it.Likes)),
					humanize.Comma(int64(it.Comments)),
					it.Timestamp,
				)
			}
			w.Flush()

			more := ""
			if pager.HasMore() {
				more = " (use --pages to load more)"
			}
			fmt.Fprintf(c.App.ErrWriter, "\nShowing %d of %d items%s\n", len(visible), len(items), more)
			return nil
		},
	}
}

func fetchFeed(c *cli.Context) ([]feed.Item, error) {
	if c.Bool("local") {
		q := feed.Query{Category: c.String("category"), Search: c.String("search")}
		return feed.NewStore(feed.Generate(c.Uint64("seed"))).Find(q).Items, nil
	}

	api := newAPIClient(c, newLogger(c))
	res, err := api.Feed(context.Background(), client.FeedQuery{
		Category: c.String("category"),
		Search:   c.String("search"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	return res.Items, nil
}

func feedGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show one feed item",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "local",
				Usage: "Generate the feed locally instead of calling the API",
			},
			&cli.Uint64Flag{
				Name:    "seed",
				Usage:   "Seed for --local generation",
				EnvVars: []string{"FEED_SEED"},
				Value:   42,
			},
		},
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return fmt.Errorf("feed item id is required")
			}

			var item feed.Item
			if c.Bool("local") {
				found, ok := feed.NewStore(feed.Generate(c.Uint64("seed"))).Get(id)
				if !ok {
					return fmt.Errorf("feed item %s not found", id)
				}
				item = found
			} else {
				found, err := newAPIClient(c, newLogger(c)).FeedItem(context.Background(), id)
				if err != nil {
					return fmt.Errorf("failed to fetch feed item: %w", err)
				}
				item = *found
			}

			if c.Bool("json") {
				return outputJSON(c.App.Writer, item)
			}

			media := item.ImageURL
			if item.IsVideo {
				media = item.VideoURL
			}
			fmt.Fprintf(c.App.Writer, "%s\n", item.Title)
			fmt.Fprintf(c.App.Writer, "  %s\n", item.Excerpt)
			fmt.Fprintf(c.App.Writer, "  Author:   %s (%s)\n", item.Author, item.AuthorAddress)
			fmt.Fprintf(c.App.Writer, "  Category: %s\n", item.Category)
			fmt.Fprintf(c.App.Writer, "  Tags:     %s\n", strings.Join(item.Tags, ", "))
			fmt.Fprintf(c.App.Writer, "  Likes:    %s  Comments: %s\n", humanize.Comma(int64(item.Likes)), humanize.Comma(int64(item.Comments)))
			fmt.Fprintf(c.App.Writer, "  Posted:   %s\n", item.Timestamp)
			if item.TextContent != "" {
				fmt.Fprintf(c.App.Writer, "\n%s\n", item.TextContent)
			} else if media != "" {
				fmt.Fprintf(c.App.Writer, "  Media:    %s\n", media)
			}
			return nil
		},
	}
}

func feedCategoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "Show the filter categories for a set of interests",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "interest",
				Aliases: []string{"i"},
				Usage:   "Interest category id (repeatable); none lists every category",
			},
			&cli.BoolFlag{
				Name:  "local",
				Usage: "Resolve locally instead of calling the API",
			},
		},
		Action: func(c *cli.Context) error {
			interests := c.StringSlice("interest")

			if len(interests) == 0 {
				if c.Bool("json") {
					return outputJSON(c.App.Writer, feed.Categories)
				}
				w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tLABEL")
				for _, cat := range feed.Categories {
					fmt.Fprintf(w, "%s\t%s\n", cat.ID, cat.Label)
				}
				return w.Flush()
			}

			var labels []string
			if c.Bool("local") {
				labels = feed.CategoriesFor(interests)
			} else {
				var err error
				labels, err = newAPIClient(c, newLogger(c)).Categories(context.Background(), interests)
				if err != nil {
					return fmt.Errorf("failed to fetch categories: %w", err)
				}
			}

			if c.Bool("json") {
				return outputJSON(c.App.Writer, labels)
			}
			fmt.Fprintln(c.App.Writer, strings.Join(labels, ", "))
			return nil
		},
	}
}
