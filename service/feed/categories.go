package feed

import (
	"strings"

	"github.com/samber/lo"
)

// AllCategories is the pseudo-category that disables category filtering.
const AllCategories = "All"

// Category is one interest a profile can select and a feed item belongs to.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Categories is the fixed interest enumeration, in display order.
var Categories = []Category{
	{ID: "ai", Label: "AI"},
	{ID: "learning", Label: "Learning"},
	{ID: "news", Label: "News"},
	{ID: "web3", Label: "Web3"},
	{ID: "travel", Label: "Travel"},
	{ID: "twitter", Label: "Twitter"},
	{ID: "crypto", Label: "Cryptocurrency"},
	{ID: "tech", Label: "Technology"},
	{ID: "defi", Label: "DeFi"},
	{ID: "nft", Label: "NFT"},
	{ID: "dao", Label: "DAO"},
	{ID: "metaverse", Label: "Metaverse"},
}

// ValidCategory reports whether id is one of the known category ids.
func ValidCategory(id string) bool {
	_, ok := lo.Find(Categories, func(c Category) bool { return c.ID == id })
	return ok
}

// LabelFor returns the display label for a category id.
func LabelFor(id string) (string, bool) {
	c, ok := lo.Find(Categories, func(c Category) bool { return c.ID == id })
	return c.Label, ok
}

// IDForLabel maps a display label back to its id. Unknown labels fall back
// to their lower-cased form so free-form tags still filter.
func IDForLabel(label string) string {
	if c, ok := lo.Find(Categories, func(c Category) bool { return c.Label == label }); ok {
		return c.ID
	}
	return strings.ToLower(label)
}

// CategoriesFor returns the filter options for a profile: "All" followed by
// the labels of its known interests, in the order given.
func CategoriesFor(interests []string) []string {
	labels := lo.FilterMap(interests, func(id string, _ int) (string, bool) {
		return LabelFor(id)
	})
	return append([]string{AllCategories}, labels...)
}
