package feed

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

const (
	itemsPerCategory  = 10
	videosPerCategory = 5
	base36            = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Item is one entry of the content feed.
type Item struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt"`
	Author        string   `json:"author"`
	AuthorAddress string   `json:"authorAddress"`
	Category      string   `json:"category"`
	Timestamp     string   `json:"timestamp"`
	Tags          []string `json:"tags"`
	Likes         int      `json:"likes"`
	Comments      int      `json:"comments"`
	VideoURL      string   `json:"videoUrl"`
	ImageURL      string   `json:"imageUrl"`
	IsVideo       bool     `json:"isVideo"`
	TextContent   string   `json:"textContent,omitempty"`
}

// Generate builds the sample feed: ten items per category, the first five
// of each being videos. The same seed always yields the same items.
func Generate(seed uint64) []Item {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	items := make([]Item, 0, len(Categories)*itemsPerCategory)
	id := 1

	for _, c := range Categories {
		m := media[c.ID]
		for i := range itemsPerCategory {
			isVideo := i < videosPerCategory
			tags := []string{c.Label, "Web3", "News", "Featured"}
			if i%2 == 0 {
				tags[2] = "Tutorial"
			}
			if i%3 == 0 {
				tags[3] = "Trending"
			}

			item := Item{
				ID:            strconv.Itoa(id),
				Title:         fmt.Sprintf("%s Insight %d", c.Label, i+1),
				Excerpt:       fmt.Sprintf("Exploring the latest developments in %s and how they impact the Web3 ecosystem.", c.Label),
				Author:        fmt.Sprintf("%s_expert%d", c.ID, i+1),
				AuthorAddress: "ar" + randomBase36(rng, 6) + "..." + randomBase36(rng, 3),
				Category:      c.ID,
				Timestamp:     fmt.Sprintf("%d hours ago", rng.IntN(23)+1),
				Tags:          tags,
				Likes:         rng.IntN(200) + 10,
				Comments:      rng.IntN(50) + 1,
				ImageURL:      pick(m.images, i%videosPerCategory, defaultImageURL),
				IsVideo:       isVideo,
			}
			if isVideo {
				item.VideoURL = pick(m.videos, i%videosPerCategory, defaultVideoURL)
			}

			items = append(items, item)
			id++
		}
	}
	return items
}

func randomBase36(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rng.IntN(len(base36))]
	}
	return string(b)
}

func pick(urls []string, i int, fallback string) string {
	if i < len(urls) && urls[i] != "" {
		return urls[i]
	}
	return fallback
}
