package feed

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Store is a read-only, in-memory feed. It is safe for concurrent use
// because nothing mutates it after NewStore.
type Store struct {
	items []Item
}

// NewStore copies items into a new Store.
func NewStore(items []Item) *Store {
	return &Store{items: cloneItems(items)}
}

// All returns every item in feed order.
func (s *Store) All() []Item {
	return cloneItems(s.items)
}

// Len returns the number of items in the store.
func (s *Store) Len() int {
	return len(s.items)
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (Item, bool) {
	item, ok := lo.Find(s.items, func(it Item) bool { return it.ID == id })
	if !ok {
		return Item{}, false
	}
	return cloneItem(item), true
}

// FilterByCategory returns the items in the category with the given label.
// "All" returns everything. An item matches when its category equals the
// label's id or any of its tags equals the id, ignoring case.
func (s *Store) FilterByCategory(label string) []Item {
	return cloneItems(filterByCategory(s.items, label))
}

// Search returns the items whose title, excerpt or any tag contains query,
// ignoring case. A blank query returns everything.
func (s *Store) Search(query string) []Item {
	return cloneItems(search(s.items, query))
}

// Query narrows the feed by category label and search text, then returns
// the window [Offset, Offset+Limit) of the result.
type Query struct {
	Category string
	Search   string
	Offset   int
	Limit    int
}

// Result is one window of a feed query.
type Result struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
}

// Find applies q. An empty category means "All"; a Limit <= 0 returns
// everything from Offset on.
func (s *Store) Find(q Query) Result {
	matched := s.items
	if q.Category != "" {
		matched = filterByCategory(matched, q.Category)
	}
	matched = search(matched, q.Search)

	offset := max(q.Offset, 0)
	end := len(matched)
	if q.Limit > 0 {
		end = offset + q.Limit
	}
	return Result{
		Items: cloneItems(lo.Slice(matched, offset, end)),
		Total: len(matched),
	}
}

func filterByCategory(items []Item, label string) []Item {
	if label == AllCategories {
		return items
	}
	id := IDForLabel(label)
	return lo.Filter(items, func(it Item, _ int) bool {
		return it.Category == id || lo.SomeBy(it.Tags, func(tag string) bool {
			return strings.EqualFold(tag, id)
		})
	})
}

func search(items []Item, query string) []Item {
	if strings.TrimSpace(query) == "" {
		return items
	}
	q := strings.ToLower(query)
	return lo.Filter(items, func(it Item, _ int) bool {
		return strings.Contains(strings.ToLower(it.Title), q) ||
			strings.Contains(strings.ToLower(it.Excerpt), q) ||
			lo.SomeBy(it.Tags, func(tag string) bool {
				return strings.Contains(strings.ToLower(tag), q)
			})
	})
}

func cloneItem(it Item) Item {
	it.Tags = slices.Clone(it.Tags)
	return it
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = cloneItem(it)
	}
	return out
}
