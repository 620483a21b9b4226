package feed

// DefaultPageSize is how many items a Pager reveals at a time.
const DefaultPageSize = 3

// Pager reveals a result list progressively, pageSize items at a time.
// It is not safe for concurrent use.
type Pager struct {
	items    []Item
	pageSize int
	visible  int
}

// NewPager starts with the first page of items visible. A pageSize <= 0
// uses DefaultPageSize.
func NewPager(items []Item, pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	p := &Pager{items: items, pageSize: pageSize}
	p.Reset()
	return p
}

// Visible returns the currently revealed prefix of the items.
func (p *Pager) Visible() []Item {
	return p.items[:p.visible]
}

// HasMore reports whether More would reveal anything.
func (p *Pager) HasMore() bool {
	return p.visible < len(p.items)
}

// More reveals the next page and returns the newly visible items.
func (p *Pager) More() []Item {
	start := p.visible
	p.visible = min(p.visible+p.pageSize, len(p.items))
	return p.items[start:p.visible]
}

// Reset shows only the first page again.
func (p *Pager) Reset() {
	p.visible = min(p.pageSize, len(p.items))
}
