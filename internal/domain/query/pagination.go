// Package query provides shared repository query helpers.
package query

// Order directions accepted by repository listings.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Pagination captures limit/offset style pagination with optional
// cursor semantics. After holds a public ID; records created at or
// before it are excluded from the page.
type Pagination struct {
	Limit  *int
	Offset *int
	Order  string
	After  *string
}

// NewPagination builds a Pagination from optional limit/offset values.
func NewPagination(limit, offset *int) *Pagination {
	return &Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// EffectiveLimit returns the page size, falling back to def and capping at max.
func (p *Pagination) EffectiveLimit(def, max int) int {
	if p == nil || p.Limit == nil || *p.Limit <= 0 {
		return def
	}
	if *p.Limit > max {
		return max
	}
	return *p.Limit
}

// EffectiveOffset returns the offset or zero.
func (p *Pagination) EffectiveOffset() int {
	if p == nil || p.Offset == nil || *p.Offset < 0 {
		return 0
	}
	return *p.Offset
}

// EffectiveAfter returns the cursor public ID or an empty string.
func (p *Pagination) EffectiveAfter() string {
	if p == nil || p.After == nil {
		return ""
	}
	return *p.After
}

// EffectiveOrder normalizes the order direction, defaulting to descending.
func (p *Pagination) EffectiveOrder() string {
	if p == nil || p.Order == "" {
		return OrderDesc
	}
	if p.Order != OrderAsc && p.Order != OrderDesc {
		return OrderDesc
	}
	return p.Order
}
