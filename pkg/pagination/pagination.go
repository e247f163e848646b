package pagination

import (
	"github.com/mcastellon/shopora-backend/pkg/types"
)

const (
	// DefaultPerPage is the standard page size when one is not provided.
	DefaultPerPage = 12
	// MaxPerPage caps how many rows any listing can request.
	MaxPerPage = 100
)

// Params holds page-based pagination inputs from controllers.
type Params struct {
	Page    int
	PerPage int
}

// Normalize applies defaults and caps to raw inputs.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// Limit returns the normalized page size.
func (p Params) Limit() int {
	return p.Normalize().PerPage
}

// MetaFor builds the response meta block for a total row count.
func (p Params) MetaFor(total int64) *types.Meta {
	n := p.Normalize()
	lastPage := int((total + int64(n.PerPage) - 1) / int64(n.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return &types.Meta{
		CurrentPage: n.Page,
		PerPage:     n.PerPage,
		Total:       total,
		LastPage:    lastPage,
	}
}
