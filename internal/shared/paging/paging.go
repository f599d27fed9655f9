package paging

import (
	"errors"
	"math"
)

const (
	DefaultSkip  = 0
	DefaultLimit = 100
)

var ErrInvalidPage = errors.New("skip and limit must be non-negative")

// Page is an offset/limit window over an ordered listing.
type Page struct {
	Skip  int
	Limit int
}

// New applies defaults to omitted values and rejects negative ones.
// There is no upper bound on limit.
func New(skip *int, limit *int) (Page, error) {
	page := Page{Skip: DefaultSkip, Limit: DefaultLimit}
	if skip != nil {
		page.Skip = *skip
	}
	if limit != nil {
		page.Limit = *limit
	}
	if page.Skip < 0 || page.Limit < 0 {
		return Page{}, ErrInvalidPage
	}
	return page, nil
}

// Default is the window used when the caller supplies nothing.
func Default() Page {
	return Page{Skip: DefaultSkip, Limit: DefaultLimit}
}

// Window returns the [start, end) bounds of the page within n items.
func (p Page) Window(n int) (int, int) {
	start := p.Skip
	if start > n {
		start = n
	}
	end := start + p.Limit
	if end > n || end < start {
		end = n
	}
	return start, end
}

// All is an unbounded window, used by exports.
func All() Page {
	return Page{Skip: 0, Limit: math.MaxInt32}
}
