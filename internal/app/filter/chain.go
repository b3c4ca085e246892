package filter

import (
	"github.com/cockroachdb/errors"

	"github.com/oddeko/tunebox/internal/domain/track"
)

// Chain executes filters in sequence.
type Chain struct {
	filters []Filter
}

// NewChain creates a new filter chain.
func NewChain() *Chain {
	return &Chain{
		filters: make([]Filter, 0),
	}
}

// Add adds a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Execute runs all filters in sequence, returning the first rejection.
func (c *Chain) Execute(t track.Track) Result {
	for _, f := range c.filters {
		result := f.Check(t)
		if !result.Accepted {
			return result
		}
	}
	return Accept()
}

// Check adapts the chain to the player's admission contract: it returns
// a non-nil error carrying the rejection code when any filter rejects.
func (c *Chain) Check(t track.Track) error {
	if result := c.Execute(t); !result.Accepted {
		return errors.Newf("%s", result.Code)
	}
	return nil
}

// Filters returns all filters in the chain.
func (c *Chain) Filters() []Filter {
	return c.filters
}
