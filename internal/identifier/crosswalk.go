package identifier

import (
	"errors"
	"fmt"
)

// ErrLookupAmbiguous indicates a condo unit that maps to more than one parent
// lot in the same crosswalk snapshot. This corrupts aggregation, so it is
// fatal to the run rather than resolved by picking one.
var ErrLookupAmbiguous = errors.New("condo unit maps to multiple parent lots")

// Crosswalk maps condo-unit BBLs to their parent (billing) lot for one report
// year. The mapping is one hop only: crosswalk snapshots are assumed already
// collapsed, so parents are never resolved transitively.
type Crosswalk struct {
	year    int
	parents map[BBL]BBL
}

func NewCrosswalk(year int) *Crosswalk {
	return &Crosswalk{
		year:    year,
		parents: make(map[BBL]BBL),
	}
}

// Add registers a child-to-parent pair. Re-adding the same pair is a no-op;
// the same child with a different parent returns ErrLookupAmbiguous.
func (c *Crosswalk) Add(child, parent BBL) error {
	if existing, ok := c.parents[child]; ok {
		if existing != parent {
			return fmt.Errorf("%w: unit %s maps to %s and %s (year %d)",
				ErrLookupAmbiguous, child, existing, parent, c.year)
		}
		return nil
	}
	c.parents[child] = parent
	return nil
}

// Resolve returns the parent lot for a condo unit, or the input unchanged
// when the identifier is not in the crosswalk (a non-condo lot is its own
// mappable lot).
func (c *Crosswalk) Resolve(b BBL) BBL {
	if parent, ok := c.parents[b]; ok {
		return parent
	}
	return b
}

func (c *Crosswalk) Year() int {
	return c.year
}

func (c *Crosswalk) Len() int {
	return len(c.parents)
}
