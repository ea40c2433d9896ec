package cgraph

import (
	"slices"

	"golang.org/x/exp/maps"
)

// IDSet is a set of discipline ids.
type IDSet map[DisciplineID]bool

// NewIDSet builds a set from the given ids.
func NewIDSet(ids ...DisciplineID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// Has reports set membership.
func (s IDSet) Has(id DisciplineID) bool {
	return s[id]
}

// Slice returns the members in ascending order.
func (s IDSet) Slice() []DisciplineID {
	ids := maps.Keys(s)
	slices.Sort(ids)
	return ids
}
