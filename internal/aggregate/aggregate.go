// Package aggregate collapses denormalized join output into nested entities.
//
// A left join from a parent table to its children yields one row per
// parent x child pairing (or a single all-null-child row when the parent has
// no children). Folder rebuilds the parent entities in a single forward pass,
// keyed by parent identity, preserving the order in which parents first
// appear — which is the order the query's ORDER BY produced.
package aggregate

// Folder accumulates rows of type R into parents of type P keyed by K.
type Folder[K comparable, R any, P any] struct {
	key   func(R) K
	first func(R) *P
	each  func(*P, R)

	index map[K]*P
	order []*P
}

// NewFolder builds a Folder. key extracts the parent identity from a row,
// first builds the parent accumulator from the first row seen for that
// identity, and each is invoked for every row (including the first) to
// collect child projections.
func NewFolder[K comparable, R any, P any](
	key func(R) K,
	first func(R) *P,
	each func(*P, R),
) *Folder[K, R, P] {
	return &Folder[K, R, P]{
		key:   key,
		first: first,
		each:  each,
		index: make(map[K]*P),
	}
}

// Add folds one row into the accumulator.
func (f *Folder[K, R, P]) Add(row R) {
	k := f.key(row)
	parent, seen := f.index[k]
	if !seen {
		parent = f.first(row)
		f.index[k] = parent
		f.order = append(f.order, parent)
	}
	f.each(parent, row)
}

// AddAll folds rows in order.
func (f *Folder[K, R, P]) AddAll(rows []R) {
	for _, row := range rows {
		f.Add(row)
	}
}

// Values returns the accumulated parents in first-occurrence order. The slice
// is never nil so an empty page serializes as [] rather than null.
func (f *Folder[K, R, P]) Values() []*P {
	if f.order == nil {
		return []*P{}
	}
	return f.order
}

// Fold is the one-shot form: fold rows and return the grouped parents.
func Fold[K comparable, R any, P any](
	rows []R,
	key func(R) K,
	first func(R) *P,
	each func(*P, R),
) []*P {
	f := NewFolder(key, first, each)
	f.AddAll(rows)
	return f.Values()
}
