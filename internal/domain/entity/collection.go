package entity

import "slices"

// MaxCollectionSize is the hard cap on the number of members of any user collection.
const MaxCollectionSize = 50

// Collection names one of the bounded per-user sets.
type Collection string

const (
	CollectionFavourites Collection = "favourites"
	CollectionHistory    Collection = "history"
)

// IsValid reports whether c names a known collection.
func (c Collection) IsValid() bool {
	return c == CollectionFavourites || c == CollectionHistory
}

func (c Collection) String() string {
	return string(c)
}

// CollectionOp is a mutation applied to a collection.
type CollectionOp string

const (
	CollectionOpAdd    CollectionOp = "add"
	CollectionOpRemove CollectionOp = "remove"
)

// AddItem returns items with item appended unless it is already a member.
// added is false when the item was already present. full is true when the
// item is new but items already holds limit members; items is then returned unchanged.
func AddItem(items []string, item string, limit int) (out []string, added bool, full bool) {
	if slices.Contains(items, item) {
		return items, false, false
	}
	if limit > 0 && len(items) >= limit {
		return items, false, true
	}

	out = make([]string, 0, len(items)+1)
	out = append(out, items...)
	out = append(out, item)

	return out, true, false
}

// RemoveItem returns items without item. removed is false when item was not a member.
func RemoveItem(items []string, item string) (out []string, removed bool) {
	idx := slices.Index(items, item)
	if idx < 0 {
		return items, false
	}

	out = make([]string, 0, len(items)-1)
	out = append(out, items[:idx]...)
	out = append(out, items[idx+1:]...)

	return out, true
}
