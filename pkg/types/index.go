package types

import "strings"

// CategoryItems is one category and its items, in list order.
type CategoryItems struct {
	Category string  `json:"category"`
	Items    []*Item `json:"items"`
}

// CategoryIndex maps category names to ordered item lists. Keys are matched
// exactly (case-sensitive) and iterate in insertion order. An entry may be
// empty once its last item is removed; entries are never deleted.
type CategoryIndex struct {
	order []string
	items map[string][]*Item
}

// NewCategoryIndex returns an empty index.
func NewCategoryIndex() *CategoryIndex {
	return &CategoryIndex{items: make(map[string][]*Item)}
}

// Has reports whether the category exists, even if it holds no items.
func (x *CategoryIndex) Has(category string) bool {
	_, ok := x.items[category]
	return ok
}

// Ensure creates the category if it is absent and reports whether it did.
func (x *CategoryIndex) Ensure(category string) bool {
	if x.Has(category) {
		return false
	}
	x.order = append(x.order, category)
	x.items[category] = nil
	return true
}

// Append adds it to the end of the category's list, creating the category on
// first use. The item's Category field is set to the key it is filed under.
func (x *CategoryIndex) Append(category string, it *Item) {
	x.Ensure(category)
	it.Category = category
	x.items[category] = append(x.items[category], it)
}

// Categories returns category names in insertion order, including empty ones.
func (x *CategoryIndex) Categories() []string {
	out := make([]string, len(x.order))
	copy(out, x.order)
	return out
}

// Items returns a copy of the category's list. The *Item values are shared.
func (x *CategoryIndex) Items(category string) []*Item {
	list := x.items[category]
	out := make([]*Item, len(list))
	copy(out, list)
	return out
}

// Len returns the total number of items across all categories.
func (x *CategoryIndex) Len() int {
	n := 0
	for _, list := range x.items {
		n += len(list)
	}
	return n
}

// Find looks up an item by name, ignoring case. Categories are scanned in
// insertion order and items in list order; the first match wins.
func (x *CategoryIndex) Find(name string) (category string, pos int, it *Item, ok bool) {
	for _, cat := range x.order {
		for i, candidate := range x.items[cat] {
			if strings.EqualFold(candidate.Name, name) {
				return cat, i, candidate, true
			}
		}
	}
	return "", -1, nil, false
}

// RemoveAt deletes the item at pos from the category's list. Out-of-range
// positions are ignored. The category entry itself is kept.
func (x *CategoryIndex) RemoveAt(category string, pos int) {
	list := x.items[category]
	if pos < 0 || pos >= len(list) {
		return
	}
	x.items[category] = append(list[:pos:pos], list[pos+1:]...)
}

// Groups returns every category with at least one item, in insertion order.
// Categories with an empty name are skipped.
func (x *CategoryIndex) Groups() []CategoryItems {
	var out []CategoryItems
	for _, cat := range x.order {
		if cat == "" || len(x.items[cat]) == 0 {
			continue
		}
		out = append(out, CategoryItems{Category: cat, Items: x.Items(cat)})
	}
	return out
}
