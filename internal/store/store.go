// Package store implements the pantry: it owns the category index for the
// life of the process, loads it once at Open (CSV first, then JSON, then
// empty), applies mutations in memory, and writes both files on Save.
//
// A Store is single-threaded; callers must not share one across goroutines.
package store

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/mesh-intelligence/pantry/internal/logging"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Store implements types.Pantry over pantry.csv and pantry.json.
type Store struct {
	cfg    types.Config
	logger *slog.Logger
	index  *types.CategoryIndex
	source types.LoadSource
}

var _ types.Pantry = (*Store)(nil)

// Open validates cfg and loads the initial state following the fallback
// order. A nil logger discards diagnostics. Malformed content in an existing
// file fails Open; a missing file does not.
func Open(cfg types.Config, logger *slog.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Store{cfg: cfg, logger: logger}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// AddItem files a new item under category, creating the category on first
// use. Category names are matched exactly.
func (s *Store) AddItem(category, name string, quantity int, unit string, expiry time.Time) (*types.Item, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be non-negative, got %d", types.ErrInput, quantity)
	}

	it := types.NewItem(name, category, quantity, unit, expiry)
	if s.index.Ensure(category) {
		s.logger.Debug("category created", "category", category)
	}
	s.index.Append(category, it)
	s.logger.Debug("item added", "id", it.ID, "name", name, "category", category, "quantity", quantity)
	return it, nil
}

// RemoveQuantity takes amount units from the first item named name (case
// ignored). AmountAll, or an amount at least the item's quantity, removes the
// item from its category; otherwise the quantity is decremented in place.
func (s *Store) RemoveQuantity(name string, amount types.Amount) (types.RemoveResult, error) {
	if err := amount.Validate(); err != nil {
		return types.RemoveResult{}, err
	}

	category, pos, it, ok := s.index.Find(name)
	if !ok {
		return types.RemoveResult{}, fmt.Errorf("%w: item %q", types.ErrNotFound, name)
	}

	res := types.RemoveResult{Name: it.Name, Category: category}
	if amount.All() || amount.Count() >= it.Quantity {
		s.index.RemoveAt(category, pos)
		res.Removed = it.Quantity
		res.Deleted = true
		s.logger.Debug("item removed", "id", it.ID, "name", it.Name, "category", category)
		return res, nil
	}

	if err := it.Decrease(amount.Count()); err != nil {
		return types.RemoveResult{}, err
	}
	res.Removed = amount.Count()
	res.Remaining = it.Quantity
	s.logger.Debug("item decremented", "id", it.ID, "name", it.Name, "removed", res.Removed, "remaining", res.Remaining)
	return res, nil
}

// FindItem returns the first item named name, ignoring case.
func (s *Store) FindItem(name string) (*types.Item, error) {
	_, _, it, ok := s.index.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: item %q", types.ErrNotFound, name)
	}
	return it, nil
}

// ListAll returns every named, non-empty category in insertion order.
func (s *Store) ListAll() []types.CategoryItems {
	return s.index.Groups()
}

// Categories returns every category name, including empty ones.
func (s *Store) Categories() []string {
	return s.index.Categories()
}

// CreateCategory adds an empty category.
func (s *Store) CreateCategory(name string) error {
	if !s.index.Ensure(name) {
		return fmt.Errorf("%w: %q", types.ErrCategoryExists, name)
	}
	s.logger.Debug("category created", "category", name)
	return nil
}

// Expiring returns items that are expired or expire within days of now,
// soonest first. Ties keep index order.
func (s *Store) Expiring(now time.Time, days int) []*types.Item {
	var out []*types.Item
	for _, group := range s.index.Groups() {
		for _, it := range group.Items {
			if it.IsExpired(now) || it.DaysUntilExpiry(now) <= days {
				out = append(out, it)
			}
		}
	}
	slices.SortStableFunc(out, func(a, b *types.Item) int {
		return a.ExpiryDate.Compare(b.ExpiryDate)
	})
	return out
}

// Source reports which store populated the pantry at Open.
func (s *Store) Source() types.LoadSource {
	return s.source
}
