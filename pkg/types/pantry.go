package types

import "time"

// LoadSource records which persisted store populated a pantry at open time.
type LoadSource string

// Load sources, in fallback order.
const (
	SourceCSV   LoadSource = "csv"
	SourceJSON  LoadSource = "json"
	SourceEmpty LoadSource = "empty"
)

// RemoveResult describes the effect of a RemoveQuantity call.
type RemoveResult struct {
	Name      string `json:"name"`      // Stored name of the matched item.
	Category  string `json:"category"`  // Category the item was filed under.
	Removed   int    `json:"removed"`   // Units taken away.
	Remaining int    `json:"remaining"` // Units left; zero when Deleted.
	Deleted   bool   `json:"deleted"`   // The item was removed from its category.
}

// Pantry is the store contract used by the CLI and the interactive menu.
// All calls are synchronous and must not be made concurrently.
type Pantry interface {
	// AddItem files a new item under category, creating the category if
	// needed. Returns ErrInput if quantity is negative.
	AddItem(category, name string, quantity int, unit string, expiry time.Time) (*Item, error)

	// RemoveQuantity takes amount units from the first item whose name
	// matches, ignoring case. Returns ErrNotFound if nothing matches and
	// ErrInput if amount is invalid.
	RemoveQuantity(name string, amount Amount) (RemoveResult, error)

	// FindItem returns the first item matching name, ignoring case.
	// Returns ErrNotFound if nothing matches.
	FindItem(name string) (*Item, error)

	// ListAll returns non-empty, named categories in insertion order.
	ListAll() []CategoryItems

	// Categories returns every category name, including empty ones.
	Categories() []string

	// CreateCategory adds an empty category.
	// Returns ErrCategoryExists if the name is already present.
	CreateCategory(name string) error

	// Expiring returns items that are expired or expire within days of now.
	Expiring(now time.Time, days int) []*Item

	// Source reports where the initial state was loaded from.
	Source() LoadSource

	// Save writes both persisted stores independently.
	Save() error
}
