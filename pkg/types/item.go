package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used for input and for CSV storage.
const DateLayout = "2006-01-02"

// displayDateLayout is the day-first format used by Render.
const displayDateLayout = "02-01-2006"

// WarningDays is the inclusive window, in days, in which an item that has
// not yet expired is flagged with a warning.
const WarningDays = 7

// ExpiryStatus classifies an item relative to the current date.
type ExpiryStatus string

// Expiry status values returned by Item.Status.
const (
	StatusFresh   ExpiryStatus = "fresh"
	StatusWarning ExpiryStatus = "warning"
	StatusExpired ExpiryStatus = "expired"
)

// Item is one pantry entry. ID is assigned once by NewItem and never changes;
// Quantity may only be changed through SetQuantity and Decrease, which keep
// it non-negative.
type Item struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Quantity   int       `json:"quantity"`
	Unit       string    `json:"unit"`
	ExpiryDate time.Time `json:"expiry_date"`
}

// NewItem creates an Item with a fresh UUID v7 identifier. The expiry is
// truncated to its calendar date. Quantity is not validated here; callers
// that take user input go through ParseQuantity or the store.
func NewItem(name, category string, quantity int, unit string, expiry time.Time) *Item {
	return &Item{
		ID:         NewID(),
		Name:       name,
		Category:   category,
		Quantity:   quantity,
		Unit:       unit,
		ExpiryDate: CivilDate(expiry),
	}
}

// NewID generates a new UUID v7 for item IDs.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// CivilDate drops the clock and zone of t, keeping its calendar date at
// midnight UTC.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SetQuantity replaces the quantity. Returns ErrValidation if q is negative;
// the item is unchanged on error.
func (it *Item) SetQuantity(q int) error {
	if q < 0 {
		return fmt.Errorf("%w: quantity of %q cannot be negative (got %d)", ErrValidation, it.Name, q)
	}
	it.Quantity = q
	return nil
}

// Decrease subtracts n from the quantity. Returns ErrValidation if the
// result would be negative.
func (it *Item) Decrease(n int) error {
	return it.SetQuantity(it.Quantity - n)
}

// IsExpired reports whether the calendar date of now is after the expiry date.
func (it *Item) IsExpired(now time.Time) bool {
	return CivilDate(now).After(it.ExpiryDate)
}

// DaysUntilExpiry returns the whole days from now's date to the expiry date,
// clamped at zero.
func (it *Item) DaysUntilExpiry(now time.Time) int {
	days := int(it.ExpiryDate.Sub(CivilDate(now)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Status classifies the item as expired, inside the warning window, or fresh.
func (it *Item) Status(now time.Time) ExpiryStatus {
	if it.IsExpired(now) {
		return StatusExpired
	}
	if it.DaysUntilExpiry(now) <= WarningDays {
		return StatusWarning
	}
	return StatusFresh
}

// Render returns the display line for the item, annotated by expiry status.
func (it *Item) Render(now time.Time) string {
	base := fmt.Sprintf("%s (%d %s) - Category: %s", it.Name, it.Quantity, it.Unit, it.Category)

	switch it.Status(now) {
	case StatusExpired:
		return base + " - EXPIRED!"
	case StatusWarning:
		return fmt.Sprintf("%s - WARNING: Expires in %d days", base, it.DaysUntilExpiry(now))
	default:
		return fmt.Sprintf("%s - Expires: %s", base, it.ExpiryDate.Format(displayDateLayout))
	}
}

// ParseQuantity parses a non-negative integer quantity.
// Returns ErrInput for anything else.
func ParseQuantity(s string) (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: quantity must be an integer, got %q", ErrInput, s)
	}
	if q < 0 {
		return 0, fmt.Errorf("%w: quantity must be non-negative, got %d", ErrInput, q)
	}
	return q, nil
}

// ParseExpiry parses a YYYY-MM-DD calendar date. Returns ErrInput on failure.
func ParseExpiry(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expiry date must be YYYY-MM-DD, got %q", ErrInput, s)
	}
	return t, nil
}
