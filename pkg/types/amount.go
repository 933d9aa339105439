package types

import (
	"fmt"
	"strconv"
	"strings"
)

// amountAllKeyword is the text accepted by ParseAmount for a full removal.
const amountAllKeyword = "all"

// Amount is the quantity requested by a removal: either a positive count or
// everything. The zero Amount is invalid.
type Amount struct {
	count int
	all   bool
}

// AmountAll requests removal of the whole item.
var AmountAll = Amount{all: true}

// AmountOf requests removal of n units.
func AmountOf(n int) Amount {
	return Amount{count: n}
}

// All reports whether the amount is the full-removal sentinel.
func (a Amount) All() bool { return a.all }

// Count returns the requested unit count; meaningless when All is true.
func (a Amount) Count() int { return a.count }

// Validate returns ErrInput unless the amount is AmountAll or positive.
func (a Amount) Validate() error {
	if a.all || a.count > 0 {
		return nil
	}
	return fmt.Errorf("%w: amount must be a positive number or %q, got %d", ErrInput, amountAllKeyword, a.count)
}

func (a Amount) String() string {
	if a.all {
		return amountAllKeyword
	}
	return strconv.Itoa(a.count)
}

// ParseAmount accepts "all" in any case or a positive integer.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, amountAllKeyword) {
		return AmountAll, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: enter a valid number or %q, got %q", ErrInput, amountAllKeyword, s)
	}
	a := AmountOf(n)
	if err := a.Validate(); err != nil {
		return Amount{}, err
	}
	return a, nil
}
