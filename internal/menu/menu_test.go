package menu

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/internal/store"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

var today = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// session runs a menu over a fresh store with the given input lines.
func session(t *testing.T, s *store.Store, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	m := New(s, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	m.Now = func() time.Time { return today }
	require.NoError(t, m.Run())
	return out.String()
}

func openStore(t *testing.T) (*store.Store, types.Config) {
	t.Helper()
	cfg := types.Config{DataDir: t.TempDir()}
	s, err := store.Open(cfg, nil)
	require.NoError(t, err)
	return s, cfg
}

func TestAddViewExit(t *testing.T) {
	s, cfg := openStore(t)

	out := session(t, s,
		"1",          // add
		"1",          // create new category (no categories yet)
		"dairy",      //
		"milk",       // name
		"two",        // rejected quantity
		"-1",         // rejected quantity
		"2",          // quantity
		"L",          // unit, lowercased
		"10/01/2025", // rejected date
		"2025-01-05", // expiry
		"2",          // view
		"4",          // exit
	)

	assert.Contains(t, out, "1. Create new category")
	assert.Equal(t, 2, strings.Count(out, "Quantity must be a non-negative integer."))
	assert.Contains(t, out, "Invalid date format. Try again.")
	assert.Contains(t, out, "Dairy\n"+strings.Repeat("=", 50))
	assert.Contains(t, out, "milk (2 l) - Category: dairy - WARNING: Expires in 4 days")
	assert.Contains(t, out, "Exiting program...")

	reopened, err := store.Open(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, types.SourceCSV, reopened.Source())
	it, err := reopened.FindItem("milk")
	require.NoError(t, err)
	assert.Equal(t, "l", it.Unit)
}

func TestChooseExistingAndDuplicateCategory(t *testing.T) {
	s, _ := openStore(t)
	require.NoError(t, s.CreateCategory("dairy"))

	out := session(t, s,
		"1",
		"x",      // not a number
		"9",      // out of range
		"2",      // create new
		"dairy",  // exists
		"1",      // pick dairy
		"cheese", //
		"1",
		"block",
		"2030-01-01",
		"4",
	)

	assert.Contains(t, out, "1. dairy\n\n2. Create new category")
	assert.Contains(t, out, "Please enter a number.")
	assert.Contains(t, out, "Invalid option. Please choose again.")
	assert.Contains(t, out, "Category already exists!")
	assert.Contains(t, out, "Added 'cheese' to dairy.")
	assert.Equal(t, []string{"dairy"}, s.Categories())
}

func TestDeleteFlows(t *testing.T) {
	s, _ := openStore(t)
	_, err := s.AddItem("dairy", "Milk", 3, "L", today.AddDate(0, 1, 0))
	require.NoError(t, err)

	out := session(t, s,
		"3", "MILK", "0", "lots", "1", // partial removal after two rejects
		"3", "bread", // not found
		"3", "milk", "all",
		"3", // empty now
		"4",
	)

	assert.Contains(t, out, "Found 'Milk' with quantity 3")
	assert.Contains(t, out, "Please enter a positive number.")
	assert.Contains(t, out, "Please enter a valid number or 'all'.")
	assert.Contains(t, out, "Removed 1 of 'Milk'. 2 remaining.")
	assert.Contains(t, out, "'bread' not found.")
	assert.Contains(t, out, "Removed all of 'Milk' successfully.")
	assert.Contains(t, out, "Pantry is empty!")
}

func TestMainMenuRejectsBadChoices(t *testing.T) {
	s, _ := openStore(t)

	out := session(t, s, "abc", "7", "2", "4")

	assert.Contains(t, out, "Please enter a valid number.")
	assert.Contains(t, out, "Invalid choice. Please try again.")
	assert.Contains(t, out, "Pantry is empty!")
}

func TestEndOfInputSaves(t *testing.T) {
	s, cfg := openStore(t)
	_, err := s.AddItem("produce", "apple", 4, "pieces", today)
	require.NoError(t, err)

	var out bytes.Buffer
	m := New(s, strings.NewReader("1\n1\n"), &out)
	require.NoError(t, m.Run(), "running out of input mid-prompt still exits cleanly")
	assert.Contains(t, out.String(), "Exiting program...")

	reopened, err := store.Open(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, types.SourceCSV, reopened.Source())
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Dairy", capitalize("dAIRY"))
	assert.Equal(t, "Épices", capitalize("épices"))
	assert.Equal(t, "", capitalize(""))
}
