package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// jsonDateTimeLayout is the ISO-8601 date-time written for expiry_date.
const jsonDateTimeLayout = "2006-01-02T15:04:05"

// jsonDateLayouts are the expiry_date forms accepted on load, most specific
// first. Fractional seconds are optional in the first two.
var jsonDateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	types.DateLayout,
}

// itemJSON represents one item inside a category array of pantry.json.
// The category is the enclosing object key, not a field.
type itemJSON struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Unit       string `json:"unit"`
	ExpiryDate string `json:"expiry_date"`
}

// SaveJSON writes idx to path as one object keyed by category in insertion
// order, each value an array of items in list order. Categories without
// items are not written.
func SaveJSON(path string, idx *types.CategoryIndex) error {
	data, err := encodeJSON(idx)
	if err != nil {
		return err
	}
	return writeAtomic(path, func(w *bufio.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// encodeJSON renders the ordered document. encoding/json sorts map keys, so
// the object is assembled by hand and then indented.
func encodeJSON(idx *types.CategoryIndex) ([]byte, error) {
	var raw bytes.Buffer
	raw.WriteByte('{')
	first := true
	for _, cat := range idx.Categories() {
		items := idx.Items(cat)
		if len(items) == 0 {
			continue
		}

		records := make([]itemJSON, len(items))
		for i, it := range items {
			records[i] = itemJSON{
				ID:         it.ID,
				Name:       it.Name,
				Quantity:   it.Quantity,
				Unit:       it.Unit,
				ExpiryDate: it.ExpiryDate.Format(jsonDateTimeLayout),
			}
		}

		key, err := json.Marshal(cat)
		if err != nil {
			return nil, fmt.Errorf("marshal category %q: %w", cat, err)
		}
		value, err := json.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("marshal items of %q: %w", cat, err)
		}

		if !first {
			raw.WriteByte(',')
		}
		first = false
		raw.Write(key)
		raw.WriteByte(':')
		raw.Write(value)
	}
	raw.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, raw.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indent JSON: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// LoadJSON reads pantry.json. A missing file yields an empty index and no
// error.
func LoadJSON(path string) (*types.CategoryIndex, error) {
	idx, err := ReadJSON(path)
	if errors.Is(err, types.ErrNotFound) {
		return types.NewCategoryIndex(), nil
	}
	return idx, err
}

// ReadJSON is LoadJSON without the missing-file leniency: it returns
// ErrNotFound when path does not exist, so callers can fall back further.
// Content errors wrap ErrFormat.
func ReadJSON(path string) (*types.CategoryIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	idx, err := decodeJSON(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return idx, nil
}

// decodeJSON streams the top-level object so category order is preserved.
// Repeated category keys merge into one entry.
func decodeJSON(r io.Reader) (*types.CategoryIndex, error) {
	dec := json.NewDecoder(r)
	idx := types.NewCategoryIndex()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrFormat, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected top-level object", types.ErrFormat)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrFormat, err)
		}
		category, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected category name, got %v", types.ErrFormat, tok)
		}

		var records []itemJSON
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("%w: category %q: %v", types.ErrFormat, category, err)
		}

		idx.Ensure(category)
		for i, rec := range records {
			it, err := rec.toItem()
			if err != nil {
				return nil, fmt.Errorf("category %q item %d: %w", category, i, err)
			}
			idx.Append(category, it)
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrFormat, err)
	}
	return idx, nil
}

// toItem converts a record into an Item, generating an ID for records
// written without one.
func (rec itemJSON) toItem() (*types.Item, error) {
	expiry, err := parseJSONDate(rec.ExpiryDate)
	if err != nil {
		return nil, err
	}
	if rec.Quantity < 0 {
		return nil, fmt.Errorf("%w: negative quantity %d", types.ErrFormat, rec.Quantity)
	}

	it := types.NewItem(rec.Name, "", rec.Quantity, rec.Unit, expiry)
	if rec.ID != "" {
		it.ID = rec.ID
	}
	return it, nil
}

func parseJSONDate(s string) (time.Time, error) {
	for _, layout := range jsonDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: expiry_date %q is not an ISO-8601 date", types.ErrFormat, s)
}
