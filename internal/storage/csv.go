package storage

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// CSV column names, in the order they are written.
const (
	colCategory = "category"
	colName     = "name"
	colQuantity = "quantity"
	colUnit     = "unit"
	colExpiry   = "expiry_date"
)

var csvHeader = []string{colCategory, colName, colQuantity, colUnit, colExpiry}

// utf8BOM is stripped from the first header cell when present.
const utf8BOM = "\ufeff"

// SaveCSV writes idx to path as a flat UTF-8 table with a header row and one
// row per item, categories in insertion order and items in list order.
func SaveCSV(path string, idx *types.CategoryIndex) error {
	return writeAtomic(path, func(w *bufio.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return err
		}
		for _, cat := range idx.Categories() {
			for _, it := range idx.Items(cat) {
				row := []string{
					cat,
					it.Name,
					strconv.Itoa(it.Quantity),
					it.Unit,
					it.ExpiryDate.Format(types.DateLayout),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

// LoadCSV reads pantry.csv into a new index, grouping rows by category in
// first-seen order. The file is decoded as UTF-8; if it holds an invalid
// UTF-8 sequence the whole read is discarded and retried as ISO-8859-1.
// Returns ErrNotFound when path does not exist and ErrFormat for a bad
// header, quantity, or date.
func LoadCSV(path string) (*types.CategoryIndex, error) {
	idx, err := readCSV(path, encoding.UTF8Validator)
	if errors.Is(err, encoding.ErrInvalidUTF8) {
		idx, err = readCSV(path, charmap.ISO8859_1.NewDecoder())
	}
	return idx, err
}

func readCSV(path string, decoder transform.Transformer) (*types.CategoryIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	idx, err := decodeCSV(transform.NewReader(f, decoder))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return idx, nil
}

// decodeCSV consumes the header and then streams rows into an index.
// Decoding errors from the underlying reader are returned unchanged in the
// chain so LoadCSV can detect them.
func decodeCSV(r io.Reader) (*types.CategoryIndex, error) {
	cr := csv.NewReader(r)
	idx := types.NewCategoryIndex()

	header, err := cr.Read()
	if err == io.EOF {
		return idx, nil
	}
	if err != nil {
		return nil, csvReadError(err)
	}
	cols, err := headerColumns(header)
	if err != nil {
		return nil, err
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvReadError(err)
		}

		line, _ := cr.FieldPos(0)
		it, err := rowToItem(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		idx.Append(row[cols[colCategory]], it)
	}
	return idx, nil
}

// csvReadError classifies a reader error: encoding failures pass through for
// the fallback, CSV syntax errors become ErrFormat.
func csvReadError(err error) error {
	if errors.Is(err, encoding.ErrInvalidUTF8) {
		return err
	}
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return fmt.Errorf("%w: %v", types.ErrFormat, perr)
	}
	return err
}

// headerColumns maps each required column name to its position.
func headerColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		cols[strings.TrimSpace(name)] = i
	}
	for _, want := range csvHeader {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("%w: header is missing column %q", types.ErrFormat, want)
		}
	}
	return cols, nil
}

func rowToItem(row []string, cols map[string]int) (*types.Item, error) {
	rawQty := row[cols[colQuantity]]
	qty, err := strconv.Atoi(strings.TrimSpace(rawQty))
	if err != nil {
		return nil, fmt.Errorf("%w: quantity %q is not an integer", types.ErrFormat, rawQty)
	}
	if qty < 0 {
		return nil, fmt.Errorf("%w: negative quantity %d", types.ErrFormat, qty)
	}

	rawExpiry := row[cols[colExpiry]]
	expiry, err := time.Parse(types.DateLayout, rawExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: expiry_date %q does not match YYYY-MM-DD", types.ErrFormat, rawExpiry)
	}

	return types.NewItem(row[cols[colName]], row[cols[colCategory]], qty, row[cols[colUnit]], expiry), nil
}
