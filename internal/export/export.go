// Package export writes read-only snapshots of a pantry in formats other
// tools open directly: a SQLite database and an XLSX spreadsheet. Neither
// file is ever read back by the pantry.
package export

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Supported export formats.
const (
	FormatSQLite = "sqlite"
	FormatXLSX   = "xlsx"
)

// ErrUnknownFormat is returned by Write for a format other than FormatSQLite
// or FormatXLSX.
var ErrUnknownFormat = errors.New("unknown export format")

// Snapshot is the read side of a pantry that exports consume.
type Snapshot interface {
	Categories() []string
	ListAll() []types.CategoryItems
}

// Write dispatches to the exporter for format.
func Write(format, path string, snap Snapshot) error {
	switch format {
	case FormatSQLite:
		return SQLite(path, snap)
	case FormatXLSX:
		return XLSX(path, snap)
	default:
		return fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownFormat, format, FormatSQLite, FormatXLSX)
	}
}
