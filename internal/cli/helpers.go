package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mesh-intelligence/pantry/pkg/pantry"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// now is the clock used for expiry status; tests pin it.
var now = time.Now

// openPantry loads the pantry from the resolved data directory.
func (a *app) openPantry() (types.Pantry, error) {
	p, err := pantry.Open(a.cfg, a.logger)
	if err != nil {
		return nil, fmt.Errorf("open pantry: %w", err)
	}
	return p, nil
}

// save writes both stores after a mutation.
func (a *app) save(p types.Pantry) error {
	if err := p.Save(); err != nil {
		return fmt.Errorf("save pantry: %w", err)
	}
	return nil
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// writeTable prints rows through a tabwriter, trimming the trailing padding
// from each line.
func writeTable(w io.Writer, header []string, rows [][]string) {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// itemRow formats one item for the table views.
func itemRow(category string, it *types.Item, today time.Time) []string {
	return []string{
		category,
		it.Name,
		fmt.Sprint(it.Quantity),
		it.Unit,
		it.ExpiryDate.Format(types.DateLayout),
		string(it.Status(today)),
	}
}

var itemHeader = []string{"CATEGORY", "NAME", "QUANTITY", "UNIT", "EXPIRES", "STATUS"}
