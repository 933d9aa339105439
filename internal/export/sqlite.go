package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Schema DDL for the snapshot database.
const (
	createCategories = `CREATE TABLE categories (
    name TEXT PRIMARY KEY,
    ordinal INTEGER NOT NULL
);`

	createItems = `CREATE TABLE items (
    item_id TEXT PRIMARY KEY,
    category TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    name TEXT NOT NULL,
    quantity INTEGER NOT NULL CHECK (quantity >= 0),
    unit TEXT NOT NULL,
    expiry_date TEXT NOT NULL,
    FOREIGN KEY (category) REFERENCES categories(name)
);`

	createItemsExpiryIndex = `CREATE INDEX idx_items_expiry ON items(expiry_date);`
)

const schemaSQL = createCategories + createItems + createItemsExpiryIndex

// SQLite writes snap to a fresh database at path. Any existing file is
// replaced. Named categories are written in order, including empty ones;
// items keep their position within the category as ordinal.
func SQLite(path string, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing old snapshot: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening snapshot database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning export transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertCategories(tx, snap.Categories()); err != nil {
		return err
	}
	if err := insertItems(tx, snap.ListAll()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export transaction: %w", err)
	}
	return nil
}

func insertCategories(tx *sql.Tx, categories []string) error {
	stmt, err := tx.Prepare("INSERT INTO categories (name, ordinal) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert for categories: %w", err)
	}
	defer stmt.Close()

	ordinal := 0
	for _, name := range categories {
		if name == "" {
			continue
		}
		if _, err := stmt.Exec(name, ordinal); err != nil {
			return fmt.Errorf("inserting category %q: %w", name, err)
		}
		ordinal++
	}
	return nil
}

func insertItems(tx *sql.Tx, groups []types.CategoryItems) error {
	stmt, err := tx.Prepare(`INSERT INTO items
    (item_id, category, ordinal, name, quantity, unit, expiry_date)
    VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert for items: %w", err)
	}
	defer stmt.Close()

	for _, g := range groups {
		for i, it := range g.Items {
			_, err := stmt.Exec(it.ID, g.Category, i, it.Name, it.Quantity, it.Unit,
				it.ExpiryDate.Format(types.DateLayout))
			if err != nil {
				return fmt.Errorf("inserting item %q: %w", it.Name, err)
			}
		}
	}
	return nil
}
