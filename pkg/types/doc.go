// Package types defines the pantry entity types (Item, CategoryIndex), the
// Pantry interface implemented by the store, configuration, and the standard
// error values shared by every layer.
package types
