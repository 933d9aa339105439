// Package pantry provides the public API for opening a pantry.
// This package exposes the factory function while keeping the storage
// implementation internal.
package pantry

import (
	"log/slog"

	"github.com/mesh-intelligence/pantry/internal/store"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Version is the release version reported by the CLI.
const Version = "0.1.0"

// Open loads the pantry stored under cfg.DataDir, trying pantry.csv first,
// then pantry.json, then starting empty. A nil logger discards diagnostics.
//
// Example:
//
//	p, err := pantry.Open(types.Config{DataDir: "."}, nil)
//	if err != nil {
//	    return err
//	}
//	p.AddItem("dairy", "milk", 2, "L", expiry)
//	err = p.Save()
func Open(cfg types.Config, logger *slog.Logger) (types.Pantry, error) {
	s, err := store.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}
