package store

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/pantry/internal/storage"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// load runs the startup fallback:
//
//	LOADING_CSV  -> LOADED_FROM_CSV
//	             -> LOADING_JSON (pantry.csv absent)
//	LOADING_JSON -> LOADED_FROM_JSON
//	             -> EMPTY (pantry.json absent)
//
// Any error other than a missing file stops the chain.
func (s *Store) load() error {
	csvPath := s.cfg.CSVPath()
	idx, err := storage.LoadCSV(csvPath)
	switch {
	case err == nil:
		s.loaded(idx, types.SourceCSV, csvPath)
		return nil
	case !errors.Is(err, types.ErrNotFound):
		return fmt.Errorf("load csv: %w", err)
	}
	s.logger.Debug("csv store absent, falling back to json", "path", csvPath)

	jsonPath := s.cfg.JSONPath()
	idx, err = storage.ReadJSON(jsonPath)
	switch {
	case err == nil:
		s.loaded(idx, types.SourceJSON, jsonPath)
		return nil
	case !errors.Is(err, types.ErrNotFound):
		return fmt.Errorf("load json: %w", err)
	}
	s.logger.Debug("json store absent, starting empty", "path", jsonPath)

	s.loaded(types.NewCategoryIndex(), types.SourceEmpty, "")
	return nil
}

func (s *Store) loaded(idx *types.CategoryIndex, source types.LoadSource, path string) {
	s.index = idx
	s.source = source
	s.logger.Info("pantry loaded", "source", source, "path", path,
		"categories", len(idx.Categories()), "items", idx.Len())
}

// Save writes pantry.csv and then pantry.json. The writes are independent: a
// failure on one does not stop the other, and both failures are returned
// joined. Each file is replaced atomically on its own.
func (s *Store) Save() error {
	var errs []error

	csvPath := s.cfg.CSVPath()
	if err := storage.SaveCSV(csvPath, s.index); err != nil {
		s.logger.Error("save failed", "format", "csv", "path", csvPath, "err", err)
		errs = append(errs, fmt.Errorf("save csv: %w", err))
	} else {
		s.logger.Info("pantry saved", "format", "csv", "path", csvPath, "items", s.index.Len())
	}

	jsonPath := s.cfg.JSONPath()
	if err := storage.SaveJSON(jsonPath, s.index); err != nil {
		s.logger.Error("save failed", "format", "json", "path", jsonPath, "err", err)
		errs = append(errs, fmt.Errorf("save json: %w", err))
	} else {
		s.logger.Info("pantry saved", "format", "json", "path", jsonPath, "items", s.index.Len())
	}

	return errors.Join(errs...)
}
