package service

import (
	"fmt"

	app_errors "news-agent/internal/errors"
	"news-agent/internal/llm"
)

// ModelService exposes the model catalog.
type ModelService struct {
	catalog llm.Catalog
}

func NewModelService(catalog llm.Catalog) *ModelService {
	return &ModelService{catalog: catalog}
}

// ModelList is the catalog in display order plus the default model's name.
type ModelList struct {
	Default string          `json:"default"`
	Models  []llm.ModelInfo `json:"models"`
}

func (s *ModelService) List() *ModelList {
	return &ModelList{Default: s.catalog.Default().Name, Models: s.catalog.List()}
}

// Get returns the catalog entry for name.
func (s *ModelService) Get(name string) (*llm.ModelInfo, error) {
	info, ok := s.catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("model %q: %w", name, app_errors.ErrNotFound)
	}
	return &info, nil
}
