package service

import (
	"context"

	"github.com/harukin/binder-services/internal/bindersvc/models"
	"github.com/harukin/binder-services/internal/bindersvc/store"
)

type PackService struct {
	store *store.PackStore
}

func NewPackService(store *store.PackStore) *PackService {
	return &PackService{store: store}
}

func (s *PackService) ListPacks(ctx context.Context) ([]models.Pack, error) {
	return s.store.ListPacks(ctx)
}
