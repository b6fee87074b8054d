package service

import (
	"context"

	"github.com/harukin/binder-services/internal/bindersvc/models"
	"github.com/harukin/binder-services/internal/bindersvc/search"
	"github.com/harukin/binder-services/internal/bindersvc/store"
)

type CardService struct {
	store *store.CardStore
}

func NewCardService(store *store.CardStore) *CardService {
	return &CardService{store: store}
}

func (s *CardService) Search(ctx context.Context, opts search.Options) ([]models.CardResult, error) {
	return s.store.Search(ctx, opts)
}

func (s *CardService) GetCard(ctx context.Context, userID int64, cardID string) (*models.CardResult, error) {
	return s.store.GetByID(ctx, userID, cardID)
}
