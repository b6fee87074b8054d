package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/harukin/binder-services/internal/bindersvc/models"
	"github.com/harukin/binder-services/internal/bindersvc/store"
)

type CollectionService struct {
	store *store.CollectionStore
}

func NewCollectionService(store *store.CollectionStore) *CollectionService {
	return &CollectionService{store: store}
}

// AddInstance creates one copy for the user. The instance id is minted
// here; callers never pick their own.
func (s *CollectionService) AddInstance(ctx context.Context, userID int64, cardID, location string, isProxy bool) (*models.OwnedCard, error) {
	oc := models.OwnedCard{
		InstanceID: uuid.New().String(),
		CardID:     cardID,
		UserID:     userID,
		Location:   location,
		IsProxy:    isProxy,
	}
	return s.store.AddInstance(ctx, oc)
}

func (s *CollectionService) RemoveInstance(ctx context.Context, userID int64, cardID string, isProxy bool) error {
	return s.store.RemoveInstance(ctx, userID, cardID, isProxy)
}

func (s *CollectionService) ListCollection(ctx context.Context, userID int64) ([]models.CollectionItem, error) {
	return s.store.ListByUser(ctx, userID)
}
