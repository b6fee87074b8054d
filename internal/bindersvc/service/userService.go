package service

import (
	"context"
	"fmt"

	"github.com/harukin/binder-services/internal/bindersvc/models"
	"github.com/harukin/binder-services/internal/bindersvc/store"
)

// UserService struct represents the user service layer
type UserService struct {
	userStore *store.UserStore
}

// NewUserService creates a new UserService instance
func NewUserService(userStore *store.UserStore) *UserService {
	return &UserService{
		userStore: userStore,
	}
}

// GetOrCreateUser looks a user up by email and creates them with the
// default role if they do not exist yet.
func (s *UserService) GetOrCreateUser(ctx context.Context, userInfo models.User) (*models.User, error) {
	existing, err := s.userStore.GetByEmail(ctx, userInfo.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	if userInfo.Role == "" {
		userInfo.Role = "user"
	}
	userInfo.Status = "ACTIVE"
	userId, err := s.userStore.CreateUser(ctx, userInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	userInfo.UserId = userId
	return &userInfo, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userStore.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userStore.ListUsers(ctx)
}
