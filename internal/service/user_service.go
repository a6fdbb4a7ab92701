package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"fitlog/internal/cache"
	"fitlog/internal/model"
	"fitlog/internal/repository"
)

// UserService exposes user directory operations.
type UserService interface {
	// CreateOrFetch returns the user with the given username, creating it if
	// absent. The bool reports whether a new user was created.
	CreateOrFetch(ctx context.Context, username string) (*model.User, bool, error)
	List(ctx context.Context) ([]model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

// CreateOrFetch is idempotent per username: repeated calls never create
// duplicates. Two concurrent calls for a brand-new username can still race
// and both insert; the store enforces no uniqueness.
func (s *userService) CreateOrFetch(ctx context.Context, username string) (*model.User, bool, error) {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, false, fmt.Errorf("find user by username: %w", err)
	}

	user := &model.User{Username: username}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	// Warm the cache so the first exercise append skips the store lookup.
	s.cache.SetJSON(ctx, cache.UserKey(user.ID.Hex()), user, userCacheTTL)
	return user, true, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}
