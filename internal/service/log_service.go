package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"fitlog/internal/cache"
	"fitlog/internal/errors"
	"fitlog/internal/model"
	"fitlog/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// defaultFrom is the inclusive lower bound applied when a log query omits "from".
const defaultFrom = "1970-01-01"

// Log is a user's filtered exercise log.
type Log struct {
	User    *model.User
	From    string
	To      string
	Entries []model.Exercise
}

// LogService handles exercise log operations.
type LogService interface {
	// Add appends an exercise entry to an existing user. An empty date
	// defaults to the current UTC date.
	Add(ctx context.Context, userID primitive.ObjectID, description string, duration int, date string) (*model.Exercise, error)
	// Get returns the user's entries with date in [from, to] inclusive,
	// capped by limit (0 = unlimited). Empty bounds default to 1970-01-01
	// and the current UTC date.
	Get(ctx context.Context, userID primitive.ObjectID, from, to string, limit int64) (*Log, error)
}

type logService struct {
	users     repository.UserRepository
	exercises repository.ExerciseRepository
	cache     *cache.Client
}

// NewLogService builds a LogService over the user and exercise repositories.
func NewLogService(users repository.UserRepository, exercises repository.ExerciseRepository, cache *cache.Client) LogService {
	return &logService{
		users:     users,
		exercises: exercises,
		cache:     cache,
	}
}

// getUser resolves a user by ID with caching.
func (s *logService) getUser(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	key := cache.UserKey(id.Hex())

	var cached model.User
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.cache.SetJSON(ctx, key, user, userCacheTTL)
	return user, nil
}

func (s *logService) Add(ctx context.Context, userID primitive.ObjectID, description string, duration int, date string) (*model.Exercise, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if date == "" {
		date = time.Now().UTC().Format(model.DateLayout)
	}

	exercise := &model.Exercise{
		UserID:      user.ID.Hex(),
		Username:    user.Username,
		Description: description,
		Duration:    duration,
		Date:        date,
	}
	if err := s.exercises.Create(ctx, exercise); err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	return exercise, nil
}

func (s *logService) Get(ctx context.Context, userID primitive.ObjectID, from, to string, limit int64) (*Log, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if from == "" {
		from = defaultFrom
	}
	if to == "" {
		to = time.Now().UTC().Format(model.DateLayout)
	}

	entries, err := s.exercises.FindByUserAndRange(ctx, user.ID.Hex(), from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("find exercises: %w", err)
	}

	return &Log{
		User:    user,
		From:    from,
		To:      to,
		Entries: entries,
	}, nil
}
