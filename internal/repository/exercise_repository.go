package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fitlog/internal/model"
)

// ExerciseRepository defines persistence operations for exercise entries.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *model.Exercise) error
	FindByUserAndRange(ctx context.Context, userID, from, to string, limit int64) ([]model.Exercise, error)
}

type exerciseRepository struct {
	col *mongo.Collection
}

// NewExerciseRepository builds a mongo-backed exercise repository.
func NewExerciseRepository(db *mongo.Database) ExerciseRepository {
	return &exerciseRepository{col: db.Collection("exercises")}
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *model.Exercise) error {
	res, err := r.col.InsertOne(ctx, exercise)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		exercise.ID = id
	}
	return nil
}

// FindByUserAndRange returns a user's entries with date in [from, to]
// inclusive, lexically compared over YYYY-MM-DD strings. Results are sorted
// by _id ascending (stable insertion order) before the limit is applied;
// limit <= 0 means unlimited.
func (r *exerciseRepository) FindByUserAndRange(ctx context.Context, userID, from, to string, limit int64) ([]model.Exercise, error) {
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var exercises []model.Exercise
	if err := cur.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}
