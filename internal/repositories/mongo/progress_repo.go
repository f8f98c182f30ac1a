package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prepmate/prepmate/internal/models"
)

type ProgressRepository interface {
	// IncrementDaily bumps the owner's rollup document for the given calendar
	// day, creating it on first activity.
	IncrementDaily(ctx context.Context, ownerID string, day time.Time, interviews, questions, seconds int64) error
	ListByOwner(ctx context.Context, ownerID string, limit int64) ([]models.Progress, error)
}

type progressRepo struct {
	col *mongo.Collection
}

func NewProgressRepo(db *mongo.Database) ProgressRepository {
	return &progressRepo{col: db.Collection("progress")}
}

func (r *progressRepo) IncrementDaily(ctx context.Context, ownerID string, day time.Time, interviews, questions, seconds int64) error {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	_, err := r.col.UpdateOne(ctx,
		bson.M{"owner_id": ownerID, "date": day},
		bson.M{
			"$inc": bson.M{
				"interviews_completed": interviews,
				"questions_answered":   questions,
				"time_spent_seconds":   seconds,
			},
			"$set": bson.M{"updated_at": time.Now().UTC()},
			"$setOnInsert": bson.M{
				"owner_id": ownerID,
				"date":     day,
			},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *progressRepo) ListByOwner(ctx context.Context, ownerID string, limit int64) ([]models.Progress, error) {
	if limit <= 0 {
		limit = 30
	}
	cur, err := r.col.Find(ctx,
		bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Progress
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
