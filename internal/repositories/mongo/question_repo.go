package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prepmate/prepmate/internal/models"
)

type QuestionFilter struct {
	Category    string
	Subcategory string
	Difficulty  int // 0 = any
}

type QuestionRepository interface {
	List(ctx context.Context, f QuestionFilter, limit, skip int64) ([]models.Question, error)
	Count(ctx context.Context, f QuestionFilter) (int64, error)
	Insert(ctx context.Context, q *models.Question) error
}

type questionRepo struct {
	col *mongo.Collection
}

func NewQuestionRepo(db *mongo.Database) QuestionRepository {
	return &questionRepo{col: db.Collection("questions")}
}

func (f QuestionFilter) query() bson.M {
	q := bson.M{"is_active": true}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Subcategory != "" {
		q["subcategory"] = f.Subcategory
	}
	if f.Difficulty != 0 {
		q["difficulty"] = f.Difficulty
	}
	return q
}

func (r *questionRepo) List(ctx context.Context, f QuestionFilter, limit, skip int64) ([]models.Question, error) {
	cur, err := r.col.Find(ctx, f.query(), options.Find().
		SetSort(bson.D{{Key: "usage_count", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Question
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *questionRepo) Count(ctx context.Context, f QuestionFilter) (int64, error) {
	return r.col.CountDocuments(ctx, f.query())
}

func (r *questionRepo) Insert(ctx context.Context, q *models.Question) error {
	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, q)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		q.ID = oid
	}
	return nil
}
