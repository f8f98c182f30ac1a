package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prepmate/prepmate/internal/models"
	"github.com/prepmate/prepmate/internal/utils"
)

type SessionListOptions struct {
	Limit  int64
	Skip   int64
	Status models.SessionStatus // empty = any
}

type SessionRepository interface {
	Create(ctx context.Context, s *models.InterviewSession) error
	GetByID(ctx context.Context, id string) (*models.InterviewSession, error)
	AppendMessage(ctx context.Context, id string, msg models.Message) error
	Complete(ctx context.Context, id string, feedback *models.Feedback, durationSeconds int64, completedAt time.Time) error
	Abort(ctx context.Context, id string, completedAt time.Time) error
	ListByOwner(ctx context.Context, ownerID string, opts SessionListOptions) ([]models.InterviewSession, error)
	// ListCompleted returns every completed session for the owner, newest
	// first. Used by stats, streak, and achievement derivation.
	ListCompleted(ctx context.Context, ownerID string) ([]models.InterviewSession, error)
}

type sessionRepo struct {
	col *mongo.Collection
}

func NewSessionRepo(db *mongo.Database) SessionRepository {
	return &sessionRepo{col: db.Collection("interview_sessions")}
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, utils.ErrNotFound
	}
	return oid, nil
}

func (r *sessionRepo) Create(ctx context.Context, s *models.InterviewSession) error {
	now := time.Now().UTC()
	if s.StartedAt.IsZero() {
		s.StartedAt = now
	}
	s.CreatedAt = now
	s.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*models.InterviewSession, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var s models.InterviewSession
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) AppendMessage(ctx context.Context, id string, msg models.Message) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$push": bson.M{"messages": msg},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	return err
}

func (r *sessionRepo) Complete(ctx context.Context, id string, feedback *models.Feedback, durationSeconds int64, completedAt time.Time) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"status":           models.StatusCompleted,
			"feedback":         feedback,
			"duration_seconds": durationSeconds,
			"completed_at":     completedAt.UTC(),
			"updated_at":       time.Now().UTC(),
		}},
	)
	return err
}

func (r *sessionRepo) Abort(ctx context.Context, id string, completedAt time.Time) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"status":       models.StatusAborted,
			"completed_at": completedAt.UTC(),
			"updated_at":   time.Now().UTC(),
		}},
	)
	return err
}

func (r *sessionRepo) ListByOwner(ctx context.Context, ownerID string, opts SessionListOptions) ([]models.InterviewSession, error) {
	filter := bson.M{"owner_id": ownerID}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	skip := opts.Skip
	if skip < 0 {
		skip = 0
	}

	cur, err := r.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.InterviewSession
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sessionRepo) ListCompleted(ctx context.Context, ownerID string) ([]models.InterviewSession, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"owner_id": ownerID, "status": models.StatusCompleted},
		options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.InterviewSession
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
