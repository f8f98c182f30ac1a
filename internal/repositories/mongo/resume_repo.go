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

type ResumeRepository interface {
	// Insert persists the resume; the owner's first resume is marked default
	// automatically.
	Insert(ctx context.Context, r *models.Resume) error
	GetByID(ctx context.Context, id, ownerID string) (*models.Resume, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Resume, error)
	Delete(ctx context.Context, id, ownerID string) error
	// SetDefault unsets every default for the owner, then sets the one. The
	// invariant is at most one default per owner after each call.
	SetDefault(ctx context.Context, ownerID, id string) error
	UpdateAnalysis(ctx context.Context, id string, analysis *models.ResumeAnalysis, sections *models.ParsedSections) error
}

type resumeRepo struct {
	col *mongo.Collection
}

func NewResumeRepo(db *mongo.Database) ResumeRepository {
	return &resumeRepo{col: db.Collection("resumes")}
}

func (r *resumeRepo) Insert(ctx context.Context, doc *models.Resume) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	count, err := r.col.CountDocuments(ctx, bson.M{"owner_id": doc.OwnerID})
	if err != nil {
		return err
	}
	doc.IsDefault = count == 0

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return nil
}

func (r *resumeRepo) GetByID(ctx context.Context, id, ownerID string) (*models.Resume, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc models.Resume
	err = r.col.FindOne(ctx, bson.M{"_id": oid, "owner_id": ownerID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *resumeRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Resume, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Resume
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *resumeRepo) Delete(ctx context.Context, id, ownerID string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "owner_id": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *resumeRepo) SetDefault(ctx context.Context, ownerID, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	if _, err := r.col.UpdateMany(ctx,
		bson.M{"owner_id": ownerID},
		bson.M{"$set": bson.M{"is_default": false}},
	); err != nil {
		return err
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "owner_id": ownerID},
		bson.M{"$set": bson.M{"is_default": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *resumeRepo) UpdateAnalysis(ctx context.Context, id string, analysis *models.ResumeAnalysis, sections *models.ParsedSections) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	set := bson.M{
		"analysis":    analysis,
		"analyzed_at": time.Now().UTC(),
	}
	if sections != nil {
		set["parsed_sections"] = sections
	}

	_, err = r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	return err
}
