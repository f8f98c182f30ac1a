package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prepmate/prepmate/internal/models"
	"github.com/prepmate/prepmate/internal/utils"
)

type UserRepository interface {
	GetByOwnerID(ctx context.Context, ownerID string) (*models.User, error)
	// Upsert applies set on match and setOnInsert defaults when the user does
	// not exist yet, returning the resulting document.
	Upsert(ctx context.Context, ownerID string, set bson.M, setOnInsert bson.M) (*models.User, error)
}

type userRepo struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepository {
	return &userRepo{col: db.Collection("users")}
}

func (r *userRepo) GetByOwnerID(ctx context.Context, ownerID string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Upsert(ctx context.Context, ownerID string, set bson.M, setOnInsert bson.M) (*models.User, error) {
	if set == nil {
		set = bson.M{}
	}
	set["updated_at"] = time.Now().UTC()

	if setOnInsert == nil {
		setOnInsert = bson.M{}
	}
	setOnInsert["owner_id"] = ownerID
	if _, ok := setOnInsert["created_at"]; !ok {
		setOnInsert["created_at"] = time.Now().UTC()
	}

	after := options.After
	res := r.col.FindOneAndUpdate(ctx,
		bson.M{"owner_id": ownerID},
		bson.M{"$set": set, "$setOnInsert": setOnInsert},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(after),
	)

	var u models.User
	if err := res.Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}
