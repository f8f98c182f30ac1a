package config

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes every collection relies on. Safe to call
// on every boot; Mongo treats existing definitions as a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	users := db.Collection("users")
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}},
		Options: options.Index().SetName("uniq_owner").SetUnique(true),
	}); err != nil {
		return err
	}

	sessions := db.Collection("interview_sessions")
	if _, err := sessions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_owner_created"),
		},
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("by_owner_status"),
		},
	}); err != nil {
		return err
	}

	resumes := db.Collection("resumes")
	if _, err := resumes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "is_default", Value: 1}},
			Options: options.Index().SetName("by_owner_default"),
		},
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_owner_created"),
		},
	}); err != nil {
		return err
	}

	questions := db.Collection("questions")
	if _, err := questions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "subcategory", Value: 1}},
			Options: options.Index().SetName("by_category"),
		},
		{
			Keys:    bson.D{{Key: "is_active", Value: 1}},
			Options: options.Index().SetName("by_active"),
		},
		{
			Keys:    bson.D{{Key: "difficulty", Value: 1}},
			Options: options.Index().SetName("by_difficulty"),
		},
		{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index().SetName("by_tags"),
		},
	}); err != nil {
		return err
	}

	progress := db.Collection("progress")
	_, err := progress.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetName("uniq_owner_day").SetUnique(true),
	})
	return err
}
