package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Progress is the per-owner daily activity rollup, bumped when a session
// completes. It intentionally carries no streak counters: the streak shown to
// users is always derived on read from completed-session dates, so the two
// can never disagree.
type Progress struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID string             `bson:"owner_id" json:"owner_id"`
	Date    time.Time          `bson:"date" json:"date"` // midnight UTC of the activity day

	InterviewsCompleted int64 `bson:"interviews_completed" json:"interviews_completed"`
	QuestionsAnswered   int64 `bson:"questions_answered" json:"questions_answered"`
	TimeSpentSeconds    int64 `bson:"time_spent_seconds" json:"time_spent_seconds"`

	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
