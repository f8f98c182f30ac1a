package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EvaluationCriteria struct {
	Criterion   string   `bson:"criterion" json:"criterion"`
	Description string   `bson:"description" json:"description"`
	Keywords    []string `bson:"keywords" json:"keywords"`
	MaxPoints   int      `bson:"max_points" json:"maxPoints"` // 1-10
}

// Question is the bilingual content bank. Difficulty is 1-5.
type Question struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	Category    string  `bson:"category" json:"category"`
	Subcategory *string `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	Difficulty  int     `bson:"difficulty" json:"difficulty"`

	QuestionEn    string  `bson:"question_en" json:"questionEn"`
	QuestionBn    *string `bson:"question_bn,omitempty" json:"questionBn,omitempty"`
	ModelAnswerEn *string `bson:"model_answer_en,omitempty" json:"modelAnswerEn,omitempty"`
	ModelAnswerBn *string `bson:"model_answer_bn,omitempty" json:"modelAnswerBn,omitempty"`

	EvaluationCriteria []EvaluationCriteria `bson:"evaluation_criteria" json:"evaluationCriteria"`
	Tags               []string             `bson:"tags" json:"tags"`

	UsageCount    int64   `bson:"usage_count" json:"usageCount"`
	AverageRating float64 `bson:"average_rating" json:"averageRating"`
	CreatedBy     string  `bson:"created_by" json:"createdBy"` // admin|ai-generated
	IsActive      bool    `bson:"is_active" json:"isActive"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
