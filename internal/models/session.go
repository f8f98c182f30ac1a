package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SessionType string

const (
	SessionBehavioral SessionType = "behavioral"
	SessionTechnical  SessionType = "technical"
	SessionGeneral    SessionType = "general"
	SessionMock       SessionType = "mock"
)

type SessionStatus string

const (
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusAborted    SessionStatus = "aborted"
)

// Terminal reports whether no further transition (or message append) is
// legal for this status.
func (s SessionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusAborted
}

type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyHard     Difficulty = "hard"
	DifficultyAdaptive Difficulty = "adaptive"
)

type MessageRole string

const (
	RoleUser   MessageRole = "user"
	RoleAI     MessageRole = "ai"
	RoleSystem MessageRole = "system"
)

type Message struct {
	Role      MessageRole `bson:"role" json:"role"`
	Content   string      `bson:"content" json:"content"`
	Timestamp time.Time   `bson:"timestamp" json:"timestamp"`
}

type Improvement struct {
	Category          string `bson:"category" json:"category"`
	Description       string `bson:"description" json:"description"`
	SuggestedResponse string `bson:"suggested_response" json:"suggestedResponse"`
	Explanation       string `bson:"explanation" json:"explanation"`
}

type Resource struct {
	Type  string `bson:"type" json:"type"` // article|video|practice
	Title string `bson:"title" json:"title"`
	URL   string `bson:"url" json:"url"`
}

// Feedback is produced exactly once, at session completion, from an AI call.
// All scores are 0-100.
type Feedback struct {
	OverallScore       int           `bson:"overall_score" json:"overallScore"`
	ContentScore       int           `bson:"content_score" json:"contentScore"`
	LanguageScore      int           `bson:"language_score" json:"languageScore"`
	ConfidenceScore    int           `bson:"confidence_score" json:"confidenceScore"`
	Strengths          []string      `bson:"strengths" json:"strengths"`
	Improvements       []Improvement `bson:"improvements" json:"improvements"`
	SuggestedResources []Resource    `bson:"suggested_resources" json:"suggestedResources"`
}

// InterviewSession transitions in_progress -> {completed, aborted} only.
// Duration is derived at completion as completedAt - startedAt in whole
// seconds.
type InterviewSession struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID string             `bson:"owner_id" json:"owner_id"`

	SessionType   SessionType   `bson:"session_type" json:"session_type"`
	Status        SessionStatus `bson:"status" json:"status"`
	Difficulty    Difficulty    `bson:"difficulty" json:"difficulty"`
	LanguageMode  LanguageMode  `bson:"language_mode" json:"language_mode"`
	TargetRole    string        `bson:"target_role,omitempty" json:"target_role,omitempty"`
	TargetCompany string        `bson:"target_company,omitempty" json:"target_company,omitempty"`

	Messages []Message `bson:"messages" json:"messages"`
	Feedback *Feedback `bson:"feedback,omitempty" json:"feedback,omitempty"`

	DurationSeconds    *int64 `bson:"duration_seconds,omitempty" json:"duration_seconds,omitempty"`
	QuestionsCompleted *int64 `bson:"questions_completed,omitempty" json:"questions_completed,omitempty"`

	StartedAt   time.Time  `bson:"started_at" json:"started_at"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}
