package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
)

type LanguageMode string

const (
	LanguageEnglish LanguageMode = "en"
	LanguageBengali LanguageMode = "bn"
	LanguageMixed   LanguageMode = "mixed"
)

// User is created lazily on the first preference write; there is no
// registration step. OwnerID is the subject issued by the external identity
// provider and the sole tenancy key for every record.
type User struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID string             `bson:"owner_id" json:"owner_id"`

	Email string  `bson:"email" json:"email"`
	Name  *string `bson:"name,omitempty" json:"name,omitempty"`

	PreferredLanguage LanguageMode     `bson:"preferred_language" json:"preferred_language"`
	TargetRole        string           `bson:"target_role,omitempty" json:"target_role,omitempty"`
	TargetIndustry    string           `bson:"target_industry,omitempty" json:"target_industry,omitempty"`
	ExperienceLevel   *ExperienceLevel `bson:"experience_level,omitempty" json:"experience_level,omitempty"`
	Timezone          string           `bson:"timezone" json:"timezone"`

	OnboardingCompleted bool `bson:"onboarding_completed" json:"onboarding_completed"`

	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
	LastLoginAt time.Time `bson:"last_login_at" json:"last_login_at"`
}
