package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/prepmate/prepmate/internal/models"
	mongorepo "github.com/prepmate/prepmate/internal/repositories/mongo"
	"github.com/prepmate/prepmate/internal/utils"
)

type Preferences struct {
	PreferredLanguage models.LanguageMode     `json:"preferred_language"`
	TargetRole        string                  `json:"target_role"`
	TargetIndustry    string                  `json:"target_industry"`
	ExperienceLevel   *models.ExperienceLevel `json:"experience_level,omitempty"`
	Timezone          string                  `json:"timezone"`
}

type UpdatePreferencesInput struct {
	PreferredLanguage *models.LanguageMode    `json:"preferred_language,omitempty"`
	TargetRole        *string                 `json:"target_role,omitempty"`
	TargetIndustry    *string                 `json:"target_industry,omitempty"`
	ExperienceLevel   *models.ExperienceLevel `json:"experience_level,omitempty"`
	Timezone          *string                 `json:"timezone,omitempty"`
}

type UserService interface {
	GetProfile(ctx context.Context, ownerID string) (*models.User, error)
	// GetPreferences returns stored preferences, or defaults when the user has
	// not been created yet. It never reports not-found.
	GetPreferences(ctx context.Context, ownerID string) (*Preferences, error)
	// UpdatePreferences creates the user lazily on first write.
	UpdatePreferences(ctx context.Context, ownerID string, in UpdatePreferencesInput) (*models.User, error)
	CompleteOnboarding(ctx context.Context, ownerID string) (*models.User, error)
}

type userService struct {
	users mongorepo.UserRepository
}

func NewUserService(users mongorepo.UserRepository) UserService {
	return &userService{users: users}
}

func defaultPreferences() *Preferences {
	return &Preferences{
		PreferredLanguage: models.LanguageEnglish,
		Timezone:          "UTC",
	}
}

func (s *userService) GetProfile(ctx context.Context, ownerID string) (*models.User, error) {
	const op = "UserService.GetProfile"

	if ownerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "owner is required", nil)
	}

	u, err := s.users.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get user", err)
	}
	return u, nil
}

func (s *userService) GetPreferences(ctx context.Context, ownerID string) (*Preferences, error) {
	const op = "UserService.GetPreferences"

	if ownerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "owner is required", nil)
	}

	u, err := s.users.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return defaultPreferences(), nil
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get user", err)
	}

	p := &Preferences{
		PreferredLanguage: u.PreferredLanguage,
		TargetRole:        u.TargetRole,
		TargetIndustry:    u.TargetIndustry,
		ExperienceLevel:   u.ExperienceLevel,
		Timezone:          u.Timezone,
	}
	if p.PreferredLanguage == "" {
		p.PreferredLanguage = models.LanguageEnglish
	}
	if p.Timezone == "" {
		p.Timezone = "UTC"
	}
	return p, nil
}

func validLanguage(l models.LanguageMode) bool {
	switch l {
	case models.LanguageEnglish, models.LanguageBengali, models.LanguageMixed:
		return true
	}
	return false
}

func validExperience(e models.ExperienceLevel) bool {
	switch e {
	case models.ExperienceEntry, models.ExperienceMid, models.ExperienceSenior:
		return true
	}
	return false
}

func (s *userService) UpdatePreferences(ctx context.Context, ownerID string, in UpdatePreferencesInput) (*models.User, error) {
	const op = "UserService.UpdatePreferences"

	if ownerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "owner is required", nil)
	}

	set := bson.M{}
	if in.PreferredLanguage != nil {
		if !validLanguage(*in.PreferredLanguage) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "invalid preferred_language", nil)
		}
		set["preferred_language"] = *in.PreferredLanguage
	}
	if in.TargetRole != nil {
		set["target_role"] = *in.TargetRole
	}
	if in.TargetIndustry != nil {
		set["target_industry"] = *in.TargetIndustry
	}
	if in.ExperienceLevel != nil {
		if !validExperience(*in.ExperienceLevel) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "invalid experience_level", nil)
		}
		set["experience_level"] = *in.ExperienceLevel
	}
	if in.Timezone != nil {
		set["timezone"] = *in.Timezone
	}

	// Mongo rejects updates naming the same field in $set and $setOnInsert.
	onInsert := bson.M{
		"preferred_language":   models.LanguageEnglish,
		"timezone":             "UTC",
		"onboarding_completed": false,
		"last_login_at":        time.Now().UTC(),
	}
	for k := range set {
		delete(onInsert, k)
	}

	u, err := s.users.Upsert(ctx, ownerID, set, onInsert)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update preferences", err)
	}
	return u, nil
}

func (s *userService) CompleteOnboarding(ctx context.Context, ownerID string) (*models.User, error) {
	const op = "UserService.CompleteOnboarding"

	if ownerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "owner is required", nil)
	}

	u, err := s.users.Upsert(ctx, ownerID,
		bson.M{"onboarding_completed": true},
		bson.M{
			"preferred_language": models.LanguageEnglish,
			"timezone":           "UTC",
			"last_login_at":      time.Now().UTC(),
		},
	)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to complete onboarding", err)
	}
	return u, nil
}
