package services

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prepmate/prepmate/internal/models"
	"github.com/prepmate/prepmate/internal/utils"
)

type fakeUserRepo struct {
	byOwner map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byOwner: map[string]*models.User{}}
}

func (f *fakeUserRepo) GetByOwnerID(_ context.Context, ownerID string) (*models.User, error) {
	u, ok := f.byOwner[ownerID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Upsert(_ context.Context, ownerID string, set bson.M, setOnInsert bson.M) (*models.User, error) {
	u, ok := f.byOwner[ownerID]
	if !ok {
		u = &models.User{ID: primitive.NewObjectID(), OwnerID: ownerID}
		f.apply(u, setOnInsert)
		f.byOwner[ownerID] = u
	}
	f.apply(u, set)
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) apply(u *models.User, m bson.M) {
	for k, v := range m {
		switch k {
		case "preferred_language":
			u.PreferredLanguage = v.(models.LanguageMode)
		case "target_role":
			u.TargetRole = v.(string)
		case "target_industry":
			u.TargetIndustry = v.(string)
		case "experience_level":
			lvl := v.(models.ExperienceLevel)
			u.ExperienceLevel = &lvl
		case "timezone":
			u.Timezone = v.(string)
		case "onboarding_completed":
			u.OnboardingCompleted = v.(bool)
		}
	}
}

func strp(s string) *string { return &s }

func TestGetPreferencesDefaultsForUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	p, err := svc.GetPreferences(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("GetPreferences should never report not-found: %v", err)
	}
	if p.PreferredLanguage != models.LanguageEnglish || p.Timezone != "UTC" {
		t.Fatalf("defaults = %+v", p)
	}
}

func TestUpdatePreferencesCreatesUserLazily(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	lang := models.LanguageBengali
	u, err := svc.UpdatePreferences(context.Background(), "owner-1", UpdatePreferencesInput{
		PreferredLanguage: &lang,
		TargetRole:        strp("software-engineer"),
	})
	if err != nil {
		t.Fatalf("UpdatePreferences: %v", err)
	}
	if u.PreferredLanguage != models.LanguageBengali || u.TargetRole != "software-engineer" {
		t.Fatalf("user = %+v", u)
	}
	if _, ok := repo.byOwner["owner-1"]; !ok {
		t.Fatal("user should be created on first write")
	}
}

func TestUpdatePreferencesRejectsBadEnum(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	lang := models.LanguageMode("fr")
	_, err := svc.UpdatePreferences(context.Background(), "owner-1", UpdatePreferencesInput{PreferredLanguage: &lang})
	if !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}

	exp := models.ExperienceLevel("principal")
	_, err = svc.UpdatePreferences(context.Background(), "owner-1", UpdatePreferencesInput{ExperienceLevel: &exp})
	if !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestCompleteOnboarding(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	u, err := svc.CompleteOnboarding(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}
	if !u.OnboardingCompleted {
		t.Fatal("onboarding_completed should be set")
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.GetProfile(context.Background(), "owner-1")
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
