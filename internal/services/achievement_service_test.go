package services

import (
	"context"
	"testing"
	"time"

	"github.com/prepmate/prepmate/internal/models"
)

func newTestAchievementService(repo *fakeSessionRepo, now time.Time) *achievementService {
	svc := NewAchievementService(repo).(*achievementService)
	svc.now = func() time.Time { return now }
	return svc
}

func achievementByID(t *testing.T, list []Achievement, id string) Achievement {
	t.Helper()
	for _, a := range list {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %q not in list", id)
	return Achievement{}
}

func TestAchievementsForNewUser(t *testing.T) {
	svc := newTestAchievementService(newFakeSessionRepo(), time.Now().UTC())

	list, err := svc.List(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 8 {
		t.Fatalf("got %d achievements, want 8", len(list))
	}
	for _, a := range list {
		if a.Unlocked {
			t.Fatalf("achievement %s should be locked with no sessions", a.ID)
		}
	}
}

func TestAchievementsUnlockFromHistory(t *testing.T) {
	repo := newFakeSessionRepo()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// five completed sessions across three consecutive days, best score 92
	for i := 0; i < 5; i++ {
		at := now.AddDate(0, 0, -(i % 3))
		score := 60
		if i == 0 {
			score = 92
		}
		repo.add(&models.InterviewSession{
			OwnerID:     "owner-1",
			Status:      models.StatusCompleted,
			CompletedAt: &at,
			Feedback:    &models.Feedback{OverallScore: score},
		})
	}
	svc := newTestAchievementService(repo, now)

	list, err := svc.List(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	first := achievementByID(t, list, "first-step")
	if !first.Unlocked || first.UnlockedAt == nil {
		t.Fatalf("first-step = %+v", first)
	}
	if a := achievementByID(t, list, "getting-started"); !a.Unlocked {
		t.Fatal("getting-started should unlock at 5 interviews")
	}
	if a := achievementByID(t, list, "dedicated"); a.Unlocked || a.Progress != 5 {
		t.Fatalf("dedicated = %+v, want locked with progress 5", a)
	}
	if a := achievementByID(t, list, "ace-performer"); !a.Unlocked {
		t.Fatal("ace-performer should unlock at score 92")
	}
	if a := achievementByID(t, list, "consistent"); !a.Unlocked {
		t.Fatal("consistent should unlock with a 3-day streak")
	}
	if a := achievementByID(t, list, "on-fire"); a.Unlocked {
		t.Fatal("on-fire needs a 7-day streak")
	}
}
