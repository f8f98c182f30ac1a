package services

import (
	"context"
	"time"

	mongorepo "github.com/prepmate/prepmate/internal/repositories/mongo"
	"github.com/prepmate/prepmate/internal/utils"
)

// Achievement is derived on read from completed sessions; nothing is
// persisted per achievement.
type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
	Progress    int        `json:"progress"`
	Target      int        `json:"target"`
}

type AchievementService interface {
	List(ctx context.Context, ownerID string) ([]Achievement, error)
}

type achievementService struct {
	sessions mongorepo.SessionRepository
	now      func() time.Time
}

func NewAchievementService(sessions mongorepo.SessionRepository) AchievementService {
	return &achievementService{
		sessions: sessions,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func clamp(v, max int) int {
	if v > max {
		return max
	}
	return v
}

func (s *achievementService) List(ctx context.Context, ownerID string) ([]Achievement, error) {
	const op = "AchievementService.List"

	if ownerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "owner is required", nil)
	}

	sessions, err := s.sessions.ListCompleted(ctx, ownerID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list completed sessions", err)
	}

	total := len(sessions)
	highest := 0
	var firstCompleted *time.Time
	dates := make([]time.Time, 0, len(sessions))
	for _, sess := range sessions {
		if sess.Feedback != nil && sess.Feedback.OverallScore > highest {
			highest = sess.Feedback.OverallScore
		}
		if sess.CompletedAt != nil {
			dates = append(dates, *sess.CompletedAt)
			if firstCompleted == nil || sess.CompletedAt.Before(*firstCompleted) {
				t := *sess.CompletedAt
				firstCompleted = &t
			}
		}
	}
	streak := computeStreak(dates, s.now())

	countAchievement := func(id, name, desc, icon string, target int) Achievement {
		return Achievement{
			ID: id, Name: name, Description: desc, Icon: icon,
			Unlocked: total >= target,
			Progress: clamp(total, target),
			Target:   target,
		}
	}

	first := countAchievement("first-step", "First Step", "Complete your first interview", "star", 1)
	if first.Unlocked {
		first.UnlockedAt = firstCompleted
	}

	return []Achievement{
		first,
		countAchievement("getting-started", "Getting Started", "Complete 5 interviews", "play", 5),
		countAchievement("dedicated", "Dedicated", "Complete 10 interviews", "target", 10),
		countAchievement("expert", "Expert", "Complete 25 interviews", "rocket", 25),
		{
			ID: "rising-star", Name: "Rising Star", Description: "Score 70 or higher on an interview", Icon: "trending-up",
			Unlocked: highest >= 70, Progress: clamp(highest, 70), Target: 70,
		},
		{
			ID: "ace-performer", Name: "Ace Performer", Description: "Score 90 or higher on an interview", Icon: "trophy",
			Unlocked: highest >= 90, Progress: clamp(highest, 90), Target: 90,
		},
		{
			ID: "consistent", Name: "Consistent", Description: "Maintain a 3-day practice streak", Icon: "flame",
			Unlocked: streak >= 3, Progress: clamp(streak, 3), Target: 3,
		},
		{
			ID: "on-fire", Name: "On Fire", Description: "Maintain a 7-day practice streak", Icon: "zap",
			Unlocked: streak >= 7, Progress: clamp(streak, 7), Target: 7,
		},
	}, nil
}
