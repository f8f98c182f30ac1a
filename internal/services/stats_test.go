package services

import (
	"testing"
	"time"

	"github.com/prepmate/prepmate/internal/models"
)

func day(now time.Time, daysAgo int) time.Time {
	return now.AddDate(0, 0, -daysAgo)
}

func TestComputeStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"no sessions", nil, 0},
		{"today only", []time.Time{day(now, 0)}, 1},
		{"three consecutive days", []time.Time{day(now, 0), day(now, 1), day(now, 2)}, 3},
		{"gap after today", []time.Time{day(now, 0), day(now, 3)}, 1},
		{"stale activity", []time.Time{day(now, 3)}, 0},
		{"yesterday still counts", []time.Time{day(now, 1), day(now, 2)}, 2},
		{"duplicate days collapse", []time.Time{day(now, 0), day(now, 0), day(now, 1)}, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := computeStreak(tc.dates, now)
			if got != tc.want {
				t.Fatalf("computeStreak() = %d, want %d", got, tc.want)
			}
		})
	}
}

func int64p(v int64) *int64 { return &v }

func TestComputeAggregateStatsEmpty(t *testing.T) {
	got := computeAggregateStats(nil)
	if got.TotalInterviews != 0 || got.TotalQuestions != 0 || got.TotalTimeSeconds != 0 || got.AverageScore != 0 {
		t.Fatalf("expected all-zero stats, got %+v", got)
	}
}

func TestComputeAggregateStats(t *testing.T) {
	sessions := []models.InterviewSession{
		{
			QuestionsCompleted: int64p(4),
			DurationSeconds:    int64p(300),
			Feedback:           &models.Feedback{OverallScore: 80},
		},
		{
			// missing feedback counts as zero toward the average
			QuestionsCompleted: int64p(2),
			DurationSeconds:    int64p(100),
		},
		{
			Feedback: &models.Feedback{OverallScore: 70},
		},
	}

	got := computeAggregateStats(sessions)
	if got.TotalInterviews != 3 {
		t.Fatalf("TotalInterviews = %d, want 3", got.TotalInterviews)
	}
	if got.TotalQuestions != 6 {
		t.Fatalf("TotalQuestions = %d, want 6", got.TotalQuestions)
	}
	if got.TotalTimeSeconds != 400 {
		t.Fatalf("TotalTimeSeconds = %d, want 400", got.TotalTimeSeconds)
	}
	if got.AverageScore != 50 {
		t.Fatalf("AverageScore = %d, want 50", got.AverageScore)
	}
}
