package services

import (
	"math"
	"sort"
	"time"

	"github.com/prepmate/prepmate/internal/models"
)

// Stats is the dashboard aggregate over an owner's completed sessions.
type Stats struct {
	TotalInterviews  int64 `json:"total_interviews"`
	TotalQuestions   int64 `json:"total_questions"`
	TotalTimeSeconds int64 `json:"total_time_seconds"`
	AverageScore     int   `json:"average_score"`
	CurrentStreak    int   `json:"current_streak"`
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// computeStreak counts consecutive calendar days ending at (or the day
// before) today on which at least one session was completed. A gap of two or
// more days since the most recent activity resets the streak to zero; an
// interior gap stops the count without resetting it.
func computeStreak(dates []time.Time, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	seen := make(map[time.Time]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := dayOf(d)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := dayOf(now)
	if int(today.Sub(days[0]).Hours()/24) > 1 {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			streak++
			continue
		}
		break
	}
	return streak
}

// computeAggregateStats folds completed sessions into dashboard totals.
// Missing durations, question counts, and feedback are treated as zero.
func computeAggregateStats(sessions []models.InterviewSession) Stats {
	var s Stats
	s.TotalInterviews = int64(len(sessions))
	if len(sessions) == 0 {
		return s
	}

	var scoreSum int64
	for _, sess := range sessions {
		if sess.QuestionsCompleted != nil {
			s.TotalQuestions += *sess.QuestionsCompleted
		}
		if sess.DurationSeconds != nil {
			s.TotalTimeSeconds += *sess.DurationSeconds
		}
		if sess.Feedback != nil {
			scoreSum += int64(sess.Feedback.OverallScore)
		}
	}
	s.AverageScore = int(math.Round(float64(scoreSum) / float64(len(sessions))))
	return s
}
