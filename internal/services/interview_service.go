package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prepmate/prepmate/internal/cache"
	"github.com/prepmate/prepmate/internal/models"
	"github.com/prepmate/prepmate/internal/providers/llm"
	mongorepo "github.com/prepmate/prepmate/internal/repositories/mongo"
	"github.com/prepmate/prepmate/internal/utils"
)

// AIGateway is the slice of the provider gateway the services consume.
type AIGateway interface {
	GenerateContent(ctx context.Context, prompt string, opts llm.GatewayOptions) (string, error)
	GenerateStreamingContent(ctx context.Context, prompt string, onChunk func(chunk string), opts llm.GatewayOptions) error
}

type CreateSessionInput struct {
	SessionType   models.SessionType  `json:"session_type" binding:"required"`
	Difficulty    models.Difficulty   `json:"difficulty"`
	LanguageMode  models.LanguageMode `json:"language_mode"`
	TargetRole    string              `json:"target_role"`
	TargetCompany string              `json:"target_company"`
}

type HistoryOptions struct {
	Limit  int64
	Skip   int64
	Status models.SessionStatus
}

const statsCacheTTL = 5 * time.Minute

type InterviewService interface {
	Create(ctx context.Context, ownerID string, in CreateSessionInput) (*models.InterviewSession, error)
	Get(ctx context.Context, ownerID, sessionID string) (*models.InterviewSession, error)
	// SendMessage appends the caller's message and returns the interviewer's
	// next turn. Gateway failures degrade to a fixed follow-up line.
	SendMessage(ctx context.Context, ownerID, sessionID, content string) (string, error)
	// SendMessageStreaming behaves like SendMessage but delivers the reply
	// through onChunk as it is generated.
	SendMessageStreaming(ctx context.Context, ownerID, sessionID, content string, onChunk func(chunk string)) error
	Complete(ctx context.Context, ownerID, sessionID string) (*models.InterviewSession, error)
	Abort(ctx context.Context, ownerID, sessionID string) (*models.InterviewSession, error)
	History(ctx context.Context, ownerID string, opts HistoryOptions) ([]models.InterviewSession, error)
	Stats(ctx context.Context, ownerID string) (*Stats, error)
}

type interviewService struct {
	sessions mongorepo.SessionRepository
	progress mongorepo.ProgressRepository
	ai       AIGateway
	cache    cache.Cache
	log      *logrus.Logger
	now      func() time.Time
}

func NewInterviewService(
	sessions mongorepo.SessionRepository,
	progress mongorepo.ProgressRepository,
	ai AIGateway,
	c cache.Cache,
	log *logrus.Logger,
) InterviewService {
	if c == nil {
		c = cache.Noop{}
	}
	return &interviewService{
		sessions: sessions,
		progress: progress,
		ai:       ai,
		cache:    c,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func validSessionType(t models.SessionType) bool {
	switch t {
	case models.SessionBehavioral, models.SessionTechnical, models.SessionGeneral, models.SessionMock:
		return true
	}
	return false
}

func (s *interviewService) Create(ctx context.Context, ownerID string, in CreateSessionInput) (*models.InterviewSession, error) {
	const op = "InterviewService.Create"

	if ownerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "owner is required", nil)
	}
	if !validSessionType(in.SessionType) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid session_type", nil)
	}
	if in.Difficulty == "" {
		in.Difficulty = models.DifficultyMedium
	}
	if in.LanguageMode == "" {
		in.LanguageMode = models.LanguageEnglish
	}

	now := s.now()
	opening := initialQuestion(in.SessionType, in.TargetRole)
	session := &models.InterviewSession{
		OwnerID:       ownerID,
		SessionType:   in.SessionType,
		Status:        models.StatusInProgress,
		Difficulty:    in.Difficulty,
		LanguageMode:  in.LanguageMode,
		TargetRole:    in.TargetRole,
		TargetCompany: in.TargetCompany,
		Messages: []models.Message{
			{
				Role:      models.RoleSystem,
				Content:   fmt.Sprintf("Interview configuration: type=%s, difficulty=%s, language=%s, role=%s", in.SessionType, in.Difficulty, in.LanguageMode, in.TargetRole),
				Timestamp: now,
			},
			{
				Role:      models.RoleAI,
				Content:   opening,
				Timestamp: now,
			},
		},
		StartedAt: now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create session", err)
	}
	return session, nil
}

// owned loads a session and enforces that it belongs to the caller. A foreign
// session is reported as not found, never as forbidden.
func (s *interviewService) owned(ctx context.Context, op, ownerID, sessionID string) (*models.InterviewSession, error) {
	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session id is required", nil)
	}

	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load session", err)
	}
	if sess.OwnerID != ownerID {
		return nil, utils.E(utils.CodeNotFound, op, "session not found", nil)
	}
	return sess, nil
}

func (s *interviewService) Get(ctx context.Context, ownerID, sessionID string) (*models.InterviewSession, error) {
	const op = "InterviewService.Get"
	return s.owned(ctx, op, ownerID, sessionID)
}

// recentWindow is how many prior messages the live-turn prompt embeds.
const recentWindow = 5

func (s *interviewService) prepareTurn(ctx context.Context, op, ownerID, sessionID, content string) (*models.InterviewSession, string, error) {
	if content == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "message content is required", nil)
	}

	sess, err := s.owned(ctx, op, ownerID, sessionID)
	if err != nil {
		return nil, "", err
	}
	if sess.Status != models.StatusInProgress {
		return nil, "", utils.E(utils.CodeConflict, op, "session is not in progress", nil)
	}

	userMsg := models.Message{Role: models.RoleUser, Content: content, Timestamp: s.now()}
	if err := s.sessions.AppendMessage(ctx, sessionID, userMsg); err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to append message", err)
	}

	recent := sess.Messages
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	return sess, replyPrompt(recent, content, sess.LanguageMode), nil
}

func (s *interviewService) SendMessage(ctx context.Context, ownerID, sessionID, content string) (string, error) {
	const op = "InterviewService.SendMessage"

	_, prompt, err := s.prepareTurn(ctx, op, ownerID, sessionID, content)
	if err != nil {
		return "", err
	}

	reply, err := s.ai.GenerateContent(ctx, prompt, llm.GatewayOptions{
		Options: llm.Options{PreferFast: true, Temperature: 0.7, MaxTokens: 512},
	})
	if err != nil || reply == "" {
		if err != nil && s.log != nil {
			s.log.WithError(err).WithField("session_id", sessionID).Warn("interviewer turn failed, using fallback reply")
		}
		reply = fallbackReply
	}

	aiMsg := models.Message{Role: models.RoleAI, Content: reply, Timestamp: s.now()}
	if err := s.sessions.AppendMessage(ctx, sessionID, aiMsg); err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to append reply", err)
	}
	return reply, nil
}

func (s *interviewService) SendMessageStreaming(ctx context.Context, ownerID, sessionID, content string, onChunk func(chunk string)) error {
	const op = "InterviewService.SendMessageStreaming"

	_, prompt, err := s.prepareTurn(ctx, op, ownerID, sessionID, content)
	if err != nil {
		return err
	}

	var full string
	streamErr := s.ai.GenerateStreamingContent(ctx, prompt, func(chunk string) {
		full += chunk
		onChunk(chunk)
	}, llm.GatewayOptions{
		Options: llm.Options{PreferFast: true, Temperature: 0.7, MaxTokens: 512},
	})
	if streamErr != nil || full == "" {
		if streamErr != nil && s.log != nil {
			s.log.WithError(streamErr).WithField("session_id", sessionID).Warn("streaming turn failed, using fallback reply")
		}
		full = fallbackReply
		onChunk(full)
	}

	aiMsg := models.Message{Role: models.RoleAI, Content: full, Timestamp: s.now()}
	if err := s.sessions.AppendMessage(ctx, sessionID, aiMsg); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to append reply", err)
	}
	return nil
}

func (s *interviewService) Complete(ctx context.Context, ownerID, sessionID string) (*models.InterviewSession, error) {
	const op = "InterviewService.Complete"

	sess, err := s.owned(ctx, op, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status.Terminal() {
		return nil, utils.E(utils.CodeConflict, op, "session already completed", nil)
	}

	now := s.now()
	duration := int64(now.Sub(sess.StartedAt).Seconds())
	if duration < 0 {
		duration = 0
	}

	feedback := s.generateFeedback(ctx, sess)

	if err := s.sessions.Complete(ctx, sessionID, feedback, duration, now); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to complete session", err)
	}

	questions := int64(0)
	for _, m := range sess.Messages {
		if m.Role == models.RoleUser {
			questions++
		}
	}
	if err := s.progress.IncrementDaily(ctx, ownerID, now, 1, questions, duration); err != nil && s.log != nil {
		s.log.WithError(err).WithField("owner_id", ownerID).Warn("failed to bump daily progress")
	}
	if err := s.cache.Del(ctx, cache.StatsKey(ownerID)); err != nil && s.log != nil {
		s.log.WithError(err).Warn("failed to invalidate stats cache")
	}

	sess.Status = models.StatusCompleted
	sess.Feedback = feedback
	sess.DurationSeconds = &duration
	sess.QuestionsCompleted = &questions
	sess.CompletedAt = &now
	return sess, nil
}

// generateFeedback asks the quality model for a scored report and falls back
// to a fixed low-score report on generation or parse failure.
func (s *interviewService) generateFeedback(ctx context.Context, sess *models.InterviewSession) *models.Feedback {
	reply, err := s.ai.GenerateContent(ctx, feedbackPrompt(sess.Messages, sess.TargetRole), llm.GatewayOptions{
		Options: llm.Options{Temperature: 0.3, MaxTokens: 2048},
	})
	if err != nil {
		if s.log != nil {
			s.log.WithError(err).WithField("session_id", sess.ID.Hex()).Warn("feedback generation failed, using fallback")
		}
		return fallbackFeedback()
	}

	var fb models.Feedback
	if err := llm.ExtractJSON(reply, &fb); err != nil {
		if s.log != nil {
			s.log.WithError(err).WithField("session_id", sess.ID.Hex()).Warn("feedback parse failed, using fallback")
		}
		return fallbackFeedback()
	}
	if fb.Strengths == nil {
		fb.Strengths = []string{}
	}
	if fb.Improvements == nil {
		fb.Improvements = []models.Improvement{}
	}
	if fb.SuggestedResources == nil {
		fb.SuggestedResources = []models.Resource{}
	}
	return &fb
}

func (s *interviewService) Abort(ctx context.Context, ownerID, sessionID string) (*models.InterviewSession, error) {
	const op = "InterviewService.Abort"

	sess, err := s.owned(ctx, op, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status.Terminal() {
		return nil, utils.E(utils.CodeConflict, op, "session already ended", nil)
	}

	now := s.now()
	if err := s.sessions.Abort(ctx, sessionID, now); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to abort session", err)
	}

	sess.Status = models.StatusAborted
	sess.CompletedAt = &now
	return sess, nil
}

func (s *interviewService) History(ctx context.Context, ownerID string, opts HistoryOptions) ([]models.InterviewSession, error) {
	const op = "InterviewService.History"

	out, err := s.sessions.ListByOwner(ctx, ownerID, mongorepo.SessionListOptions{
		Limit:  opts.Limit,
		Skip:   opts.Skip,
		Status: opts.Status,
	})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list sessions", err)
	}
	if out == nil {
		out = []models.InterviewSession{}
	}
	return out, nil
}

func (s *interviewService) Stats(ctx context.Context, ownerID string) (*Stats, error) {
	const op = "InterviewService.Stats"

	key := cache.StatsKey(ownerID)
	var cached Stats
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	sessions, err := s.sessions.ListCompleted(ctx, ownerID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list completed sessions", err)
	}

	stats := computeAggregateStats(sessions)
	dates := make([]time.Time, 0, len(sessions))
	for _, sess := range sessions {
		if sess.CompletedAt != nil {
			dates = append(dates, *sess.CompletedAt)
		}
	}
	stats.CurrentStreak = computeStreak(dates, s.now())

	if err := s.cache.SetJSON(ctx, key, stats, statsCacheTTL); err != nil && s.log != nil {
		s.log.WithError(err).Warn("failed to cache stats")
	}
	return &stats, nil
}
