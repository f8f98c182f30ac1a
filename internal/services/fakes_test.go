package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prepmate/prepmate/internal/models"
	"github.com/prepmate/prepmate/internal/providers/llm"
	mongorepo "github.com/prepmate/prepmate/internal/repositories/mongo"
	"github.com/prepmate/prepmate/internal/utils"
)

type fakeSessionRepo struct {
	byID      map[string]*models.InterviewSession
	appended  []models.Message
	completed bool
	aborted   bool
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byID: map[string]*models.InterviewSession{}}
}

func (f *fakeSessionRepo) add(s *models.InterviewSession) string {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	f.byID[s.ID.Hex()] = s
	return s.ID.Hex()
}

func (f *fakeSessionRepo) Create(_ context.Context, s *models.InterviewSession) error {
	f.add(s)
	return nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id string) (*models.InterviewSession, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) AppendMessage(_ context.Context, id string, msg models.Message) error {
	s, ok := f.byID[id]
	if !ok {
		return utils.ErrNotFound
	}
	s.Messages = append(s.Messages, msg)
	f.appended = append(f.appended, msg)
	return nil
}

func (f *fakeSessionRepo) Complete(_ context.Context, id string, fb *models.Feedback, dur int64, at time.Time) error {
	s, ok := f.byID[id]
	if !ok {
		return utils.ErrNotFound
	}
	s.Status = models.StatusCompleted
	s.Feedback = fb
	s.DurationSeconds = &dur
	s.CompletedAt = &at
	f.completed = true
	return nil
}

func (f *fakeSessionRepo) Abort(_ context.Context, id string, at time.Time) error {
	s, ok := f.byID[id]
	if !ok {
		return utils.ErrNotFound
	}
	s.Status = models.StatusAborted
	s.CompletedAt = &at
	f.aborted = true
	return nil
}

func (f *fakeSessionRepo) ListByOwner(_ context.Context, ownerID string, _ mongorepo.SessionListOptions) ([]models.InterviewSession, error) {
	var out []models.InterviewSession
	for _, s := range f.byID {
		if s.OwnerID == ownerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListCompleted(_ context.Context, ownerID string) ([]models.InterviewSession, error) {
	var out []models.InterviewSession
	for _, s := range f.byID {
		if s.OwnerID == ownerID && s.Status == models.StatusCompleted {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeProgressRepo struct {
	bumps int
}

func (f *fakeProgressRepo) IncrementDaily(context.Context, string, time.Time, int64, int64, int64) error {
	f.bumps++
	return nil
}

func (f *fakeProgressRepo) ListByOwner(context.Context, string, int64) ([]models.Progress, error) {
	return nil, nil
}

// fakeGateway returns canned replies, or fails every call when err is set.
type fakeGateway struct {
	reply string
	err   error
	calls int
}

func (f *fakeGateway) GenerateContent(context.Context, string, llm.GatewayOptions) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeGateway) GenerateStreamingContent(_ context.Context, _ string, onChunk func(string), _ llm.GatewayOptions) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	onChunk(f.reply)
	return nil
}

var errGatewayDown = errors.New("provider unavailable")
