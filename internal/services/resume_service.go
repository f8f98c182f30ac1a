package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prepmate/prepmate/internal/models"
	"github.com/prepmate/prepmate/internal/providers/llm"
	mongorepo "github.com/prepmate/prepmate/internal/repositories/mongo"
	"github.com/prepmate/prepmate/internal/storage"
	"github.com/prepmate/prepmate/internal/utils"
)

// maxResumeBytes is the upload size ceiling (5 MiB).
const maxResumeBytes = 5 * 1024 * 1024

type UploadResumeInput struct {
	FileName string
	MimeType string
	Data     []byte
}

type ResumeService interface {
	// Upload validates, stores, extracts, and analyzes a resume. Validation
	// failures reject before any AI call or persistence; analysis failures
	// degrade to a fixed default report.
	Upload(ctx context.Context, ownerID string, in UploadResumeInput) (*models.Resume, error)
	Get(ctx context.Context, ownerID, id string) (*models.Resume, error)
	List(ctx context.Context, ownerID string) ([]models.Resume, error)
	Delete(ctx context.Context, ownerID, id string) error
	SetDefault(ctx context.Context, ownerID, id string) error
}

type resumeService struct {
	resumes  mongorepo.ResumeRepository
	uploader storage.Uploader
	ai       AIGateway
	log      *logrus.Logger
	now      func() time.Time
}

func NewResumeService(resumes mongorepo.ResumeRepository, uploader storage.Uploader, ai AIGateway, log *logrus.Logger) ResumeService {
	if uploader == nil {
		uploader = storage.Placeholder{}
	}
	return &resumeService{
		resumes:  resumes,
		uploader: uploader,
		ai:       ai,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *resumeService) Upload(ctx context.Context, ownerID string, in UploadResumeInput) (*models.Resume, error) {
	const op = "ResumeService.Upload"

	if ownerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "owner is required", nil)
	}
	if in.MimeType != "application/pdf" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "only PDF files are supported", nil)
	}
	if int64(len(in.Data)) > maxResumeBytes {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file size must be less than 5MB", nil)
	}
	if len(in.Data) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file is empty", nil)
	}

	text, err := extractPDFText(in.Data)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "could not extract text from PDF", err)
	}

	objectName := fmt.Sprintf("resumes/%s/%d-%s", ownerID, s.now().UnixNano(), in.FileName)
	url, err := s.uploader.Upload(ctx, objectName, in.MimeType, bytes.NewReader(in.Data))
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store file", err)
	}

	resume := &models.Resume{
		OwnerID:       ownerID,
		FileName:      in.FileName,
		FileURL:       url,
		FileSize:      int64(len(in.Data)),
		MimeType:      in.MimeType,
		ExtractedText: text,
		ParsedSections: models.ParsedSections{
			Experience:     []models.ExperienceItem{},
			Education:      []models.EducationItem{},
			Skills:         []string{},
			Certifications: []string{},
		},
	}
	if err := s.resumes.Insert(ctx, resume); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save resume", err)
	}

	analysis := s.analyze(ctx, text)
	if err := s.resumes.UpdateAnalysis(ctx, resume.ID.Hex(), analysis, nil); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save analysis", err)
	}

	now := s.now()
	resume.Analysis = analysis
	resume.AnalyzedAt = &now
	return resume, nil
}

// analyze asks the fast model for a scored resume report and substitutes a
// fixed default on generation or parse failure.
func (s *resumeService) analyze(ctx context.Context, text string) *models.ResumeAnalysis {
	reply, err := s.ai.GenerateContent(ctx, resumeAnalysisPrompt(text), llm.GatewayOptions{
		Options: llm.Options{PreferFast: true, Temperature: 0.3, MaxTokens: 512},
	})
	if err != nil {
		if s.log != nil {
			s.log.WithError(err).Warn("resume analysis failed, using default")
		}
		return fallbackAnalysis()
	}

	var out models.ResumeAnalysis
	if err := llm.ExtractJSON(reply, &out); err != nil {
		if s.log != nil {
			s.log.WithError(err).Warn("resume analysis parse failed, using default")
		}
		return fallbackAnalysis()
	}
	if out.MissingKeywords == nil {
		out.MissingKeywords = []string{}
	}
	if out.ImprovementSuggestions == nil {
		out.ImprovementSuggestions = []models.ImprovementSuggestion{}
	}
	return &out
}

func (s *resumeService) Get(ctx context.Context, ownerID, id string) (*models.Resume, error) {
	const op = "ResumeService.Get"

	out, err := s.resumes.GetByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "resume not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get resume", err)
	}
	return out, nil
}

func (s *resumeService) List(ctx context.Context, ownerID string) ([]models.Resume, error) {
	const op = "ResumeService.List"

	out, err := s.resumes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list resumes", err)
	}
	if out == nil {
		out = []models.Resume{}
	}
	return out, nil
}

func (s *resumeService) Delete(ctx context.Context, ownerID, id string) error {
	const op = "ResumeService.Delete"

	if err := s.resumes.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "resume not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete resume", err)
	}
	return nil
}

func (s *resumeService) SetDefault(ctx context.Context, ownerID, id string) error {
	const op = "ResumeService.SetDefault"

	if err := s.resumes.SetDefault(ctx, ownerID, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "resume not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to set default resume", err)
	}
	return nil
}
