package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/prepmate/prepmate/internal/models"
	mongorepo "github.com/prepmate/prepmate/internal/repositories/mongo"
	"github.com/prepmate/prepmate/internal/utils"
)

type QuestionQuery struct {
	Category    string
	Subcategory string
	Difficulty  int // 0 = any
	Limit       int64
	Skip        int64
}

type QuestionPage struct {
	Items   []models.Question `json:"items"`
	Total   int64             `json:"total"`
	Page    int64             `json:"page"`
	Limit   int64             `json:"limit"`
	HasMore bool              `json:"hasMore"`
}

type CreateQuestionInput struct {
	Category           string                      `json:"category"`
	Subcategory        *string                     `json:"subcategory,omitempty"`
	Difficulty         int                         `json:"difficulty"`
	QuestionEn         string                      `json:"questionEn"`
	QuestionBn         *string                     `json:"questionBn,omitempty"`
	ModelAnswerEn      *string                     `json:"modelAnswerEn,omitempty"`
	ModelAnswerBn      *string                     `json:"modelAnswerBn,omitempty"`
	EvaluationCriteria []models.EvaluationCriteria `json:"evaluationCriteria,omitempty"`
	Tags               []string                    `json:"tags,omitempty"`
	IsActive           *bool                       `json:"isActive,omitempty"`
}

type QuestionService interface {
	List(ctx context.Context, q QuestionQuery) (*QuestionPage, error)
	Create(ctx context.Context, in CreateQuestionInput) (*models.Question, error)
}

type questionService struct {
	questions mongorepo.QuestionRepository
}

func NewQuestionService(questions mongorepo.QuestionRepository) QuestionService {
	return &questionService{questions: questions}
}

func (s *questionService) List(ctx context.Context, q QuestionQuery) (*QuestionPage, error) {
	const op = "QuestionService.List"

	if q.Difficulty != 0 && (q.Difficulty < 1 || q.Difficulty > 5) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "difficulty must be between 1 and 5", nil)
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "limit must be between 1 and 100", nil)
	}
	if q.Skip < 0 {
		q.Skip = 0
	}

	f := mongorepo.QuestionFilter{
		Category:    q.Category,
		Subcategory: q.Subcategory,
		Difficulty:  q.Difficulty,
	}

	items, err := s.questions.List(ctx, f, q.Limit, q.Skip)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list questions", err)
	}
	total, err := s.questions.Count(ctx, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count questions", err)
	}
	if items == nil {
		items = []models.Question{}
	}

	return &QuestionPage{
		Items:   items,
		Total:   total,
		Page:    q.Skip/q.Limit + 1,
		Limit:   q.Limit,
		HasMore: q.Skip+int64(len(items)) < total,
	}, nil
}

func validateQuestion(in CreateQuestionInput) []string {
	var problems []string
	if strings.TrimSpace(in.Category) == "" {
		problems = append(problems, "category is required")
	}
	if in.Difficulty != 0 && (in.Difficulty < 1 || in.Difficulty > 5) {
		problems = append(problems, "difficulty must be between 1 and 5")
	}
	if strings.TrimSpace(in.QuestionEn) == "" {
		problems = append(problems, "questionEn is required")
	}
	for i, c := range in.EvaluationCriteria {
		if strings.TrimSpace(c.Criterion) == "" {
			problems = append(problems, fmt.Sprintf("evaluationCriteria[%d].criterion is required", i))
		}
		if c.MaxPoints < 1 || c.MaxPoints > 10 {
			problems = append(problems, fmt.Sprintf("evaluationCriteria[%d].maxPoints must be between 1 and 10", i))
		}
	}
	return problems
}

func (s *questionService) Create(ctx context.Context, in CreateQuestionInput) (*models.Question, error) {
	const op = "QuestionService.Create"

	if problems := validateQuestion(in); len(problems) > 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, strings.Join(problems, "; "), nil)
	}

	if in.Difficulty == 0 {
		in.Difficulty = 3
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	if in.EvaluationCriteria == nil {
		in.EvaluationCriteria = []models.EvaluationCriteria{}
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}

	q := &models.Question{
		Category:           in.Category,
		Subcategory:        in.Subcategory,
		Difficulty:         in.Difficulty,
		QuestionEn:         in.QuestionEn,
		QuestionBn:         in.QuestionBn,
		ModelAnswerEn:      in.ModelAnswerEn,
		ModelAnswerBn:      in.ModelAnswerBn,
		EvaluationCriteria: in.EvaluationCriteria,
		Tags:               in.Tags,
		CreatedBy:          "admin",
		IsActive:           active,
	}
	if err := s.questions.Insert(ctx, q); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create question", err)
	}
	return q, nil
}
