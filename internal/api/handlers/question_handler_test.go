package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/prepmate/prepmate/internal/models"
	"github.com/prepmate/prepmate/internal/services"
)

type stubQuestionService struct {
	page *services.QuestionPage
	err  error
}

func (s *stubQuestionService) List(context.Context, services.QuestionQuery) (*services.QuestionPage, error) {
	return s.page, s.err
}

func (s *stubQuestionService) Create(_ context.Context, in services.CreateQuestionInput) (*models.Question, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Question{Category: in.Category, QuestionEn: in.QuestionEn, Difficulty: 3, IsActive: true}, nil
}

func newQuestionRouter(svc services.QuestionService, authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if authed {
		r.Use(func(c *gin.Context) { c.Set("user_id", "owner-1") })
	}
	h := NewQuestionHandler(svc)
	r.GET("/api/questions", h.List)
	r.POST("/api/questions", h.Create)
	return r
}

func TestQuestionListRequiresAuth(t *testing.T) {
	r := newQuestionRouter(&stubQuestionService{}, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/questions", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestQuestionListBadQueryParams(t *testing.T) {
	r := newQuestionRouter(&stubQuestionService{}, true)

	for _, path := range []string{
		"/api/questions?difficulty=abc",
		"/api/questions?limit=0",
		"/api/questions?limit=notanumber",
		"/api/questions?skip=-1",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("GET %s status = %d, want 400", path, w.Code)
		}

		var body APIError
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("response not JSON: %v", err)
		}
		if body.Message == "" {
			t.Fatalf("GET %s should carry a validation message", path)
		}
	}
}

func TestQuestionListOK(t *testing.T) {
	svc := &stubQuestionService{page: &services.QuestionPage{
		Items:   []models.Question{{Category: "behavioral", QuestionEn: "Why this role?", IsActive: true}},
		Total:   1,
		Page:    1,
		Limit:   20,
		HasMore: false,
	}}
	r := newQuestionRouter(svc, true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/questions?category=behavioral", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var page services.QuestionPage
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("page = %+v", page)
	}
}

func TestQuestionCreateReturns201(t *testing.T) {
	r := newQuestionRouter(&stubQuestionService{}, true)

	body := strings.NewReader(`{"category": "technical", "questionEn": "Explain goroutines."}`)
	req := httptest.NewRequest(http.MethodPost, "/api/questions", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
}
