package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prepmate/prepmate/internal/services"
	"github.com/prepmate/prepmate/internal/utils"
)

type QuestionHandler struct {
	svc services.QuestionService
}

func NewQuestionHandler(svc services.QuestionService) *QuestionHandler {
	return &QuestionHandler{svc: svc}
}

func intQuery(c *gin.Context, name string, def int64) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (h *QuestionHandler) List(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	const op = "QuestionHandler.List"

	difficulty, ok := intQuery(c, "difficulty", 0)
	if !ok {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "difficulty must be an integer", nil))
		return
	}
	limit, ok := intQuery(c, "limit", 20)
	if !ok || limit < 1 {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "limit must be a positive integer", nil))
		return
	}
	skip, ok := intQuery(c, "skip", 0)
	if !ok || skip < 0 {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "skip must be a non-negative integer", nil))
		return
	}

	page, err := h.svc.List(c.Request.Context(), services.QuestionQuery{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Difficulty:  int(difficulty),
		Limit:       limit,
		Skip:        skip,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *QuestionHandler) Create(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req services.CreateQuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "QuestionHandler.Create", "invalid request body", err))
		return
	}

	q, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}
