package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepmate/prepmate/internal/services"
)

type AchievementHandler struct {
	svc services.AchievementService
}

func NewAchievementHandler(svc services.AchievementService) *AchievementHandler {
	return &AchievementHandler{svc: svc}
}

func (h *AchievementHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	out, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}
