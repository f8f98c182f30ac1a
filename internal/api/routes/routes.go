package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/prepmate/prepmate/internal/api/handlers"
	"github.com/prepmate/prepmate/internal/api/middleware"
)

type Deps struct {
	User        *handlers.UserHandler
	Interview   *handlers.InterviewHandler
	Resume      *handlers.ResumeHandler
	Question    *handlers.QuestionHandler
	Achievement *handlers.AchievementHandler
	WS          *handlers.WSHandler

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth(d.JWTSecret, d.JWTIssuer, d.JWTAudience))

	auth.GET("/profile/me", d.User.GetProfile)
	auth.GET("/profile/preferences", d.User.GetPreferences)
	auth.PUT("/profile/preferences", d.User.UpdatePreferences)
	auth.POST("/profile/onboarding/complete", d.User.CompleteOnboarding)

	auth.POST("/interviews", d.Interview.Create)
	auth.GET("/interviews", d.Interview.History)
	auth.GET("/interviews/stats", d.Interview.Stats)
	auth.GET("/interviews/:session_id", d.Interview.Get)
	auth.POST("/interviews/:session_id/messages", d.Interview.SendMessage)
	auth.POST("/interviews/:session_id/complete", d.Interview.Complete)
	auth.POST("/interviews/:session_id/abort", d.Interview.Abort)

	auth.POST("/resumes", d.Resume.Upload)
	auth.GET("/resumes", d.Resume.List)
	auth.GET("/resumes/:resume_id", d.Resume.Get)
	auth.DELETE("/resumes/:resume_id", d.Resume.Delete)
	auth.POST("/resumes/:resume_id/default", d.Resume.SetDefault)

	auth.GET("/api/questions", d.Question.List)
	auth.POST("/api/questions", d.Question.Create)

	auth.GET("/achievements", d.Achievement.List)

	// WebSocket
	auth.GET("/ws/interviews/:session_id", d.WS.SessionWS)
}
