package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/prepmate/prepmate/config"
	"github.com/prepmate/prepmate/internal/api/handlers"
	"github.com/prepmate/prepmate/internal/api/middleware"
	"github.com/prepmate/prepmate/internal/api/routes"
	"github.com/prepmate/prepmate/internal/cache"
	"github.com/prepmate/prepmate/internal/logger"
	"github.com/prepmate/prepmate/internal/providers/llm"
	mongorepo "github.com/prepmate/prepmate/internal/repositories/mongo"
	"github.com/prepmate/prepmate/internal/services"
	"github.com/prepmate/prepmate/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoClient, err := config.NewMongo(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("MongoDB init error")
	}
	defer func() {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()
	log.Info("MongoDB connected")

	db := mongoClient.Database(cfg.MongoDB)
	if err := config.EnsureIndexes(ctx, db); err != nil {
		log.WithError(err).Fatal("index init error")
	}

	var statsCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		rdb, err := config.NewRedis(ctx, cfg)
		if err != nil {
			log.WithError(err).Fatal("Redis init error")
		}
		defer rdb.Close()
		statsCache = cache.NewRedisCache(rdb)
		log.Info("Redis connected")
	}

	var primary, fallback llm.Provider
	if cfg.GroqAPIKey != "" {
		primary = llm.NewGroq(cfg.GroqAPIKey)
	}
	if cfg.GeminiAPIKey != "" {
		gem, err := llm.NewGemini(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.WithError(err).Fatal("Gemini init error")
		}
		fallback = gem
	}
	gateway := llm.NewGateway(log, primary, fallback)
	defer gateway.Close()

	var uploader storage.Uploader = storage.Placeholder{}
	if cfg.ResumeBucket != "" {
		gcs, err := storage.NewGCSUploader(ctx, cfg.ResumeBucket)
		if err != nil {
			log.WithError(err).Fatal("GCS init error")
		}
		defer gcs.Close()
		uploader = gcs
	}

	users := mongorepo.NewUserRepo(db)
	sessions := mongorepo.NewSessionRepo(db)
	resumes := mongorepo.NewResumeRepo(db)
	questions := mongorepo.NewQuestionRepo(db)
	progress := mongorepo.NewProgressRepo(db)

	userSvc := services.NewUserService(users)
	interviewSvc := services.NewInterviewService(sessions, progress, gateway, statsCache, log)
	resumeSvc := services.NewResumeService(resumes, uploader, gateway, log)
	questionSvc := services.NewQuestionService(questions)
	achievementSvc := services.NewAchievementService(sessions)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		User:        handlers.NewUserHandler(userSvc),
		Interview:   handlers.NewInterviewHandler(interviewSvc),
		Resume:      handlers.NewResumeHandler(resumeSvc),
		Question:    handlers.NewQuestionHandler(questionSvc),
		Achievement: handlers.NewAchievementHandler(achievementSvc),
		WS:          handlers.NewWSHandler(interviewSvc),

		JWTSecret:   cfg.AuthJWTSecret,
		JWTIssuer:   cfg.AuthJWTIssuer,
		JWTAudience: cfg.AuthJWTAudience,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
