package config

import (
	"errors"
	"os"
)

// Config is everything the process needs from the environment. Load it once
// in main and pass pieces down explicitly; nothing in this package keeps
// global state.
type Config struct {
	Port string

	MongoURI  string
	MongoDB   string
	RedisAddr string

	AuthJWTSecret   string
	AuthJWTIssuer   string // optional
	AuthJWTAudience string // optional

	GroqAPIKey   string
	GeminiAPIKey string

	// Optional GCS bucket for uploaded resume files. When empty, resume
	// uploads are stored with a placeholder URL only.
	ResumeBucket string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:            os.Getenv("PORT"),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDB:         os.Getenv("MONGO_DB"),
		RedisAddr:       firstEnv("REDIS_ADDR", "REDIS_URI", "REDIS_URL"),
		AuthJWTSecret:   os.Getenv("AUTH_JWT_SECRET"),
		AuthJWTIssuer:   os.Getenv("AUTH_JWT_ISSUER"),
		AuthJWTAudience: os.Getenv("AUTH_JWT_AUDIENCE"),
		GroqAPIKey:      os.Getenv("GROQ_API_KEY"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		ResumeBucket:    os.Getenv("RESUME_GCS_BUCKET"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "prepmate"
	}

	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI environment variable is not set")
	}
	if cfg.AuthJWTSecret == "" {
		return nil, errors.New("AUTH_JWT_SECRET environment variable is not set")
	}
	return cfg, nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
