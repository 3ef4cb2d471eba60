package routes

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xyz-asif/civiclens/internal/config"
	"github.com/xyz-asif/civiclens/internal/database"
	"github.com/xyz-asif/civiclens/internal/features/auth"
	"github.com/xyz-asif/civiclens/internal/features/geo"
	"github.com/xyz-asif/civiclens/internal/features/issues"
	"github.com/xyz-asif/civiclens/internal/pkg/cloudinary"
	"github.com/xyz-asif/civiclens/internal/pkg/ratelimit"
)

// SetupRoutes wires every feature package into the router.
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) error {
	verifier := auth.NewVerifier(cfg.GoogleClientID, cfg.GoogleTokenInfoURL)

	geoRepo, err := geo.Load(cfg.WardZonesPath, cfg.DivisionsPath)
	if err != nil {
		return err
	}

	// photos stays a true nil interface unless the service came up.
	var photos issues.PhotoStore
	if svc, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "civiclens"); err != nil {
		// Photo upload degrades to JSON-only issue creation.
		log.Printf("Cloudinary not configured, photo uploads disabled: %v", err)
	} else {
		photos = svc
	}

	limiter := buildLimiter(cfg)

	issuesRepo := issues.NewRepository(db)

	auth.RegisterRoutes(router, verifier)
	geo.RegisterRoutes(router, geoRepo)
	issues.RegisterRoutes(router, issuesRepo, photos, verifier, cfg.APIKey, limiter)

	return nil
}

// buildLimiter picks the Redis-backed limiter when Redis is configured so the
// limit holds across instances; otherwise it falls back to process memory.
func buildLimiter(cfg *config.Config) ratelimit.Limiter {
	if cfg.RedisAddr != "" {
		client, err := database.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Printf("Redis unavailable, using in-memory rate limiter: %v", err)
		} else {
			return ratelimit.NewRedis(client, "issue-limit", cfg.IssueRateLimit, cfg.IssueRateWindow)
		}
	}
	memory := ratelimit.NewMemory(cfg.IssueRateLimit, cfg.IssueRateWindow)
	memory.StartCleanup(5 * time.Minute)
	return memory
}
