package router

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polesk/storebot/internal/config"
	"github.com/polesk/storebot/internal/server/http/handlers"
	"github.com/polesk/storebot/internal/server/http/middleware"
)

// Setup configures the gin router with handlers and middleware. When a
// webhook public key is configured, interaction deliveries must carry a
// valid ed25519 signature.
func Setup(eventRouter handlers.EventRouter, cfg *config.Config, logger *slog.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	handler := handlers.NewInteractionHandler(eventRouter)

	engine.GET("/healthz", handler.Health)

	api := engine.Group("/api")
	if cfg.WebhookPublicKey != "" {
		key, err := hex.DecodeString(cfg.WebhookPublicKey)
		if err != nil || len(key) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("invalid webhook public key")
		}
		api.Use(middleware.VerifySignature(ed25519.PublicKey(key)))
	}
	api.POST("/interactions", handler.Handle)

	return engine, nil
}
