package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"bikemarket/internal/config"
	"bikemarket/internal/database"
	"bikemarket/internal/domain/bike"
	"bikemarket/internal/domain/payment"
	"bikemarket/internal/domain/upload"
	"bikemarket/internal/middleware"
	"bikemarket/internal/pkg/response"
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.TimeOnly,
	})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	repo, cleanup, err := newRepository(cfg)
	if err != nil {
		slog.Error("init store", "store", cfg.Store, "err", err)
		os.Exit(1)
	}
	defer cleanup()

	uploads, err := upload.NewService(cfg.UploadDir)
	if err != nil {
		slog.Error("init uploads", "dir", cfg.UploadDir, "err", err)
		os.Exit(1)
	}

	if !cfg.Mpesa.Configured() {
		slog.Warn("mpesa credentials not set; payment requests will fail")
	}
	payments := payment.NewClient(cfg.Mpesa, slog.Default())

	r := gin.New()
	r.Use(middleware.Logger(), middleware.Recovery(), middleware.CORS())

	api := r.Group("/api")
	bike.RegisterRoutes(api, bike.NewHandler(repo, uploads))
	upload.RegisterRoutes(api, upload.NewHandler(uploads))
	payment.RegisterRoutes(api, payment.NewHandler(payments))

	r.Static(upload.URLPrefix, cfg.UploadDir)
	registerFrontend(r, cfg.PublicDir)

	slog.Info("listening", "port", cfg.Port, "store", cfg.Store)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// newRepository picks the catalog backend from configuration. The returned
// cleanup closes the Mongo connection; for the memory store it is a no-op.
func newRepository(cfg *config.Config) (bike.Repository, func(), error) {
	if cfg.Store == config.StoreMemory {
		slog.Warn("using in-memory store; listings are lost on restart")
		return bike.NewMemoryRepository(), func() {}, nil
	}

	client, err := database.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}
	return bike.NewMongoRepository(client.Database(cfg.MongoDB)), cleanup, nil
}

// registerFrontend serves the storefront files at the root path. Unknown API
// paths stay JSON; anything else falls back to index.html so client-side
// routes survive a refresh.
func registerFrontend(r *gin.Engine, publicDir string) {
	index := filepath.Join(publicDir, "index.html")

	r.NoRoute(func(c *gin.Context) {
		if p := c.Request.URL.Path; p == "/api" || strings.HasPrefix(p, "/api/") {
			response.Error(c, http.StatusNotFound, "API route not found")
			return
		}

		p := filepath.Join(publicDir, filepath.Clean(c.Request.URL.Path))
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			c.File(p)
			return
		}
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		response.Error(c, http.StatusNotFound, "Not found")
	})
}
