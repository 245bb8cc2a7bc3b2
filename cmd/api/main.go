// @title Moderation API
// @version 1.0
// @description Content moderation: classification, review queue, complaints and appeals
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer <token>"
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	docs "github.com/xyz-asif/moderation/docs"
	"github.com/xyz-asif/moderation/internal/config"
	"github.com/xyz-asif/moderation/internal/database"
	"github.com/xyz-asif/moderation/internal/middleware"
	"github.com/xyz-asif/moderation/internal/pkg/logger"
	"github.com/xyz-asif/moderation/internal/routes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Config{
		Environment: cfg.AppEnv,
		Level:       cfg.LogLevel,
		ServiceName: "moderation-api",
	})
	logger.SetGlobal(log)
	defer func() { _ = log.Sync() }()

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *mongo.Database
	if cfg.StoreDriver != routes.StoreMemory {
		mdb, err := database.Connect(ctx, database.DefaultConfig(cfg.MongoURI, cfg.MongoDB), log.Named("mongo"))
		if err != nil {
			log.Fatal("failed to connect to mongo", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mdb.Disconnect(shutdownCtx); err != nil {
				log.Warn("mongo disconnect", zap.Error(err))
			}
		}()
		db = mdb.Database
	}

	clf, err := routes.NewClassifier(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to build classifier", zap.Error(err))
	}

	cache, closeCache, err := routes.NewCache(ctx, cfg)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := closeCache(); err != nil {
			log.Warn("cache close", zap.Error(err))
		}
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log.Named("http")))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.FrontendURL))

	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DeepLinking(true),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
			ginSwagger.PersistAuthorization(true),
		),
	)

	err = routes.SetupRoutes(ctx, router, cfg, routes.Deps{
		DB:         db,
		Cache:      cache,
		Classifier: clf,
		Logger:     log,
	})
	if err != nil {
		log.Fatal("failed to set up routes", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("server exited")
}
