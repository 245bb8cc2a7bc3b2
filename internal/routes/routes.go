package routes

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xyz-asif/moderation/internal/config"
	"github.com/xyz-asif/moderation/internal/features/appeals"
	"github.com/xyz-asif/moderation/internal/features/classifier"
	"github.com/xyz-asif/moderation/internal/features/complaints"
	"github.com/xyz-asif/moderation/internal/features/moderation"
	"github.com/xyz-asif/moderation/internal/features/notifications"
	"github.com/xyz-asif/moderation/internal/middleware"
	"github.com/xyz-asif/moderation/internal/pkg/cachestore"
	"github.com/xyz-asif/moderation/internal/pkg/ratelimit"
	"github.com/xyz-asif/moderation/internal/pkg/response"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Deps are the long-lived resources built by main. DB is nil with the
// memory store driver.
type Deps struct {
	DB         *mongo.Database
	Cache      cachestore.CacheStore
	Classifier classifier.Classifier
	Logger     *zap.Logger
}

type stores struct {
	logs          moderation.Store
	complaints    complaints.Store
	appeals       appeals.Store
	notifications notifications.Store
}

func buildStores(ctx context.Context, cfg *config.Config, db *mongo.Database) (*stores, error) {
	switch cfg.StoreDriver {
	case StoreMemory:
		return &stores{
			logs:          moderation.NewMemoryRepository(),
			complaints:    complaints.NewMemoryRepository(),
			appeals:       appeals.NewMemoryRepository(),
			notifications: notifications.NewMemoryRepository(),
		}, nil
	case StoreMongo, "":
		if db == nil {
			return nil, fmt.Errorf("mongo store driver needs a database")
		}
		logs, err := moderation.NewRepository(ctx, db)
		if err != nil {
			return nil, err
		}
		complaintRepo, err := complaints.NewRepository(ctx, db)
		if err != nil {
			return nil, err
		}
		appealRepo, err := appeals.NewRepository(ctx, db)
		if err != nil {
			return nil, err
		}
		noticeRepo, err := notifications.NewRepository(ctx, db)
		if err != nil {
			return nil, err
		}
		return &stores{logs: logs, complaints: complaintRepo, appeals: appealRepo, notifications: noticeRepo}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// NewClassifier builds the configured classifier adapter.
func NewClassifier(ctx context.Context, cfg *config.Config, log *zap.Logger) (classifier.Classifier, error) {
	return classifier.New(ctx, classifier.Config{
		Driver:      cfg.ClassifierDriver,
		URL:         cfg.ClassifierURL,
		APIKey:      cfg.ClassifierAPIKey,
		GeminiKey:   cfg.GeminiAPIKey,
		GeminiModel: cfg.GeminiModel,
	}, classifier.WithLogger(log.Named("classifier")))
}

// NewCache returns a redis-backed cache when REDIS_URL is set and an
// in-process one otherwise. The returned close func is never nil.
func NewCache(ctx context.Context, cfg *config.Config) (cachestore.CacheStore, func() error, error) {
	if cfg.RedisURL == "" {
		return cachestore.NewMemCacheStore(cfg.CacheTTL), func() error { return nil }, nil
	}
	rcs, err := cachestore.NewRedisCacheStore(ctx, cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		return nil, nil, err
	}
	return rcs, rcs.Close, nil
}

// SetupRoutes wires services and mounts every endpoint on router. ctx bounds
// background work such as rate limiter cleanup.
func SetupRoutes(ctx context.Context, router *gin.Engine, cfg *config.Config, deps Deps) error {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	st, err := buildStores(ctx, cfg, deps.DB)
	if err != nil {
		return err
	}

	notificationService := notifications.NewService(st.notifications, log)
	moderationService := moderation.NewService(st.logs, deps.Classifier, moderation.DefaultPolicy(), cfg.ClassifierTimeout, log).
		WithNotifier(notificationService)
	complaintService := complaints.NewService(st.complaints, moderationService, deps.Cache, log)
	appealService := appeals.NewService(st.appeals, moderationService, appeals.LogAuthorResolver{}, log)

	var limiter *ratelimit.RateLimiter
	if cfg.ComplaintRateLimit > 0 {
		limiter = ratelimit.New(cfg.ComplaintRateLimit, time.Hour)
		limiter.StartCleanup(10*time.Minute, ctx.Done())
	}

	router.GET("/health", healthHandler(cfg, deps))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1", middleware.Auth(cfg.JWTSecret))
	moderation.RegisterRoutes(api, moderationService)
	complaints.RegisterRoutes(api, complaintService, limiter)
	appeals.RegisterRoutes(api, appealService)
	notifications.RegisterRoutes(api, notificationService)

	log.Info("routes registered",
		zap.String("store", cfg.StoreDriver),
		zap.String("classifier", deps.Classifier.Name()),
		zap.Bool("redis_cache", cfg.RedisURL != ""),
	)
	return nil
}

func healthHandler(cfg *config.Config, deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := map[string]interface{}{
			"status":     "ok",
			"time":       time.Now().Unix(),
			"store":      cfg.StoreDriver,
			"classifier": deps.Classifier.Name(),
		}
		if b, ok := deps.Classifier.(interface{ State() string }); ok {
			body["classifier_breaker"] = b.State()
		}

		if deps.DB != nil {
			pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := deps.DB.Client().Ping(pingCtx, readpref.Primary()); err != nil {
				response.Error(c, http.StatusServiceUnavailable, "unavailable", "database unreachable")
				return
			}
		}
		response.Success(c, body)
	}
}
