package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/triponation/core/internal/config"
	"github.com/triponation/core/internal/database"
	"github.com/triponation/core/internal/middleware"
	"github.com/triponation/core/internal/modules/media"
	"github.com/triponation/core/internal/pkg/cache"
	pkgcron "github.com/triponation/core/internal/pkg/cron"
	"github.com/triponation/core/internal/pkg/jwt"
	"github.com/triponation/core/internal/pkg/mail"
	"github.com/triponation/core/internal/pkg/mediastore"
	"github.com/triponation/core/internal/pkg/uploads"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	cc     *cache.Client
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler
}

// New initializes the application: config → DB → Redis → S3 → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	if tz := strings.TrimSpace(cfg.Timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			logger.Warn("invalid timezone, keeping system default", zap.String("timezone", tz), zap.Error(err))
		} else {
			time.Local = loc
		}
	}

	// A Redis outage degrades caching and rate limiting but never takes
	// the API down; the nil client misses every read.
	cc, err := cache.Connect(cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", zap.Error(err))
		cc = nil
	}

	// cache.disable turns off query memoization without losing the rate
	// limit and idempotence middleware, which share the connection.
	readCache := cc
	if cfg.Cache.Disable {
		readCache = nil
	}

	store, err := mediastore.NewS3(context.Background(), cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("media store: %w", err)
	}

	um := uploads.NewManager(store, db, logger)
	tokens := jwt.New(cfg.JWTSecret, jwt.DefaultTTL)
	otp := mail.New(cfg.Mail)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))
	router.Use(middleware.RateLimit(cc.Redis()))
	router.Use(middleware.Idempotence(cc.Redis()))

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{cfg: cfg, router: router, db: db, cc: cc, logger: logger, cancel: cancel, sched: pkgcron.New()}
	mediaSvc := media.NewService(db, um, logger)
	app.registerRoutes(deps{
		cache:    readCache,
		uploads:  um,
		tokens:   tokens,
		otp:      otp,
		mediaSvc: mediaSvc,
	})

	if !cfg.Cron.Disable {
		registerCronJobs(app.sched, mediaSvc, cfg)
		go app.sched.Start(ctx)
	}

	return app, nil
}

// corsConfig builds the CORS policy. In development every origin is
// accepted; in production only the configured patterns match.
func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		c.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		c.AllowOriginFunc = func(origin string) bool { return true }
	}
	return c
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background jobs and closes shared connections.
func (a *App) Shutdown() {
	a.cancel()
	if err := a.cc.Close(); err != nil {
		a.logger.Warn("closing redis", zap.Error(err))
	}
}
