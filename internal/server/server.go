package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/config"
	"github.com/pageza/recipe-tracker/backend/internal/api"
	"github.com/pageza/recipe-tracker/backend/internal/cloud"
	"github.com/pageza/recipe-tracker/backend/internal/database"
	"github.com/pageza/recipe-tracker/backend/internal/foodapi"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/pageza/recipe-tracker/backend/internal/middleware"
	"github.com/pageza/recipe-tracker/backend/internal/realtime"
	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/store"
)

// keyCacheTTL bounds how long a key from the key service is reused.
const keyCacheTTL = time.Hour

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
	hub    *realtime.Hub
	log    logging.Logger
}

// Options override the collaborators New would otherwise build from the
// configuration.
type Options struct {
	// Redis is used instead of dialing cfg's Redis. Set SkipRedis to run
	// without one.
	Redis     *redis.Client
	SkipRedis bool

	// Documents replaces the configured cloud document store.
	Documents cloud.DocumentStore
}

// New creates a new server instance. Redis is optional: without it the API
// key is cached in memory, searches are not rate limited and the Redis
// document store is disabled.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, log logging.Logger, opts Options) (*Server, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	rdb := opts.Redis
	if rdb == nil && !opts.SkipRedis {
		rdb, err = database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Warn(ctx, "redis unavailable, continuing without it", "error", err)
			rdb = nil
		}
	}

	// a typed nil must not reach the interface-taking constructors
	var cmd redis.Cmdable
	var keyCache foodapi.KeyCache = foodapi.NewMemoryKeyCache(keyCacheTTL)
	var limiter *middleware.RateLimiter
	if rdb != nil {
		cmd = rdb
		keyCache = foodapi.NewRedisKeyCache(rdb, keyCacheTTL)
		limiter = middleware.NewSearchRateLimiter(rdb, cfg.SearchRateLimit, log)
	}

	docs := opts.Documents
	if docs == nil {
		docs, err = cloud.New(ctx, cfg, cmd)
		if err != nil {
			return nil, err
		}
	}
	if docs == nil {
		log.Warn(ctx, "cloud document store disabled")
	}

	keys := foodapi.NewKeyProvider(cfg.FoodAPIKeyURL, cfg.FoodAPIKey, &http.Client{Timeout: cfg.FoodAPITimeout}, keyCache)
	catalog := foodapi.New(cfg.FoodAPIBaseURL, keys, cfg.FoodAPITimeout)

	st := store.New(db)
	hub := realtime.NewHub(log.With("component", "realtime"))
	svc := api.Services{
		Auth:          service.NewAuthService(st, cfg.JWTSecret, docs, log),
		Profile:       service.NewProfileService(st, docs, log),
		Ingredients:   service.NewIngredientService(st, docs, log),
		Recipes:       service.NewRecipeService(st, catalog),
		Tracker:       service.NewDailyEatsService(st, hub, loc, log),
		Search:        service.NewSearchService(st, catalog),
		Feed:          hub,
		SearchLimiter: limiter,
	}

	router := newRouter(cfg, log)
	api.RegisterRoutes(router, db, svc, log)

	return &Server{
		cfg:    cfg,
		router: router,
		db:     db,
		redis:  rdb,
		hub:    hub,
		log:    log,
	}, nil
}

func newRouter(cfg *config.Config, log logging.Logger) *gin.Engine {
	var router *gin.Engine
	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
		router = gin.New()
		router.Use(middleware.Recovery(log), middleware.RequestLogger(log))
	} else {
		router = gin.Default()
	}
	router.Use(middleware.CORS())
	return router
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              net.JoinHostPort(s.cfg.ServerHost, s.cfg.ServerPort),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info(context.Background(), "server listening", "addr", s.http.Addr, "env", s.cfg.Env)

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and releases Redis.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	if s.redis != nil {
		err = errors.Join(err, s.redis.Close())
	}
	return err
}
