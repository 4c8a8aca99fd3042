package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/olegsavin/brandmatch/internal/config"
	pgrepo "github.com/olegsavin/brandmatch/internal/repo/postgres"
	redrepo "github.com/olegsavin/brandmatch/internal/repo/redis"
	authsvc "github.com/olegsavin/brandmatch/internal/services/auth"
	conversationssvc "github.com/olegsavin/brandmatch/internal/services/conversations"
	discoverysvc "github.com/olegsavin/brandmatch/internal/services/discovery"
	matchessvc "github.com/olegsavin/brandmatch/internal/services/matches"
	profilessvc "github.com/olegsavin/brandmatch/internal/services/profiles"
	userssvc "github.com/olegsavin/brandmatch/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	exclusionCache := redrepo.NewExclusionCache(redisClient, cfg.Matching.ExclusionCacheTTL)

	userRepo := pgrepo.NewUserRepo(pool)
	profileRepo := pgrepo.NewProfileRepo(pool)
	matchRepo := pgrepo.NewMatchRepo(pool)
	discoveryRepo := pgrepo.NewDiscoveryRepo(pool)
	conversationRepo := pgrepo.NewConversationRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, sessionRepo, cfg.Auth.RefreshTTL, cfg.Auth.BootstrapKey)
	profileService := profilessvc.NewService(profileRepo, userRepo)
	conversationService := conversationssvc.NewService(conversationRepo, cfg.Matching.ListLimit)
	userService := userssvc.NewService(userRepo)

	discoveryService := discoverysvc.NewService(discoveryRepo, matchRepo, log)
	discoveryService.AttachExclusionCache(exclusionCache)

	matchesService := matchessvc.NewService(matchessvc.Dependencies{
		RunTx: func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return pgrepo.WithTx(ctx, pool, fn)
		},
		Matches:       matchRepo,
		Users:         userRepo,
		Profiles:      profileRepo,
		Conversations: conversationRepo,
		Exclusions:    exclusionCache,
		Logger:        log,
	}, matchessvc.Config{
		ConversationTimeout: cfg.Matching.ConversationTimeout,
		ListLimit:           cfg.Matching.ListLimit,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService:         authService,
		DiscoveryService:    discoveryService,
		MatchService:        matchesService,
		ProfileService:      profileService,
		ConversationService: conversationService,
		UserService:         userService,
		Logger:              log,
		Config:              cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
