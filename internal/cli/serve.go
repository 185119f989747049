package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yourusername/quiz-channels-api/internal/config"
	"github.com/yourusername/quiz-channels-api/internal/domain/repository"
	"github.com/yourusername/quiz-channels-api/internal/handler"
	"github.com/yourusername/quiz-channels-api/internal/middleware"
	"github.com/yourusername/quiz-channels-api/internal/repository/gormdb"
	redisRepo "github.com/yourusername/quiz-channels-api/internal/repository/redis"
	"github.com/yourusername/quiz-channels-api/internal/service"
	"github.com/yourusername/quiz-channels-api/internal/websocket"
	"github.com/yourusername/quiz-channels-api/pkg/auth"
	"github.com/yourusername/quiz-channels-api/pkg/database"
)

func newServeCmd(configPath *string) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides config)")
	return cmd
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if portFlag != "" {
		cfg.Server.Port = portFlag
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("Ошибка закрытия БД")
		}
	}()
	log.Info().Str("driver", cfg.Database.Driver).Msg("База данных готова")

	// Redis опционален: кеш вопросов и лимит попыток входа
	var cache repository.CacheRepository
	var loginLimiter gin.HandlerFunc
	if cfg.Redis.Enabled {
		redisClient, err := database.NewUniversalRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		cacheRepo, err := redisRepo.NewCacheRepo(redisClient, "quiz")
		if err != nil {
			return err
		}
		cache = cacheRepo
		loginLimiter = middleware.NewRateLimiter(redisClient).Limit(middleware.LoginRateLimitConfig(cfg.RateLimit))
		log.Info().Str("mode", cfg.Redis.Mode).Msg("Redis подключен")
	}

	var tokens service.TokenIssuer
	var tokenParser middleware.TokenParser
	if cfg.JWT.Secret != "" {
		jwtService, err := auth.NewJWTService(cfg.JWT)
		if err != nil {
			return err
		}
		tokens = jwtService
		tokenParser = jwtService
	}
	if !cfg.Auth.RequireAdminToken {
		log.Warn().Msg("Проверка токена администратора отключена, /admin/* доступны без входа")
	}

	hub := websocket.NewHub()
	go hub.Run(ctx)

	uow := gormdb.NewUnitOfWork(db)
	authService := service.NewAuthService(uow, tokens, cfg.Auth)
	userService := service.NewUserService(uow)
	channelService := service.NewChannelService(uow, cfg.Quiz)
	quizService := service.NewQuizService(uow, hub)
	questionService := service.NewQuestionService(uow, cache, cfg.Quiz.QuestionCacheTTL)
	resultService := service.NewResultService(uow, hub)

	if err := authService.EnsureBootstrapAdmin(ctx); err != nil {
		return err
	}

	router := handler.NewRouter(handler.RouterConfig{
		Participants: handler.NewParticipantHandler(userService, channelService, quizService, questionService),
		Admin:        handler.NewAdminHandler(authService, questionService, resultService, channelService, userService),
		WS:           handler.NewWSHandler(hub, cfg.Server.AllowOrigins),
		Auth:         middleware.NewAuthMiddleware(tokenParser, userService, cfg.Auth.RequireAdminToken),
		LoginLimiter: loginLimiter,
		AllowOrigins: cfg.Server.AllowOrigins,
	})

	return serveHTTP(ctx, cfg.Server, router)
}

// serveHTTP запускает сервер и останавливает его при отмене ctx
func serveHTTP(ctx context.Context, cfg config.ServerConfig, router http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("Server exited properly")
	return nil
}
