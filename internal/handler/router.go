package handler

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/quiz-channels-api/internal/logger"
	"github.com/yourusername/quiz-channels-api/internal/middleware"
)

// RouterConfig содержит обработчики и middleware для построения роутера
type RouterConfig struct {
	Participants *ParticipantHandler
	Admin        *AdminHandler
	WS           *WSHandler
	Auth         *middleware.AuthMiddleware

	// LoginLimiter ограничивает /admin/login, может быть nil
	LoginLimiter gin.HandlerFunc

	AllowOrigins   []string
	TrustedProxies []string
}

// NewRouter настраивает маршруты API
func NewRouter(cfg RouterConfig) *gin.Engine {
	RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery(), logger.GinLogger())

	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn().Err(err).Msg("Не удалось установить доверенные прокси")
	}

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = cfg.AllowOrigins
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", Health)

	p := cfg.Participants
	router.POST("/users/", p.CreateUser)
	router.POST("/channels/", p.CreateChannel)
	router.POST("/join-channel/", p.JoinChannel)
	router.GET("/questions/", p.ListQuestions)
	router.GET("/questions/random/:count", p.RandomQuestions)
	router.POST("/submit-answer/", p.SubmitAnswer)
	router.POST("/submit-quiz/", p.SubmitQuiz)

	a := cfg.Admin
	login := []gin.HandlerFunc{a.Login}
	if cfg.LoginLimiter != nil {
		login = append([]gin.HandlerFunc{cfg.LoginLimiter}, login...)
	}
	router.POST("/admin/login", login...)

	admin := router.Group("/admin")
	admin.Use(cfg.Auth.RequireAdmin())
	{
		questions := admin.Group("/questions")
		{
			questions.GET("", a.ListQuestions)
			questions.POST("", a.CreateQuestion)
			questions.PUT("/:id", middleware.ExtractUintParam("id", "questionID"), a.UpdateQuestion)
			questions.DELETE("/:id", middleware.ExtractUintParam("id", "questionID"), a.DeleteQuestion)
		}

		results := admin.Group("/results")
		{
			results.GET("", a.ListResults)
			results.GET("/export", a.ExportResults)
			results.GET("/:username", a.UserResults)
			results.DELETE("", a.ClearResults)
		}

		channels := admin.Group("/channels")
		{
			channels.GET("", a.ListChannels)
			channels.DELETE("/:id", middleware.ExtractUintParam("id", "channelID"), a.DeleteChannel)
		}

		users := admin.Group("/users")
		{
			users.GET("", a.ListAdmins)
			users.POST("", a.CreateAdmin)
			users.PUT("/:username/password", a.UpdatePassword)
			users.DELETE("/:id", middleware.ExtractUintParam("id", "userID"), a.DeleteAdmin)
		}

		if cfg.WS != nil {
			admin.GET("/ws", cfg.WS.HandleConnection)
		}
	}

	return router
}
