package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/quiz-channels-api/pkg/auth"
)

// Ключи контекста Gin, в которые кладутся данные администратора
const (
	ContextAdminID       = "adminID"
	ContextAdminUsername = "adminUsername"
)

// TokenParser проверяет токен администратора
type TokenParser interface {
	ParseToken(token string) (*auth.AdminClaims, error)
}

// AdminChecker сообщает, существует ли еще администратор из токена
type AdminChecker interface {
	AdminExists(ctx context.Context, id uint) (bool, error)
}

// AuthMiddleware обеспечивает аутентификацию администраторов
type AuthMiddleware struct {
	parser  TokenParser
	admins  AdminChecker
	enabled bool
}

// NewAuthMiddleware создает middleware. При enabled=false проверка токена отключена,
// parser в этом случае может быть nil. admins может быть nil, тогда токен
// удаленного администратора действует до истечения срока.
func NewAuthMiddleware(parser TokenParser, admins AdminChecker, enabled bool) *AuthMiddleware {
	return &AuthMiddleware{parser: parser, admins: admins, enabled: enabled && parser != nil}
}

// RequireAdmin пропускает только запросы с действительным токеном администратора.
// Токен берется из заголовка Authorization: Bearer {token}, для websocket
// допускается параметр запроса ?token=.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "Authorization header format must be Bearer {token}", "token_missing")
			return
		}

		claims, err := m.parser.ParseToken(token)
		if err != nil {
			errorType := "token_invalid"
			if errors.Is(err, auth.ErrTokenExpired) {
				errorType = "token_expired"
			}
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("[AuthMiddleware] Токен отклонен")
			abortUnauthorized(c, "Invalid or expired token", errorType)
			return
		}

		if m.admins != nil {
			exists, err := m.admins.AdminExists(c.Request.Context(), claims.UserID)
			if err != nil {
				log.Error().Err(err).Uint("admin_id", claims.UserID).Msg("[AuthMiddleware] Не удалось проверить администратора")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":  "Internal server error",
					"detail": "Internal server error",
				})
				return
			}
			if !exists {
				abortUnauthorized(c, "Admin account no longer exists", "token_revoked")
				return
			}
		}

		c.Set(ContextAdminID, claims.UserID)
		c.Set(ContextAdminUsername, claims.Username)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if token := c.Query("token"); token != "" {
		return token, true
	}
	return "", false
}

func abortUnauthorized(c *gin.Context, message, errorType string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      message,
		"detail":     message,
		"error_type": errorType,
	})
}
