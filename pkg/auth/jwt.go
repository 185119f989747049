package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/quiz-channels-api/internal/config"
	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
)

// Ошибки проверки токена
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrNotAdmin       = errors.New("token does not belong to an admin")
)

// AdminClaims содержит поля токена администратора
type AdminClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// JWTService выпускает и проверяет токены администраторов (HS256)
type JWTService struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

// NewJWTService создает сервис JWT. Пустой секрет недопустим.
func NewJWTService(cfg config.JWTConfig) (*JWTService, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	expirationHrs := cfg.ExpirationHrs
	if expirationHrs <= 0 {
		expirationHrs = 12
	}
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "quiz-channels-api"
	}
	return &JWTService{
		secret:     []byte(cfg.Secret),
		issuer:     issuer,
		expiration: time.Duration(expirationHrs) * time.Hour,
		now:        time.Now,
	}, nil
}

// GenerateToken создает токен для администратора и возвращает время его истечения
func (s *JWTService) GenerateToken(user *entity.User) (string, time.Time, error) {
	if user == nil || !user.IsAdmin {
		return "", time.Time{}, ErrNotAdmin
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.expiration)
	claims := &AdminClaims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("[JWT] Ошибка подписи токена")
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken проверяет подпись, издателя и срок действия токена
func (s *JWTService) ParseToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			switch {
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				return nil, ErrTokenMalformed
			case ve.Errors&jwt.ValidationErrorExpired != 0:
				return nil, ErrTokenExpired
			}
		}
		log.Debug().Err(err).Msg("[JWT] Токен не прошел проверку")
		return nil, ErrTokenInvalid
	}

	if !token.Valid || !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrTokenInvalid
	}
	if !claims.IsAdmin {
		return nil, ErrNotAdmin
	}
	return claims, nil
}
