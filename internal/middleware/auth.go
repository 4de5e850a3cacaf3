package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"posfinance/internal/actor"
	apperrors "posfinance/internal/errors"
)

const (
	actorKey    = "actor"
	tokenIssuer = "posfinance-api"
)

// JWTClaims represents the claims in the JWT
type JWTClaims struct {
	UserID      string   `json:"user_id"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a token carrying the actor's id and permissions.
func GenerateAccessToken(a actor.Actor, secret string, ttl time.Duration) (string, error) {
	if a.UserID == "" {
		return "", fmt.Errorf("actor has no user id")
	}
	now := time.Now()
	claims := &JWTClaims{
		UserID:      a.UserID,
		Permissions: a.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   a.UserID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken validates a token and returns the actor it carries.
func ParseAccessToken(tokenString, secret string) (actor.Actor, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil || !token.Valid {
		return actor.Actor{}, fmt.Errorf("invalid access token: %w", err)
	}
	if claims.UserID == "" {
		return actor.Actor{}, fmt.Errorf("token has no user id")
	}
	return actor.Actor{UserID: claims.UserID, Permissions: claims.Permissions}, nil
}

// AuthMiddleware verifies the bearer token and stores the actor in the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid authorization header format"))
			return
		}

		a, err := ParseAccessToken(parts[1], secret)
		if err != nil {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid or expired token"))
			return
		}

		SetActor(c, a)
		c.Next()
	}
}

// RequirePermission rejects requests whose actor lacks perm.
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, _ := ActorFrom(c)
		if err := a.Require(perm); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}

// SetActor stores the authenticated actor in the context.
func SetActor(c *gin.Context, a actor.Actor) {
	c.Set(actorKey, a)
}

// ActorFrom returns the actor stored by AuthMiddleware or PipelineAuthMiddleware.
func ActorFrom(c *gin.Context) (actor.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return actor.Actor{}, false
	}
	a, ok := v.(actor.Actor)
	return a, ok
}

func abortWithError(c *gin.Context, err error) {
	appErr := apperrors.ErrInternalServer
	if e, ok := err.(*apperrors.AppError); ok {
		appErr = e
	}
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
