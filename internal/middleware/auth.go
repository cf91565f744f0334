// Package middleware provides request-scoped Fiber middleware: identity
// resolution, structured logging, tracing and metrics.
package middleware

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"socialfeed/internal/config"
	"socialfeed/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Token claims expected on every bearer token.
const (
	TokenIssuer   = "socialfeed-api"
	TokenAudience = "socialfeed-client"
)

const actorLocalKey = "actor"

var cfg *config.Config

var (
	errMissingSubject = errors.New("token has no subject")
	errInvalidSubject = errors.New("token subject is not a user id")
)

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// SignToken issues an HS256 token for userID valid for ttl.
func SignToken(secret string, userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    TokenIssuer,
		Audience:  jwt.ClaimStrings{TokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates tokenString and returns the user id from its subject.
func ParseToken(secret, tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, err
	}

	if claims.Subject == "" {
		return 0, errMissingSubject
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || userID == 0 {
		return 0, errInvalidSubject
	}
	return uint(userID), nil
}

func bearerToken(c *fiber.Ctx) string {
	parts := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// ResolveActor attaches the request's Actor to the Fiber context. A missing
// or invalid token yields the anonymous actor; the request always proceeds
// and services decide whether identity is required.
func ResolveActor(c *fiber.Ctx) error {
	actor := models.Anonymous()

	if token := bearerToken(c); token != "" && cfg != nil {
		userID, err := ParseToken(cfg.JWTSecret, token)
		if err != nil {
			Logger.DebugContext(c.UserContext(), "ignoring invalid bearer token", "error", err.Error())
		} else {
			actor = models.ActorFor(userID)
			c.Locals("userID", userID)
		}
	}

	c.Locals(actorLocalKey, actor)
	return c.Next()
}

// ActorFrom returns the Actor stored by ResolveActor, or the anonymous actor.
func ActorFrom(c *fiber.Ctx) models.Actor {
	if actor, ok := c.Locals(actorLocalKey).(models.Actor); ok {
		return actor
	}
	return models.Anonymous()
}
