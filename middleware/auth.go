package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/meinhoongagan/homeconnect-pro/config"
	"github.com/meinhoongagan/homeconnect-pro/logger"
	"github.com/meinhoongagan/homeconnect-pro/redis"
	"github.com/meinhoongagan/homeconnect-pro/utils"
)

// Locals keys set by Protected.
const (
	LocalUserID      = "userID"
	LocalTokenID     = "tokenID"
	LocalTokenExpiry = "tokenExpiry"
	LocalRefreshID   = "refreshID"
)

// ClaimRefreshID carries the jti of the refresh token issued alongside an access token.
const ClaimRefreshID = "rid"

// TokenTypeAccess marks tokens accepted by Protected; refresh tokens are rejected.
const TokenTypeAccess = "access"

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    []byte(config.Get().JWTSecret),
		SigningMethod: "HS256",
		ErrorHandler:  jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return utils.Fail(c, fiber.StatusUnauthorized, "Invalid token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return utils.Fail(c, fiber.StatusUnauthorized, "Invalid token claims")
			}

			session, err := sessionFromClaims(claims)
			if err != nil {
				logger.Log.Debug("rejected token", zap.Error(err))
				return utils.Fail(c, fiber.StatusUnauthorized, "Invalid token claims")
			}

			revoked, err := redis.IsTokenRevoked(c.UserContext(), session.tokenID)
			if err != nil {
				logger.Log.Error("checking token revocation", zap.Error(err))
				return utils.Fail(c, fiber.StatusInternalServerError, "Failed to verify session")
			}
			if revoked {
				return utils.Fail(c, fiber.StatusUnauthorized, "Session has been signed out")
			}

			c.Locals(LocalUserID, session.userID)
			c.Locals(LocalTokenID, session.tokenID)
			c.Locals(LocalTokenExpiry, session.expiresAt)
			c.Locals(LocalRefreshID, session.refreshID)
			return c.Next()
		},
	})
}

// CurrentUserID returns the authenticated user id, or "" outside Protected routes.
func CurrentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

type session struct {
	userID    string
	tokenID   string
	refreshID string
	expiresAt time.Time
}

func sessionFromClaims(claims jwt.MapClaims) (session, error) {
	if typ, _ := claims["typ"].(string); typ != TokenTypeAccess {
		return session{}, fmt.Errorf("unexpected token type %q", typ)
	}
	userID, _ := claims["id"].(string)
	if userID == "" {
		return session{}, errors.New("no user id in claims")
	}
	tokenID, _ := claims["jti"].(string)
	refreshID, _ := claims[ClaimRefreshID].(string)
	exp, ok := claims["exp"].(float64)
	if !ok {
		return session{}, errors.New("no expiry in claims")
	}
	return session{userID: userID, tokenID: tokenID, refreshID: refreshID, expiresAt: time.Unix(int64(exp), 0)}, nil
}

func jwtError(c *fiber.Ctx, err error) error {
	logger.Log.Debug("jwt error", zap.Error(err))
	return utils.Fail(c, fiber.StatusUnauthorized, "Invalid or expired token")
}
