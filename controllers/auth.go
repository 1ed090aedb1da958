package controllers

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/meinhoongagan/homeconnect-pro/config"
	"github.com/meinhoongagan/homeconnect-pro/db"
	"github.com/meinhoongagan/homeconnect-pro/logger"
	"github.com/meinhoongagan/homeconnect-pro/middleware"
	"github.com/meinhoongagan/homeconnect-pro/models"
	"github.com/meinhoongagan/homeconnect-pro/redis"
	"github.com/meinhoongagan/homeconnect-pro/utils"
)

const (
	accessTokenTTL   = 24 * time.Hour
	refreshTokenTTL  = 7 * 24 * time.Hour
	tokenTypeRefresh = "refresh"
	minPasswordLen   = 6
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates an account and its public profile row.
func Signup(c *fiber.Ctx) error {
	input := new(credentials)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Email and password are required")
	}
	// Only a bare address is accepted, not the "Name <addr>" form.
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid email address")
	}
	if len(input.Password) < minPasswordLen {
		return utils.Fail(c, fiber.StatusBadRequest, "Password should be at least 6 characters")
	}

	tx := db.DB.WithContext(c.UserContext())

	var existing models.User
	res := tx.Where("email = ?", email).Limit(1).Find(&existing)
	if res.Error != nil {
		logger.Log.Error("checking existing user", zap.Error(res.Error))
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create user")
	}
	if res.RowsAffected > 0 {
		return utils.Fail(c, fiber.StatusConflict, "User already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("hashing password", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	user := models.User{
		Name:     models.NameFromEmail(email),
		Email:    email,
		Password: string(hashed),
	}
	if err := tx.Create(&user).Error; err != nil {
		// a concurrent signup for the same address won the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Fail(c, fiber.StatusConflict, "User already registered")
		}
		logger.Log.Error("creating user", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	go sendWelcomeEmail(user)

	return utils.Data(c, fiber.StatusCreated, user, "Signup successful! Check your email.")
}

func sendWelcomeEmail(user models.User) {
	subject, body := utils.WelcomeEmail(user.Name)
	err := utils.SendEmail(user.Email, subject, body)
	switch {
	case errors.Is(err, utils.ErrEmailNotConfigured):
		logger.Log.Debug("welcome email skipped, SMTP not configured", zap.String("user_id", user.ID))
	case err != nil:
		logger.Log.Warn("welcome email failed", zap.String("user_id", user.ID), zap.Error(err))
	}
}

// Login exchanges credentials for an access and a refresh token.
func Login(c *fiber.Ctx) error {
	input := new(credentials)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	var user models.User
	err := db.DB.WithContext(c.UserContext()).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid login credentials")
	}
	if err != nil {
		logger.Log.Error("loading user for login", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to sign in")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid login credentials")
	}

	refreshID := uuid.NewString()
	token, err := issueToken(user, middleware.TokenTypeAccess, refreshID, accessTokenTTL)
	if err != nil {
		logger.Log.Error("signing access token", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to generate token")
	}
	refresh, err := signToken(user, tokenTypeRefresh, refreshID, "", refreshTokenTTL)
	if err != nil {
		logger.Log.Error("signing refresh token", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to generate refresh token")
	}

	return c.JSON(fiber.Map{
		"token":        token,
		"refreshToken": refresh,
		"user":         user,
		"message":      "Login successful!",
	})
}

// GetCurrentUser returns the signed-in user's profile.
func GetCurrentUser(c *fiber.Ctx) error {
	var user models.User
	err := db.DB.WithContext(c.UserContext()).Where("id = ?", middleware.CurrentUserID(c)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Fail(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		logger.Log.Error("loading current user", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to load user")
	}
	return utils.Data(c, fiber.StatusOK, user, "")
}

// Logout denylists the presented access token and the refresh token issued
// with it, each until it would expire.
func Logout(c *fiber.Ctx) error {
	tokenID, _ := c.Locals(middleware.LocalTokenID).(string)
	expiresAt, _ := c.Locals(middleware.LocalTokenExpiry).(time.Time)
	refreshID, _ := c.Locals(middleware.LocalRefreshID).(string)

	if err := redis.RevokeToken(c.UserContext(), tokenID, expiresAt); err != nil {
		logger.Log.Error("revoking token", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to sign out")
	}
	if err := redis.RevokeToken(c.UserContext(), refreshID, time.Now().Add(refreshTokenTTL)); err != nil {
		logger.Log.Error("revoking refresh token", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to sign out")
	}
	return c.JSON(fiber.Map{"message": "Successfully logged out"})
}

// RefreshToken issues a new access token for a valid refresh token.
func RefreshToken(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	claims, err := parseToken(req.RefreshToken)
	if err != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	if typ, _ := claims["typ"].(string); typ != tokenTypeRefresh {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	refreshID, _ := claims["jti"].(string)
	if refreshID == "" {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	revoked, err := redis.IsTokenRevoked(c.UserContext(), refreshID)
	if err != nil {
		logger.Log.Error("checking refresh token revocation", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to verify session")
	}
	if revoked {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	userID, _ := claims["id"].(string)
	var user models.User
	if err := db.DB.WithContext(c.UserContext()).Where("id = ?", userID).First(&user).Error; err != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	token, err := issueToken(user, middleware.TokenTypeAccess, refreshID, accessTokenTTL)
	if err != nil {
		logger.Log.Error("signing access token", zap.Error(err))
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to generate token")
	}
	return c.JSON(fiber.Map{"token": token})
}

// issueToken signs a token with a fresh jti, linked to the refresh token refreshID.
func issueToken(user models.User, typ, refreshID string, ttl time.Duration) (string, error) {
	return signToken(user, typ, uuid.NewString(), refreshID, ttl)
}

func signToken(user models.User, typ, tokenID, refreshID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"typ":   typ,
		"jti":   tokenID,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	if refreshID != "" {
		claims[middleware.ClaimRefreshID] = refreshID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Get().JWTSecret))
}

func parseToken(raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.Get().JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
