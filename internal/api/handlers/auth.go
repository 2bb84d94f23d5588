package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jophkins/lastshoot/internal/models"
)

const tokenLifetime = 24 * time.Hour

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Login authenticates the single admin identity against the configured
// username and bcrypt hash and issues an HS256 session token.
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	// Both checks are constant-time, and both always run so a rejection
	// takes the same path regardless of which credential was wrong.
	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(authConfig.AdminUsername)) == 1
	passwordOK := checkPasswordHash(req.Password, authConfig.PasswordHash)
	if !usernameOK || !passwordOK {
		logger.Warn("invalid login credentials")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(tokenLifetime).Unix(),
		"iat": time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(authConfig.JWTSecret))
	if err != nil {
		logger.Error("failed to generate JWT token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.Info("login successful")
	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}
