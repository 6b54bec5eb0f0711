package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"productadmin/internal/domain"
)

const msgWrongCredentials = "Wrong username or password!"

type AuthHandler struct {
	users   UserStore
	history LoginHistoryStore
	tokens  *TokenManager
	log     *logrus.Logger
}

func NewAuthHandler(users UserStore, history LoginHistoryStore, tokens *TokenManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		users:   users,
		history: history,
		tokens:  tokens,
		log:     logger,
	}
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter, authed gin.IRouter) {
	router.POST("/auth/login", h.Login)
	authed.GET("/auth/history", h.History)
}

// Login handles POST /auth/login. A rejection always answers 401 with the
// same message so the response does not reveal which half was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		h.log.Warnf("Handler: Failed to bind login request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	h.log.Infof("Handler: Processing login for user '%s'", creds.Username)

	user, err := h.users.GetUserByUsername(creds.Username)
	if err != nil {
		h.recordAttempt(creds.Username, false)
		h.log.Warnf("Handler: Login failed, user '%s' not found", creds.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"message": msgWrongCredentials})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		h.recordAttempt(creds.Username, false)
		h.log.Warnf("Handler: Login failed, wrong password for user '%s'", creds.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"message": msgWrongCredentials})
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Username)
	if err != nil {
		h.log.Errorf("Handler: Failed to generate token for user '%s': %v", creds.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	h.recordAttempt(creds.Username, true)
	h.log.Infof("Handler: Login successful for user '%s' (ID %d)", user.Username, user.ID)
	c.JSON(http.StatusOK, domain.AuthResult{
		Token:   token,
		Message: "Login successful",
		UserID:  user.ID,
	})
}

// History handles GET /auth/history (protected).
func (h *AuthHandler) History(c *gin.Context) {
	attempts, err := h.history.ListLogins()
	if err != nil {
		h.log.Errorf("Handler: Failed to list login history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, attempts)
}

func (h *AuthHandler) recordAttempt(username string, success bool) {
	attempt := LoginAttempt{
		ID:        uuid.NewString(),
		Username:  username,
		Success:   success,
		Timestamp: time.Now().UTC(),
	}
	if err := h.history.RecordLogin(attempt); err != nil {
		h.log.Errorf("Handler: Failed to record login attempt for '%s': %v", username, err)
	}
}
