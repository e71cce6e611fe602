package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hackathon_system/common/connectors/apiconn"
	"hackathon_system/common/db/models"
	"hackathon_system/lib/connector"
	"hackathon_system/lib/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	userKey  = "user"
	tokenKey = "token"
)

var errNoSession = errors.New("no such session")

func (h *Handler) loadSession(ctx context.Context, token string) (*models.User, error) {
	session := new(models.Session)
	err := h.db.WithContext(ctx).First(session, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNoSession
		}
		return nil, err
	}
	user := new(models.User)
	err = h.db.WithContext(ctx).First(user, "id = ?", session.UserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNoSession
		}
		return nil, err
	}
	return user, nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// authenticate resolves session of request. Returns false if response was already written
func (h *Handler) authenticate(c *gin.Context, required bool) bool {
	token := bearerToken(c)
	if token == "" {
		if required {
			connector.RespErr(c, http.StatusUnauthorized, "Authentication required")
			return false
		}
		return true
	}
	user, err := h.sessions.Get(c, token)
	if err != nil {
		if errors.Is(err, errNoSession) {
			connector.RespErr(c, http.StatusUnauthorized, "Session is invalid or expired")
		} else {
			connector.RespServerError(c, "Can not load session, error: %v", err)
		}
		return false
	}
	c.Set(userKey, user)
	c.Set(tokenKey, token)
	return true
}

func (h *Handler) requireAuth(c *gin.Context) {
	if h.authenticate(c, true) {
		c.Next()
	}
}

func (h *Handler) optionalAuth(c *gin.Context) {
	if h.authenticate(c, false) {
		c.Next()
	}
}

// currentUser returns nil for anonymous requests
func currentUser(c *gin.Context) *models.User {
	user, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	return user.(*models.User)
}

func (h *Handler) login(c *gin.Context) {
	var request apiconn.LoginRequest
	if err := c.BindJSON(&request); err != nil {
		connector.RespErr(c, http.StatusBadRequest, "%v", err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(request.Email))
	if email == "" || !strings.Contains(email, "@") {
		connector.RespErr(c, http.StatusBadRequest, "Valid email is required")
		return
	}
	session, user, err := CreateSession(c, h.db, email, true)
	if err != nil {
		respError(c, err, "Can not create session for %s", email)
		return
	}
	logger.Info("New session for user %s created", user.ID)
	connector.RespOK(c, &apiconn.Session{Token: session.Token, User: user})
}

func (h *Handler) logout(c *gin.Context) {
	token := c.GetString(tokenKey)
	err := h.db.WithContext(c).Delete(&models.Session{}, "token = ?", token).Error
	if err != nil {
		connector.RespServerError(c, "Can not delete session, error: %v", err)
		return
	}
	_ = h.sessions.Remove(token)
	connector.RespOK(c, nil)
}

// forgetUserSessions drops cached sessions of user, so updated profile is loaded on next request
func (h *Handler) forgetUserSessions(ctx context.Context, userID uuid.UUID) {
	var tokens []string
	err := h.db.WithContext(ctx).Model(&models.Session{}).Where("user_id = ?", userID).Pluck("token", &tokens).Error
	if err != nil {
		logger.Warn("Can not list sessions of user %s, error: %v", userID, err)
		return
	}
	for _, token := range tokens {
		_ = h.sessions.Remove(token)
	}
}

// CreateSession issues new token for user with given email.
// If createUser is set, missing user is created, otherwise gorm.ErrRecordNotFound is returned
func CreateSession(ctx context.Context, db *gorm.DB, email string, createUser bool) (*models.Session, *models.User, error) {
	user := new(models.User)
	err := db.WithContext(ctx).Where("lower(email) = ?", strings.ToLower(email)).First(user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) && createUser {
		user = &models.User{
			Email:    email,
			Username: strings.Split(email, "@")[0],
		}
		err = db.WithContext(ctx).Create(user).Error
	}
	if err != nil {
		return nil, nil, err
	}

	session := &models.Session{
		Token:  uuid.NewString(),
		UserID: user.ID,
	}
	if err = db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, nil, err
	}
	return session, user, nil
}
