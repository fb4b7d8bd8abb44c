package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storekit/storefront-api/internal/adapter/cache"
	"github.com/storekit/storefront-api/internal/adapter/http/middleware"
	"github.com/storekit/storefront-api/internal/entity"
	"github.com/storekit/storefront-api/internal/logging"
	"github.com/storekit/storefront-api/internal/security"
	"github.com/storekit/storefront-api/internal/usecase"
)

// SessionStore is the full session lifecycle used by login/logout.
type SessionStore interface {
	Create(ctx context.Context, sess cache.Session) (string, error)
	Get(ctx context.Context, id string) (cache.Session, bool, error)
	Delete(ctx context.Context, id string) error
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type AuthHandler struct {
	users    usecase.UserStore
	sessions SessionStore
	cfg      SessionConfig
}

func NewAuthHandler(users usecase.UserStore, sessions SessionStore, cfg SessionConfig) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, cfg: cfg}
}

type registerReq struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

func (h *AuthHandler) sessionFor(u *entity.User) cache.Session {
	return cache.Session{
		UserID:    u.ID.Hex(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		IsAdmin:   u.IsAdmin(),
	}
}

func (h *AuthHandler) startSession(c *gin.Context, u *entity.User) (cache.Session, bool) {
	sess := h.sessionFor(u)
	sid, err := h.sessions.Create(c.Request.Context(), sess)
	if err != nil {
		logging.From(c).Error("session create failed", "error", err)
		fail(c, http.StatusInternalServerError, "internal error")
		return cache.Session{}, false
	}
	c.SetCookie(h.cfg.CookieName, sid, int(h.cfg.TTL.Seconds()), "/", "", h.cfg.Secure, true)
	return sess, true
}

// Register creates a staff account. Role escalation happens out of band;
// the public endpoint never grants admin.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.users.GetByEmail(c.Request.Context(), req.Email); err == nil {
		fail(c, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		failErr(c, err)
		return
	}
	user := &entity.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         entity.RoleStaff,
		IsActive:     true,
	}
	if err := h.users.Insert(c.Request.Context(), user); err != nil {
		failErr(c, err)
		return
	}

	sess, ok := h.startSession(c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    sess,
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || !security.CheckPassword(user.PasswordHash, req.Password) {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !user.IsActive {
		fail(c, http.StatusUnauthorized, "Account is deactivated")
		return
	}

	if err := h.users.SetLastLogin(c.Request.Context(), user.ID); err != nil {
		logging.From(c).Warn("last login update failed", "error", err)
	}

	sess, ok := h.startSession(c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    sess,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if sid, err := c.Cookie(h.cfg.CookieName); err == nil && sid != "" {
		if err := h.sessions.Delete(c.Request.Context(), sid); err != nil {
			fail(c, http.StatusInternalServerError, "Logout failed")
			return
		}
	}
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.Secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sess})
}
