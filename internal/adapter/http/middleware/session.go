package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storekit/storefront-api/internal/adapter/cache"
	"github.com/storekit/storefront-api/internal/entity"
	"github.com/storekit/storefront-api/internal/logging"
	"github.com/storekit/storefront-api/internal/usecase"
)

const sessionCtxKey = "session"

// SessionReader is the slice of the session store the middleware needs.
type SessionReader interface {
	Get(ctx context.Context, id string) (cache.Session, bool, error)
}

// Auth guards API routes and pages with the cookie-referenced session.
type Auth struct {
	sessions SessionReader
	users    usecase.UserStore
	cookie   string
}

func NewAuth(sessions SessionReader, users usecase.UserStore, cookieName string) *Auth {
	return &Auth{sessions: sessions, users: users, cookie: cookieName}
}

// Load resolves the session cookie, if any, and stashes the session in
// the gin context. It never aborts; the Require* middlewares do.
func (a *Auth) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(a.cookie)
		if err != nil || sid == "" {
			c.Next()
			return
		}
		sess, ok, err := a.sessions.Get(c.Request.Context(), sid)
		if err != nil {
			logging.From(c).Error("session lookup failed", "error", err)
			c.Next()
			return
		}
		if ok {
			c.Set(sessionCtxKey, sess)
		}
		c.Next()
	}
}

// SessionFrom returns the session stored by Load.
func SessionFrom(c *gin.Context) (cache.Session, bool) {
	v, ok := c.Get(sessionCtxKey)
	if !ok {
		return cache.Session{}, false
	}
	sess, ok := v.(cache.Session)
	return sess, ok
}

// RequireSession yields 401 on API calls without a live session.
func (a *Auth) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}
		c.Next()
	}
}

// RequireAdmin re-reads the user document instead of trusting the
// login-time role snapshot, so a demoted account loses access without
// waiting for the session to expire.
func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}
		id, err := primitive.ObjectIDFromHex(sess.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}
		user, err := a.users.GetByID(c.Request.Context(), id)
		if err != nil || !user.IsActive || user.Role != entity.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Admin access required"})
			return
		}
		c.Next()
	}
}

// RequireAdminPage redirects browsers to the login page instead of
// returning a JSON error.
func (a *Auth) RequireAdminPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFrom(c)
		if !ok || !sess.IsAdmin {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
