package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/application"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/helpers"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	ctxUser      = "user"
	ctxClaims    = "claims"
)

var errNoToken = errors.New("missing access token")

// Authenticator resolves an access token to a live user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, *helpers.Claims, error)
}

// bearerToken reads "Authorization: Bearer <jwt>" and falls back to the access_token cookie.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, tok, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
	}
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil {
		return tok
	}
	return ""
}

func authenticate(c *gin.Context, a Authenticator) error {
	token := bearerToken(c)
	if token == "" {
		return errNoToken
	}
	u, claims, err := a.Authenticate(c.Request.Context(), token)
	if err != nil {
		return err
	}
	c.Set(ctxUser, u)
	c.Set(ctxClaims, claims)
	c.Set(CtxUserIDKey, u.ID)
	return nil
}

// Auth rejects requests without a valid token for an existing user. Lookup
// failures other than a bad token are reported as 500.
func Auth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := authenticate(c, a)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, errNoToken), errors.Is(err, application.ErrUnauthorized):
			response.Abort(c, http.StatusUnauthorized, T(c, "unauthorized"), nil)
		default:
			_ = c.Error(err)
			response.Abort(c, http.StatusInternalServerError, T(c, "internal_error"), nil)
		}
	}
}

// OptionalAuth resolves the user when a valid token is sent and never rejects.
func OptionalAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = authenticate(c, a)
		c.Next()
	}
}

// RequireRole must run after Auth.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			response.Abort(c, http.StatusUnauthorized, T(c, "unauthorized"), nil)
			return
		}
		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}
		response.Abort(c, http.StatusForbidden, T(c, "forbidden"), nil)
	}
}

func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

func CurrentClaims(c *gin.Context) *helpers.Claims {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil
	}
	cl, _ := v.(*helpers.Claims)
	return cl
}
