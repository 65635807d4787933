package middleware

import (
	"net/http"
	"strings"

	"nightfly_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// IdentityCookieName carries the identity token for browser clients.
	IdentityCookieName = "nightfly_token"

	// MobileKey is the gin context key holding the verified mobile number.
	MobileKey = "mobile"

	// LoginPath is where unauthenticated requests are sent.
	LoginPath = "/"

	requestIDHeader = "X-Request-ID"
)

// PublicPaths are reachable without an identity token.
var PublicPaths = []string{LoginPath, "/api/otp", "/api/auth/verify"}

// TokenVerifier checks an identity token and returns the bound mobile number.
type TokenVerifier interface {
	Verify(token string) (*utils.Claims, error)
}

// IdentityGate lets public paths through and redirects every other request
// without a valid identity token to the login page. Tokens are read from the
// identity cookie first, then from an "Authorization: Bearer" header.
func IdentityGate(verifier TokenVerifier, publicPaths ...string) gin.HandlerFunc {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := public[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		token := tokenFromRequest(c)
		if token == "" {
			redirectToLogin(c, "missing token")
			return
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			redirectToLogin(c, err.Error())
			return
		}

		c.Set(MobileKey, claims.Mobile)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(IdentityCookieName); err == nil && cookie != "" {
		return cookie
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func redirectToLogin(c *gin.Context, reason string) {
	utils.LogDebug("Identity gate redirect", map[string]interface{}{
		"path":   c.Request.URL.Path,
		"reason": reason,
	})
	c.Redirect(http.StatusTemporaryRedirect, LoginPath)
	c.Abort()
}

// RequestID tags each request with an id, reusing a client-supplied X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(utils.RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// CurrentMobile returns the mobile number set by IdentityGate.
func CurrentMobile(c *gin.Context) string {
	return c.GetString(MobileKey)
}
