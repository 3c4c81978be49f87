package middleware

import (
	"log"
	"net/http"
	"strings"

	"lounge-orders/models"

	"github.com/gin-gonic/gin"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

var (
	publicPages    = []string{"/login", "/register", "/place-new-order"}
	dashboardPages = []string{"/dashboard", "/admin-dashboard"}
	// staff-only screens a USER cannot open
	adminPages = []string{"/dashboard/menu", "/dashboard/users-management", "/dashboard/washup"}
)

// hasPrefix matches whole path segments, so /dashboard/menu does not cover /dashboard/menu-prices
func hasPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if hasPrefix(path, p) {
			return true
		}
	}
	return false
}

// PageRedirect decides where a page request must go instead. An empty result
// means the page may be served. claims is nil for anonymous visitors.
func PageRedirect(path string, claims *Claims) string {
	if claims == nil {
		if matchesAny(path, dashboardPages) && !matchesAny(path, publicPages) {
			return LoginPath
		}
		return ""
	}
	if hasPrefix(path, LoginPath) {
		return DashboardPath
	}
	if claims.Role != models.RoleAdmin && matchesAny(path, adminPages) {
		return DashboardPath
	}
	return ""
}

// PageAccess gates page routes with redirects instead of JSON errors
func (s *Sessions) PageAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := s.Resolve(c)
		if err != nil {
			log.Printf("⚠️  load session for page %s: %v", c.Request.URL.Path, err)
			claims = nil
		}
		if to := PageRedirect(c.Request.URL.Path, claims); to != "" {
			c.Redirect(http.StatusFound, to)
			c.Abort()
			return
		}
		if claims != nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}
