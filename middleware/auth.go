package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"lounge-orders/models"
	"lounge-orders/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie carries the signed session token for browser clients
const SessionCookie = "session"

const (
	ctxUserID   = "userID"
	ctxUsername = "username"
	ctxRole     = "role"
	ctxClaims   = "claims"
)

type Claims struct {
	UserID   string          `json:"userId"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Sessions issues and checks session tokens
type Sessions struct {
	Secret []byte
	TTL    time.Duration
	// Lookup loads the account behind a token. When set, sessions of deleted
	// accounts are refused and the stored role wins over the one in the token.
	Lookup func(ctx context.Context, id string) (*models.User, error)
}

func NewSessions(secret []byte, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Sessions{Secret: secret, TTL: ttl}
}

// GenerateToken creates a signed JWT for a given user
func (s *Sessions) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// Parse validates a token string and returns its claims
func (s *Sessions) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// FromRequest reads the session from a Bearer header or the session cookie.
// It returns nil when there is no valid session.
func (s *Sessions) FromRequest(c *gin.Context) *Claims {
	tokenStr := ""
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		tokenStr = strings.TrimPrefix(h, "Bearer ")
	} else if cookie, err := c.Cookie(SessionCookie); err == nil {
		tokenStr = cookie
	}
	if tokenStr == "" {
		return nil
	}
	claims, err := s.Parse(tokenStr)
	if err != nil {
		return nil
	}
	return claims
}

// Resolve returns the live session for a request: the token claims checked
// against the stored account. It returns nil, nil for anonymous requests and
// for tokens whose account no longer exists.
func (s *Sessions) Resolve(c *gin.Context) (*Claims, error) {
	claims := s.FromRequest(c)
	if claims == nil || s.Lookup == nil {
		return claims, nil
	}
	user, err := s.Lookup(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	claims.Username = user.Username
	claims.Role = user.Role
	return claims, nil
}

// SetCookie stores token in an HTTP-only cookie
func (s *Sessions) SetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(s.TTL.Seconds()), "/", "", false, true)
}

func (s *Sessions) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// AuthRequired validates the session and injects claims into context
func (s *Sessions) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := s.Resolve(c)
		if err != nil {
			log.Printf("❌ load session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			c.Abort()
			return
		}
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *Claims) {
	c.Set(ctxClaims, claims)
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUsername, claims.Username)
	c.Set(ctxRole, string(claims.Role))
}

// RoleRequired enforces that caller has one of the allowed roles
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRole := GetRole(c)
		for _, r := range roles {
			if callerRole == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		c.Abort()
	}
}

// GetUserID extracts caller user ID from context
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetRole extracts caller role from context
func GetRole(c *gin.Context) models.UserRole {
	return models.UserRole(c.GetString(ctxRole))
}

// GetClaims returns the session set by AuthRequired, or nil
func GetClaims(c *gin.Context) *Claims {
	val, ok := c.Get(ctxClaims)
	if !ok {
		return nil
	}
	claims, _ := val.(*Claims)
	return claims
}
