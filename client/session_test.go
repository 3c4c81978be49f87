package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expiringServer hands out a new token per login and can revoke all of them
type expiringServer struct {
	mu     sync.Mutex
	logins int
	valid  string
}

func (e *expiringServer) expire() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.valid = ""
}

func (e *expiringServer) loginCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.logins
}

func (e *expiringServer) start(t *testing.T) *httptest.Server {
	t.Helper()
	r := gin.New()
	r.POST("/auth/login", func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil || body["password"] != "pw" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		e.mu.Lock()
		e.logins++
		e.valid = "tok-" + strconv.Itoa(e.logins)
		tok := e.valid
		e.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"token": tok, "user": gin.H{"id": "u1", "username": body["username"]}})
	})
	r.GET("/orders", func(c *gin.Context) {
		e.mu.Lock()
		ok := e.valid != "" && c.GetHeader("Authorization") == "Bearer "+e.valid
		e.mu.Unlock()
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, []gin.H{{"id": "o1", "subtotal": 3}})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestSessionLogsInAgainAfterExpiry(t *testing.T) {
	fake := &expiringServer{}
	srv := fake.start(t)
	ctx := context.Background()

	s := NewSession(New(srv.URL), "boss", "pw")
	_, err := s.Login(ctx)
	require.NoError(t, err)

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "tok-1", s.Client.Token)

	fake.expire()

	orders, err = s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "tok-2", s.Client.Token)
	assert.Equal(t, 2, fake.loginCount())
}

func TestSessionGivesUpWhenLoginFails(t *testing.T) {
	fake := &expiringServer{}
	srv := fake.start(t)
	ctx := context.Background()

	s := NewSession(New(srv.URL), "boss", "pw")
	_, err := s.Login(ctx)
	require.NoError(t, err)

	fake.expire()
	s.Password = "changed"

	_, err = s.ListOrders(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, fake.loginCount())
}
