package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"lounge-orders/config"
	"lounge-orders/handlers"
	"lounge-orders/middleware"
	"lounge-orders/models"
	"lounge-orders/routes"
	"lounge-orders/services"
	"lounge-orders/washup"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	h      *handlers.Handler
	engine *gin.Engine
	admin  models.User
	user   models.User
}

// newTestEnv builds a handler over a fresh in-memory database with one ADMIN
// ("boss"/"secret1") and one USER ("clerk"/"secret2").
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := config.OpenDB(config.DBConfig{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	menu := services.NewMenuService(db, nil, nil)
	users := services.NewUserService(db, services.PlainPasswords{}, "developer")
	sessions := middleware.NewSessions([]byte("test"), time.Hour)
	sessions.Lookup = users.Get
	h := &handlers.Handler{
		Menu:     menu,
		Orders:   services.NewOrderService(db, nil),
		Users:    users,
		Washup:   washup.NewSequencer(washup.NewGormStore(db, "developer"), users, washup.OnStepCompleted(handlers.OnWashupStep(menu, nil))),
		Sessions: sessions,
		BaseURL:  "http://lounge.test",
	}

	engine := gin.New()
	routes.SetupRoutes(engine, h)

	env := &testEnv{t: t, db: db, h: h, engine: engine}
	env.admin = env.createUser("boss", "secret1", models.RoleAdmin)
	env.user = env.createUser("clerk", "secret2", models.RoleUser)
	return env
}

func (e *testEnv) createUser(username, password string, role models.UserRole) models.User {
	e.t.Helper()
	u, err := e.h.Users.Create(context.Background(), services.CreateUserInput{Username: username, Password: password, Role: role})
	require.NoError(e.t, err)
	return *u
}

func (e *testEnv) token(u models.User) string {
	e.t.Helper()
	tok, err := e.h.Sessions.GenerateToken(&u)
	require.NoError(e.t, err)
	return tok
}

// do sends body as JSON; as may be nil for anonymous requests
func (e *testEnv) do(method, path string, body any, as *models.User) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+e.token(*as))
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedMenuItem(name string, price float64, available bool) models.MenuItem {
	e.t.Helper()
	item := models.MenuItem{Name: name, Price: price, Available: available}
	require.NoError(e.t, e.db.Create(&item).Error)
	return item
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
