package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"gareddit/internal/db"
	"gareddit/internal/middleware"
	"gareddit/internal/models"
	"gareddit/internal/services"
	"gareddit/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq uint64

type testApp struct {
	conn   *gorm.DB
	router *gin.Engine
	tokens *services.TokenService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", atomic.AddUint64(&testDBSeq, 1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	tokens := services.NewTokenService(utils.NewCache(100))
	mail := services.NewMailService()
	votes := services.NewVoteService(conn)
	reconcile := services.NewReconcileService(conn)

	r := gin.New()
	store := cookie.NewStore([]byte("test_secret"))
	r.Use(sessions.Sessions("qid", store))
	r.Use(middleware.LoadUser(conn))
	r.Use(middleware.Loaders(conn))

	authHandler := NewAuthHandler(conn, tokens, mail)
	postHandler := NewPostHandler(conn)
	voteHandler := NewVoteHandler(votes, reconcile)
	userHandler := NewUserHandler(conn)

	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.GET("/me", authHandler.Me)
		api.POST("/forgot-password", authHandler.ForgotPassword)
		api.POST("/change-password", authHandler.ChangePassword)

		api.GET("/posts", postHandler.List)
		api.GET("/posts/:id", postHandler.Detail)

		api.GET("/users", userHandler.List)
		api.GET("/users/:id", userHandler.Get)
		api.DELETE("/users/:id", userHandler.Delete)
	}
	authorized := r.Group("/api")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/posts", postHandler.Create)
		authorized.PUT("/posts/:id", postHandler.Update)
		authorized.DELETE("/posts/:id", postHandler.Delete)
		authorized.POST("/posts/:id/vote", voteHandler.Vote)
	}

	return &testApp{conn: conn, router: r, tokens: tokens}
}

// do issues a request with an optional JSON body and session cookies.
func (a *testApp) do(t *testing.T, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// register creates an account through the API and returns its session cookies.
func (a *testApp) register(t *testing.T, username string) (models.User, []*http.Cookie) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "hunter2",
	}, nil)
	resp := decode(t, w)
	if resp["errors"] != nil {
		t.Fatalf("register %s failed: %v", username, resp["errors"])
	}

	var user models.User
	if err := a.conn.Where("username = ?", username).First(&user).Error; err != nil {
		t.Fatalf("registered user not persisted: %v", err)
	}
	return user, w.Result().Cookies()
}

func fieldErrors(t *testing.T, resp map[string]interface{}) []map[string]interface{} {
	t.Helper()
	raw, ok := resp["errors"].([]interface{})
	if !ok {
		t.Fatalf("response has no errors array: %v", resp)
	}
	errs := make([]map[string]interface{}, len(raw))
	for i, e := range raw {
		errs[i] = e.(map[string]interface{})
	}
	return errs
}
