package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/acai-pdv/models"
	"github.com/yeremiapane/acai-pdv/services"
	"github.com/yeremiapane/acai-pdv/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWT(t *testing.T) *utils.JWTManager {
	t.Helper()
	m, err := utils.NewJWTManager("test-secret", time.Hour)
	require.NoError(t, err)
	return m
}

func perform(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwt := newJWT(t)
	r := gin.New()
	r.GET("/me", AuthMiddleware(jwt), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id")+":"+c.GetString("role"))
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, perform(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, perform(r, req).Code)

	token, err := jwt.GenerateToken("1", "admin")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := perform(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1:admin", w.Body.String())
}

func TestAuthMiddlewareRejectsForeignSecret(t *testing.T) {
	other, err := utils.NewJWTManager("other-secret", time.Hour)
	require.NoError(t, err)
	token, err := other.GenerateToken("1", "admin")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(newJWT(t)), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, perform(r, req).Code)
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set("role", c.Query("role"))
	}, RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, httptest.NewRequest(http.MethodGet, "/admin?role=admin", nil)).Code)
	assert.Equal(t, http.StatusForbidden, perform(r, httptest.NewRequest(http.MethodGet, "/admin?role=funcionario", nil)).Code)
}

func TestSessionMiddleware(t *testing.T) {
	ledger := services.NewLedger()
	r := gin.New()
	r.GET("/cart", func(c *gin.Context) {
		c.Set("user_id", c.Query("uid"))
	}, SessionMiddleware(ledger), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusUnauthorized, perform(r, httptest.NewRequest(http.MethodGet, "/cart?uid=2", nil)).Code)

	ledger.Login(services.DefaultAccounts()[1])
	assert.Equal(t, http.StatusOK, perform(r, httptest.NewRequest(http.MethodGet, "/cart?uid=2", nil)).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, httptest.NewRequest(http.MethodGet, "/cart?uid=1", nil)).Code)

	ledger.Logout()
	assert.Equal(t, http.StatusUnauthorized, perform(r, httptest.NewRequest(http.MethodGet, "/cart?uid=2", nil)).Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	clock := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	r := gin.New()
	r.Use(rl.RateLimit())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, perform(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, perform(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)

	clock = clock.Add(time.Second)
	assert.Equal(t, http.StatusOK, perform(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddlewares("http://localhost:5173"))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, httptest.NewRequest(http.MethodOptions, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := perform(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "max-age=31536000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))
}
