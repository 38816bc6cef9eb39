package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSessionChecker struct {
	mock.Mock
}

func (m *mockSessionChecker) ValidateSession(ctx context.Context, userID, token string) bool {
	return m.Called(ctx, userID, token).Bool(0)
}

func (m *mockSessionChecker) Authenticate(ctx context.Context, userID, token string) (*domain.User, error) {
	args := m.Called(ctx, userID, token)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

type recordingTracker struct {
	events []string
	ids    []string
}

func (r *recordingTracker) Track(distinctID, event string, _ map[string]any) {
	r.ids = append(r.ids, distinctID)
	r.events = append(r.events, event)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSessionAuthMiddleware(t *testing.T) {
	checker := new(mockSessionChecker)
	user := &domain.User{UserID: "u1", IsActive: true}
	checker.On("Authenticate", mock.Anything, "u1", "abcdefghij").Return(user, nil)
	checker.On("Authenticate", mock.Anything, "u1", "wrong").Return(nil, apperrors.ErrReauthRequired)

	router := gin.New()
	router.Use(SessionAuthMiddleware(checker))
	router.GET("/me", func(c *gin.Context) {
		u, ok := GetUserFromContext(c)
		require.True(t, ok)
		id, ok := GetUserIDFromContext(c)
		require.True(t, ok)
		assert.Equal(t, u.UserID, id)
		c.Status(http.StatusNoContent)
	})

	t.Run("valid headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(HeaderUserID, "u1")
		req.Header.Set(HeaderSessionToken, "abcdefghij")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(HeaderUserID, "u1")
		req.Header.Set(HeaderSessionToken, "wrong")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Please re-login","code":"1"}`, rec.Body.String())
	})

	t.Run("missing credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	checker.AssertExpectations(t)
}

func TestSessionCredentialsFromPath(t *testing.T) {
	router := gin.New()
	router.GET("/order/:id/:token", func(c *gin.Context) {
		id, token := SessionCredentials(c)
		c.String(http.StatusOK, id+"|"+token)
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/order/u9/tok", nil))
	assert.Equal(t, "u9|tok", rec.Body.String())
}

func TestGetLoggerFromCtxFallsBack(t *testing.T) {
	assert.NotNil(t, GetLoggerFromCtx(context.Background()))
}

func TestRateLimit(t *testing.T) {
	lim, err := NewLimiter("2-M", "", "test")
	require.NoError(t, err)

	router := gin.New()
	router.Use(RateLimit(lim))
	router.POST("/signin", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/signin", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestGinMiddlewarizeSetsHeaders(t *testing.T) {
	lim, err := NewLimiter("1-M", "", "api-test")
	require.NoError(t, err)

	router := gin.New()
	router.Use(GinMiddlewarize(lim))
	router.GET("/api/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestNewLimiterRejectsBadRate(t *testing.T) {
	_, err := NewLimiter("lots", "", "test")
	assert.Error(t, err)
}

func TestPosthogMiddlewareStripsParams(t *testing.T) {
	tracker := &recordingTracker{}
	router := gin.New()
	router.Use(PosthogMiddleware(tracker))
	router.GET("/api/order/mine/:id/:token", func(c *gin.Context) {
		SetUserInContext(c, &domain.User{UserID: c.Param("id")})
		c.Status(http.StatusOK)
	})
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/order/mine/u1/secret", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, []string{"api_order_mine"}, tracker.events)
	assert.Equal(t, []string{"u1"}, tracker.ids)
}
