package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reviewhub/reviews-backend/internal/api/routes"
	"github.com/reviewhub/reviews-backend/internal/config"
	"github.com/reviewhub/reviews-backend/internal/models"
	"github.com/reviewhub/reviews-backend/internal/services"
	"github.com/reviewhub/reviews-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router *gin.Engine
	cfg    *config.Config
	users  *services.MemoryUserStore
}

func newTestEnv(t *testing.T, classifier http.HandlerFunc) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(classifier)
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		Environment:           "test",
		JWTSecret:             "test-secret",
		SentimentURL:          upstream.URL,
		SentimentTimeout:      time.Second,
		AllowAnonymousReviews: true,
		MaxPageSize:           100,
		RateLimitRPS:          1000,
		CORSAllowedOrigins:    []string{"*"},
	}

	users := services.NewMemoryUserStore()
	router := gin.New()
	routes.SetupRoutes(router, routes.Stores{
		Reviews: services.NewMemoryReviewStore(),
		Users:   users,
	}, cfg)

	return &testEnv{router: router, cfg: cfg, users: users}
}

func positiveClassifier(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"label":"positive","score":0.92}`))
}

func (e *testEnv) token(t *testing.T, name, email, role string) string {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "longenough", Role: role}
	require.NoError(t, e.users.CreateUser(context.Background(), user))
	token, _, err := utils.GenerateToken(user.ID, user.Name, user.Email, user.Role, e.cfg.JWTSecret)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

func TestCreateReviewStoresClassifierVerdict(t *testing.T) {
	env := newTestEnv(t, positiveClassifier)
	token := env.token(t, "Grace", "grace@example.com", models.RoleUser)

	w := env.do(http.MethodPost, "/api/reviews", token, `{"rating":5,"comment":"Great"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var review models.Review
	decode(t, w, &review)
	assert.Equal(t, "positive", review.SentimentLabel)
	assert.Equal(t, "Grace", review.Name)
	require.NotNil(t, review.SentimentScore)
	assert.Equal(t, 0.92, *review.SentimentScore)
}

func TestCreateReviewSucceedsWhenClassifierTimesOut(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
	})
	// Rewire with a timeout far below the classifier's response time.
	env.cfg.SentimentTimeout = 50 * time.Millisecond
	env.router = gin.New()
	routes.SetupRoutes(env.router, routes.Stores{
		Reviews: services.NewMemoryReviewStore(),
		Users:   env.users,
	}, env.cfg)

	token := env.token(t, "Grace", "grace@example.com", models.RoleUser)
	w := env.do(http.MethodPost, "/api/reviews", token, `{"rating":5,"comment":"Great"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var review models.Review
	decode(t, w, &review)
	assert.Equal(t, "unknown", review.SentimentLabel)
	assert.Nil(t, review.SentimentScore)
}

func TestCreateReviewValidation(t *testing.T) {
	env := newTestEnv(t, positiveClassifier)
	token := env.token(t, "Grace", "grace@example.com", models.RoleUser)

	w := env.do(http.MethodPost, "/api/reviews", token, `{"rating":9,"comment":"Great"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/reviews", token, `{"rating":3,"comment":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVisitorReactionIsUnauthenticated(t *testing.T) {
	env := newTestEnv(t, positiveClassifier)

	w := env.do(http.MethodPost, "/api/reviews/1/reactions", "", `{"type":"like"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNonAdminDeleteIsForbidden(t *testing.T) {
	env := newTestEnv(t, positiveClassifier)
	userToken := env.token(t, "Grace", "grace@example.com", models.RoleUser)

	w := env.do(http.MethodDelete, "/api/reviews/5", userToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminDeleteLifecycle(t *testing.T) {
	env := newTestEnv(t, positiveClassifier)
	userToken := env.token(t, "Grace", "grace@example.com", models.RoleUser)
	adminToken := env.token(t, "Root", "admin@example.com", models.RoleAdmin)

	w := env.do(http.MethodPost, "/api/reviews", userToken, `{"rating":2,"comment":"bad"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var review models.Review
	decode(t, w, &review)

	w = env.do(http.MethodDelete, fmt.Sprintf("/api/admin/reviews/%d", review.ID), adminToken, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(http.MethodDelete, fmt.Sprintf("/api/reviews/%d", review.ID), adminToken, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReactionToggleOverHTTP(t *testing.T) {
	env := newTestEnv(t, positiveClassifier)
	userToken := env.token(t, "Grace", "grace@example.com", models.RoleUser)

	w := env.do(http.MethodPost, "/api/reviews", userToken, `{"rating":4,"comment":"nice"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var review models.Review
	decode(t, w, &review)

	path := fmt.Sprintf("/api/reviews/%d/reactions", review.ID)

	var counts struct {
		Likes    int `json:"likes"`
		Dislikes int `json:"dislikes"`
	}

	w = env.do(http.MethodPost, path, userToken, `{"type":"like"}`)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &counts)
	assert.Equal(t, 1, counts.Likes)

	// Same reaction again toggles off.
	w = env.do(http.MethodPost, path, userToken, `{"type":"like"}`)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &counts)
	assert.Equal(t, 0, counts.Likes)

	// Invalid kind.
	w = env.do(http.MethodPost, path, userToken, `{"type":"love"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListIncludesWholeDatasetStats(t *testing.T) {
	env := newTestEnv(t, positiveClassifier)
	userToken := env.token(t, "Grace", "grace@example.com", models.RoleUser)

	for _, rating := range []int{5, 5, 3} {
		w := env.do(http.MethodPost, "/api/reviews", userToken, fmt.Sprintf(`{"rating":%d,"comment":"c"}`, rating))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.do(http.MethodGet, "/api/reviews?page=1&limit=2", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reviews []models.Review `json:"reviews"`
		Total   int64           `json:"total"`
		Stats   models.Stats    `json:"stats"`
	}
	decode(t, w, &resp)
	assert.Len(t, resp.Reviews, 2)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 3, resp.Stats.TotalReviews)
	assert.Equal(t, 2, resp.Stats.FiveStarCount)
	assert.Equal(t, 4.3, resp.Stats.AverageRating)
}

func TestListFilteredByAuthorForProfileView(t *testing.T) {
	env := newTestEnv(t, positiveClassifier)
	graceToken := env.token(t, "Grace", "grace@example.com", models.RoleUser)
	adaToken := env.token(t, "Ada", "ada@example.com", models.RoleUser)

	for _, p := range []struct {
		token, comment string
	}{
		{graceToken, "mine"},
		{adaToken, "hers"},
		{"", "anonymous"},
	} {
		w := env.do(http.MethodPost, "/api/reviews", p.token, fmt.Sprintf(`{"name":"Visitor","email":"v@example.com","rating":4,"comment":%q}`, p.comment))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.do(http.MethodGet, "/api/reviews?userId=1", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reviews []models.Review `json:"reviews"`
		Total   int64           `json:"total"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Reviews, 1)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, "Grace", resp.Reviews[0].Name)
	assert.Equal(t, "mine", resp.Reviews[0].Comment)

	w = env.do(http.MethodGet, "/api/reviews?userId=bogus", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminSearch(t *testing.T) {
	env := newTestEnv(t, positiveClassifier)
	userToken := env.token(t, "Grace", "grace@example.com", models.RoleUser)
	adminToken := env.token(t, "Root", "admin@example.com", models.RoleAdmin)

	for _, comment := range []string{"wonderful stay", "Wonderful food", "awful"} {
		w := env.do(http.MethodPost, "/api/reviews", userToken, fmt.Sprintf(`{"rating":4,"comment":%q}`, comment))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.do(http.MethodGet, "/api/admin/reviews?page=1&limit=10&search=wonderful", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reviews []models.Review `json:"reviews"`
		Total   int64           `json:"total"`
	}
	decode(t, w, &resp)
	assert.Equal(t, int64(2), resp.Total)

	// Regular users cannot reach the moderation view.
	w = env.do(http.MethodGet, "/api/admin/reviews", userToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.do(http.MethodGet, "/api/admin/reviews", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFlagEndpoint(t *testing.T) {
	env := newTestEnv(t, positiveClassifier)
	userToken := env.token(t, "Grace", "grace@example.com", models.RoleUser)
	adminToken := env.token(t, "Root", "admin@example.com", models.RoleAdmin)

	w := env.do(http.MethodPost, "/api/reviews", userToken, `{"rating":1,"comment":"spam"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var review models.Review
	decode(t, w, &review)

	path := fmt.Sprintf("/api/reviews/%d/flag", review.ID)

	w = env.do(http.MethodPost, path, userToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	var state struct {
		IsFlagged bool `json:"is_flagged"`
	}
	decode(t, w, &state)
	assert.True(t, state.IsFlagged)

	// Admins moderate via delete, not flag.
	w = env.do(http.MethodPost, path, adminToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAnonymousCreateFollowsPolicySwitch(t *testing.T) {
	env := newTestEnv(t, positiveClassifier)

	w := env.do(http.MethodPost, "/api/reviews", "", `{"name":"Visitor","email":"v@example.com","rating":4,"comment":"nice"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	// With anonymous submission disabled, the policy answers 401.
	strict := newTestEnv(t, positiveClassifier)
	strict.cfg.AllowAnonymousReviews = false
	router := gin.New()
	routes.SetupRoutes(router, routes.Stores{
		Reviews: services.NewMemoryReviewStore(),
		Users:   strict.users,
	}, strict.cfg)
	strict.router = router

	w = strict.do(http.MethodPost, "/api/reviews", "", `{"name":"Visitor","rating":4,"comment":"nice"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSentimentProxyEndpoint(t *testing.T) {
	env := newTestEnv(t, positiveClassifier)

	w := env.do(http.MethodPost, "/api/sentiment/analyze", "", `{"text":"Great"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result models.Sentiment
	decode(t, w, &result)
	assert.Equal(t, "positive", result.Label)
}
