package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agora/internal/adapters/memory"
	"agora/internal/core/community"
	communityapp "agora/internal/core/community/service"
	metadataapp "agora/internal/core/metadata/service"
	postapp "agora/internal/core/post/service"
	"agora/internal/core/realtime"
	userapp "agora/internal/core/user/service"
	"agora/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testServer struct {
	engine    *gin.Engine
	store     *memory.Store
	community community.Community
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	st := memory.NewStore()

	c := st.AddCommunity(community.Community{Name: "golang", Title: "Go", ActorID: "https://example.org/c/golang", Local: true})

	users := userapp.NewUserService(st.Users(), []byte("secret"), "example.org", "https://example.org", logger)
	guard := communityapp.NewGuard(st.Communities())
	follows := communityapp.NewFollowService(users, st.Communities(), guard, m, logger)
	posts := postapp.NewPostService(
		users,
		st.Site(),
		st.Posts(),
		guard,
		communityapp.NewLanguageResolver(st.Users(), st.Communities()),
		metadataapp.NewEnricher(nil, nil, time.Second, time.Minute, m, logger),
		nil,
		postapp.Settings{ProtocolAndHostname: "https://example.org", MaxTitleLength: 200},
		m,
		logger,
	)

	return &testServer{
		engine:    SetupRoutes(users, posts, follows, registry, logger),
		store:     st,
		community: c,
	}
}

func (s *testServer) do(t *testing.T, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v3/user/register", "", gin.H{"username": username, "password": "pw123456"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v3/user/login", "", gin.H{"username": username, "password": "pw123456"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		JWT string `json:"jwt"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.JWT)
	return res.JWT
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var res struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Error
}

func TestCreatePostEndpoint(t *testing.T) {
	s := newTestServer(t)
	jwt := s.login(t, "alice")

	w := s.do(t, http.MethodPost, "/api/v3/post", jwt, gin.H{
		"name":         "Hello over HTTP",
		"community_id": s.community.ID.String(),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res struct {
		PostView struct {
			Post struct {
				ID   string `json:"id"`
				ApID string `json:"ap_id"`
			} `json:"post"`
			MyVote *int16 `json:"my_vote"`
			Read   bool   `json:"read"`
		} `json:"post_view"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "https://example.org/post/"+res.PostView.Post.ID, res.PostView.Post.ApID)
	require.NotNil(t, res.PostView.MyVote)
	assert.Equal(t, int16(1), *res.PostView.MyVote)
	assert.True(t, res.PostView.Read)
}

func TestCreatePostCredentialInBody(t *testing.T) {
	s := newTestServer(t)
	jwt := s.login(t, "alice")

	w := s.do(t, http.MethodPost, "/api/v3/post", "", gin.H{
		"name":         "Body credential",
		"community_id": s.community.ID.String(),
		"auth":         jwt,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCreatePostErrors(t *testing.T) {
	s := newTestServer(t)
	jwt := s.login(t, "alice")

	w := s.do(t, http.MethodPost, "/api/v3/post", "", gin.H{"name": "No auth", "community_id": s.community.ID.String()})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", decodeError(t, w))

	w = s.do(t, http.MethodPost, "/api/v3/post", jwt, gin.H{"name": strings.Repeat("x", 201), "community_id": s.community.ID.String()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "post_title_too_long", decodeError(t, w))

	w = s.do(t, http.MethodPost, "/api/v3/post", jwt, gin.H{"name": "Nowhere", "community_id": "00000000-0000-0000-0000-000000000001"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "couldnt_find_community", decodeError(t, w))

	w = s.do(t, http.MethodPost, "/api/v3/post", jwt, gin.H{"name": "Bad id", "community_id": "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_input", decodeError(t, w))

	assert.Equal(t, 0, s.store.PostCount())
}

func TestFollowCommunityEndpoint(t *testing.T) {
	s := newTestServer(t)
	jwt := s.login(t, "alice")
	follow := func(on bool) *httptest.ResponseRecorder {
		return s.do(t, http.MethodPost, "/api/v3/community/follow", jwt, gin.H{
			"community_id": s.community.ID.String(),
			"follow":       on,
		})
	}
	subscribed := func(w *httptest.ResponseRecorder) string {
		var res struct {
			CommunityView struct {
				Subscribed string `json:"subscribed"`
			} `json:"community_view"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		return res.CommunityView.Subscribed
	}

	w := follow(true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Subscribed", subscribed(w))

	w = follow(true)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "community_follower_already_exists", decodeError(t, w))

	w = follow(false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "NotSubscribed", subscribed(w))

	w = follow(false)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "not_following_community", decodeError(t, w))
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "alice")

	w := s.do(t, http.MethodPost, "/api/v3/user/login", "", gin.H{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "incorrect_login", decodeError(t, w))

	w = s.do(t, http.MethodPost, "/api/v3/user/register", "", gin.H{"username": "alice", "password": "again"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "username_already_exists", decodeError(t, w))
}

func TestMetricsAndHealth(t *testing.T) {
	s := newTestServer(t)
	jwt := s.login(t, "alice")
	w := s.do(t, http.MethodPost, "/api/v3/post", jwt, gin.H{"name": "Counted", "community_id": s.community.ID.String()})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "agora_posts_created_total 1")

	w = s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouteFor(t *testing.T) {
	assert.Equal(t, "/api/v3/post", RouteFor(realtime.OpCreatePost))
	assert.Equal(t, "/api/v3/community/follow", RouteFor(realtime.OpFollowCommunity))
	assert.Empty(t, RouteFor("Unknown"))
}
