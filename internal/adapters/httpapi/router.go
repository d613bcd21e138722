package httpapi

import (
	"context"
	"net/http"

	"agora/internal/adapters/httpapi/middleware"
	"agora/internal/core/realtime"
	communityPort "agora/internal/ports/community"
	postPort "agora/internal/ports/post"
	userPort "agora/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// UserUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, username, displayName, password string) (*userPort.PersonDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, req postPort.CreatePost) (*postPort.PostResponse, error)
}

type CommunityUseCase interface {
	FollowCommunity(ctx context.Context, req communityPort.FollowCommunity) (*communityPort.CommunityResponse, error)
}

const apiPrefix = "/api/v3"

// opRoutes هر عملیات کاربر دقیقا یک مسیر دارد
var opRoutes = map[realtime.Op]string{
	realtime.OpCreatePost:      apiPrefix + "/post",
	realtime.OpFollowCommunity: apiPrefix + "/community/follow",
}

// RouteFor returns the path that serves op, or "" for an unknown op.
func RouteFor(op realtime.Op) string {
	return opRoutes[op]
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(
	userUC UserUseCase,
	postUC PostUseCase,
	communityUC CommunityUseCase,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.ZapLogger(logger), gin.Recovery())

	uc := NewUserController(userUC, logger)
	pc := NewPostController(postUC, logger)
	cc := NewCommunityController(communityUC, logger)

	// مسیرهای ثبت‌نام و ورود بدون اعتبارنامه
	r.POST(apiPrefix+"/user/register", uc.RegisterUser)
	r.POST(apiPrefix+"/user/login", uc.LoginUser)

	// اعتبارنامه از بدنه یا هدر Authorization خوانده می‌شود
	r.POST(RouteFor(realtime.OpCreatePost), middleware.BearerCredential(), pc.CreatePost)
	r.POST(RouteFor(realtime.OpFollowCommunity), middleware.BearerCredential(), cc.FollowCommunity)

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}
