package httpapi

import (
	"net/http"

	"agora/internal/adapters/httpapi/middleware"
	communityPort "agora/internal/ports/community"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommunityController struct {
	cc     CommunityUseCase
	logger *zap.Logger
}

func NewCommunityController(cc CommunityUseCase, logger *zap.Logger) *CommunityController {
	return &CommunityController{cc: cc, logger: logger}
}

// FollowCommunity follow=true دنبال کردن و follow=false لغو آن
func (ctl *CommunityController) FollowCommunity(c *gin.Context) {
	var req communityPort.FollowCommunity
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}
	req.Auth = middleware.Credential(c, req.Auth)

	res, err := ctl.cc.FollowCommunity(c.Request.Context(), req)
	if err != nil {
		renderError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
