package httpapi

import (
	"net/http"

	"agora/internal/adapters/httpapi/middleware"
	postPort "agora/internal/ports/post"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostController struct {
	pc     PostUseCase
	logger *zap.Logger
}

func NewPostController(pc PostUseCase, logger *zap.Logger) *PostController {
	return &PostController{pc: pc, logger: logger}
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req postPort.CreatePost
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}
	req.Auth = middleware.Credential(c, req.Auth)

	res, err := ctl.pc.CreatePost(c.Request.Context(), req)
	if err != nil {
		renderError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
