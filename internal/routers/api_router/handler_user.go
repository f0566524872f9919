package api_router

import (
	"github.com/gin-gonic/gin"
	"github.com/haierkeys/note-graph-service/internal/app"
	"github.com/haierkeys/note-graph-service/internal/dto"
	pkgapp "github.com/haierkeys/note-graph-service/pkg/app"
	"github.com/haierkeys/note-graph-service/pkg/code"
)

// UserHandler user API router handler
// UserHandler 用户 API 路由处理器
type UserHandler struct {
	*Handler
}

// NewUserHandler creates UserHandler instance
// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(a *app.App) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(a),
	}
}

// Signup user registration
// @Summary User registration
// @Tags User
// @Accept json
// @Produce json
// @Param params body dto.UserSignupRequest true "Signup Parameters"
// @Success 201 {object} pkgapp.MessageRes
// @Failure 400 {object} errors.AppError "Invalid Parameters"
// @Failure 403 {object} errors.AppError "Registration Disabled"
// @Failure 409 {object} errors.AppError "Email Already Exists"
// @Router /api/signup [post]
func (h *UserHandler) Signup(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserSignupRequest{}

	if !h.bind(c, "UserHandler.Signup", params) {
		return
	}

	ctx := c.Request.Context()

	if _, err := h.App.UserService.Signup(ctx, params); err != nil {
		h.logError(ctx, "UserHandler.Signup", err)
		response.ToError(err)
		return
	}

	response.ToResponse(code.SuccessSignup)
}

// Login user login
// @Summary User login
// @Tags User
// @Accept json
// @Produce json
// @Param params body dto.UserLoginRequest true "Login Parameters"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} errors.AppError "Invalid Credentials"
// @Router /api/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserLoginRequest{}

	if !h.bind(c, "UserHandler.Login", params) {
		return
	}

	// 获取请求上下文和客户端 IP
	ctx := c.Request.Context()

	resp, err := h.App.UserService.Login(ctx, params, pkgapp.GetIP(c))
	if err != nil {
		h.logError(ctx, "UserHandler.Login", err)
		response.ToError(err)
		return
	}

	response.ToResponse(code.Success.WithData(resp))
}

// Refresh exchanges a refresh token for a new token pair
// @Summary Refresh tokens
// @Tags User
// @Accept json
// @Produce json
// @Param params body dto.TokenRefreshRequest true "Refresh Token"
// @Success 200 {object} dto.TokenPairResponse
// @Failure 401 {object} errors.AppError "Refresh Token Required"
// @Failure 403 {object} errors.AppError "Invalid Refresh Token"
// @Router /api/refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.TokenRefreshRequest{}

	if !h.bind(c, "UserHandler.Refresh", params) {
		return
	}

	ctx := c.Request.Context()

	pair, err := h.App.UserService.Refresh(ctx, params.Token, pkgapp.GetIP(c))
	if err != nil {
		h.logError(ctx, "UserHandler.Refresh", err)
		response.ToError(err)
		return
	}

	response.ToResponse(code.Success.WithData(pair))
}
