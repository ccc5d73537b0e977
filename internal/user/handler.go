package user

import (
	"net/http"

	"terminal-terrace/course-platform/internal/dto"
	"terminal-terrace/course-platform/internal/middleware"
	"terminal-terrace/course-platform/packages/authsdk"
	"terminal-terrace/course-platform/packages/logger"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *UserService
	log     *logger.Logger
}

func NewUserHandler(service *UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{service: service, log: log}
}

// Register 注册
// @Summary 注册账号
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 201 {object} response.Response{data=UserResponse}
// @Router /users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.CreatedResponse(c, resp)
}

// Login 登录
// @Summary 登录并设置 access_token cookie
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} response.Response{data=LoginResponse}
// @Router /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authsdk.AccessTokenCookie, resp.AccessToken, int(resp.ExpiresIn), "/", "", false, true)
	dto.SuccessResponse(c, resp)
}

// Logout 清除 access_token cookie
// @Router /users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie(authsdk.AccessTokenCookie, "", -1, "/", "", false, true)
	dto.SuccessResponse(c, gin.H{"message": "已退出登录"})
}

// Me 当前用户
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	resp, err := h.service.Me(c.Request.Context(), actor.ID)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, resp)
}

// UpdateRole 修改角色
// @Security BearerAuth
// @Param user_id path int true "用户ID"
// @Router /users/{user_id}/role [patch]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	userID, ok := dto.ParseIDParam(c, "user_id")
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	actor, _ := middleware.GetActor(c)
	resp, err := h.service.UpdateRole(c.Request.Context(), actor, userID, req.Role)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, resp)
}
