package handler

import (
	"github.com/gin-gonic/gin"

	appadmin "github.com/kiwi/lemonade/internal/application/admin"
	"github.com/kiwi/lemonade/internal/interface/http/dto"
	"github.com/kiwi/lemonade/internal/interface/http/middleware"
	apperrors "github.com/kiwi/lemonade/pkg/errors"
	"github.com/kiwi/lemonade/pkg/response"
)

// AdminHandler 后台登录/登出处理器
type AdminHandler struct {
	loginUseCase  *appadmin.LoginUseCase
	logoutUseCase *appadmin.LogoutUseCase
}

// NewAdminHandler 创建后台处理器
func NewAdminHandler(loginUseCase *appadmin.LoginUseCase, logoutUseCase *appadmin.LogoutUseCase) *AdminHandler {
	return &AdminHandler{
		loginUseCase:  loginUseCase,
		logoutUseCase: logoutUseCase,
	}
}

// Login 后台登录
// @Summary      后台登录
// @Description  校验后台口令，成功返回访问令牌
// @Tags         后台模块
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "后台口令"
// @Success      200 {object} response.Response{data=dto.LoginResponse} "登录成功"
// @Failure      40103 {object} response.Response "密码错误"
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appadmin.LoginRequest{
		Password: req.Password,
		Subject:  c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LoginResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
	})
}

// Logout 后台登出
// @Summary      后台登出
// @Description  当前令牌加入黑名单
// @Tags         后台模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "登出成功"
// @Failure      40100 {object} response.Response "请先登录"
// @Router       /admin/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	if err := h.logoutUseCase.Execute(c.Request.Context(), middleware.GetAccessToken(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
