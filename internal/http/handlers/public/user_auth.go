package public

import (
	"github.com/storefront-next/internal/constants"
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/i18n"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Name     string `json:"name" binding:"max=120"`
	Email    string `json:"email" binding:"max=255"`
	Phone    string `json:"phone" binding:"max=40"`
	Address  string `json:"address" binding:"max=1000"`
	Password string `json:"password" binding:"max=128"`
	handlershared.CaptchaPayloadRequest
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email    string `json:"email" binding:"max=255"`
	Password string `json:"password" binding:"max=128"`
	handlershared.CaptchaPayloadRequest
}

// UserUpdateRequest 更新资料请求
type UserUpdateRequest struct {
	Name    string `json:"name" binding:"max=120"`
	Email   string `json:"email" binding:"max=255"`
	Phone   string `json:"phone" binding:"max=40"`
	Address string `json:"address" binding:"max=1000"`
}

// UserChangePasswordRequest 修改密码请求
type UserChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"max=128"`
	NewPassword string `json:"new_password" binding:"max=128"`
}

// authResponse 注册/登录响应
type authResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Session service.Session `json:"session"`
	User    *models.User    `json:"user"`
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CaptchaService.Verify(constants.CaptchaSceneRegister, req.ToServicePayload()); err != nil {
		respondCaptchaError(c, err)
		return
	}

	result, err := h.UserAuthService.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		respondRegisterError(c, err)
		return
	}

	response.Created(c, authResponse{
		Message: i18n.T(i18n.ResolveLocale(c), "message.register_success"),
		Token:   result.Session.Token,
		Session: result.Session,
		User:    result.User,
	})
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := bindJSON(c, &req); err != nil {
		h.recordUserLogin(c, req.Email, 0, constants.LoginLogStatusFailed, constants.LoginLogFailReasonBadRequest)
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CaptchaService.Verify(constants.CaptchaSceneLogin, req.ToServicePayload()); err != nil {
		h.recordUserLogin(c, req.Email, 0, constants.LoginLogStatusFailed, loginFailReason(err))
		respondLoginError(c, err)
		return
	}

	result, err := h.UserAuthService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var userID uint
		if result != nil && result.User != nil {
			userID = result.User.ID
		}
		h.recordUserLogin(c, req.Email, userID, constants.LoginLogStatusFailed, loginFailReason(err))
		respondLoginError(c, err)
		return
	}

	h.recordUserLogin(c, result.User.Email, result.User.ID, constants.LoginLogStatusSuccess, "")
	response.Success(c, authResponse{
		Message: i18n.T(i18n.ResolveLocale(c), "message.login_success"),
		Token:   result.Session.Token,
		Session: result.Session,
		User:    result.User,
	})
}

func (h *Handler) recordUserLogin(c *gin.Context, email string, userID uint, status, failReason string) {
	if h == nil || h.UserLoginLogService == nil {
		return
	}
	err := h.UserLoginLogService.Record(c.Request.Context(), service.RecordUserLoginInput{
		UserID:     userID,
		Email:      email,
		Status:     status,
		FailReason: failReason,
		ClientIP:   c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
		Source:     constants.LoginLogSourceWeb,
		RequestID:  handlershared.GetRequestID(c),
	})
	if err != nil {
		handlershared.RequestLog(c).Warnw("user_login_log_record_failed", "user_id", userID, "error", err)
	}
}

// GetCurrentUser 获取当前用户信息
func (h *Handler) GetCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserAuthService.GetUserByID(c.Request.Context(), uid)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateCurrentUser 更新当前用户资料
func (h *Handler) UpdateCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UserUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(c.Request.Context(), uid, service.UpdateProfileInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		respondProfileError(c, err)
		return
	}

	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.user_updated"), gin.H{"user": user})
}

// ChangePassword 修改当前用户密码
func (h *Handler) ChangePassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UserChangePasswordRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.UserAuthService.ChangePassword(c.Request.Context(), uid, req.OldPassword, req.NewPassword); err != nil {
		respondPasswordError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.password_changed"), nil)
}
