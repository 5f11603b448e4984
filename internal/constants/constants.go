package constants

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 登录日志常量
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"

	LoginLogFailReasonBadRequest         = "bad_request"
	LoginLogFailReasonInvalidEmail       = "invalid_email"
	LoginLogFailReasonInvalidCredentials = "invalid_credentials"
	LoginLogFailReasonUserDisabled       = "user_disabled"
	LoginLogFailReasonCaptchaRequired    = "captcha_required"
	LoginLogFailReasonCaptchaInvalid     = "captcha_invalid"
	LoginLogFailReasonInternalError      = "internal_error"

	LoginLogSourceWeb = "web"
)

// 验证码常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"

	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)

// 异步队列常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"

	TaskOrderPlaced = "order:placed"
)

// 领域事件常量
const (
	EventOrderPlaced = "order.placed"
	EventCartCleared = "cart.cleared"
)

// 缓存 key
const (
	CacheKeyProductList = "catalog:products"
)

// Gin 上下文 key
const (
	ContextKeyRequestID = "request_id"
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)
