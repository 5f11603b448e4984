package service

import "errors"

// 校验类错误
var (
	ErrFieldsRequired        = errors.New("all fields are required")
	ErrLoginFieldsRequired   = errors.New("email and password are required")
	ErrPasswordFieldsMissing = errors.New("old and new password are required")
	ErrWeakPassword          = errors.New("password does not satisfy policy")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrPasswordMismatch      = errors.New("old password mismatch")
	ErrCartItemInvalid       = errors.New("product id and quantity are required")
	ErrQuantityInvalid       = errors.New("valid quantity is required")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrCartEmpty             = errors.New("cart is empty")
	ErrCaptchaRequired       = errors.New("captcha required")
	ErrCaptchaInvalid        = errors.New("captcha invalid")
	ErrCaptchaDisabled       = errors.New("captcha disabled")
)

// 冲突类错误
var (
	ErrEmailExists = errors.New("email already exists")
)

// 认证类错误
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenSecretMissing = errors.New("token secret not configured")
)

// 资源不存在
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
)
