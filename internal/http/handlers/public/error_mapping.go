package public

import (
	"errors"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/i18n"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	var policyErr service.PasswordPolicyError
	if errors.As(err, &policyErr) {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), policyErr.Key(), policyErr.Args()...)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var captchaErrorRules = []mappedHandlerError{
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, key: "error.captcha_required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
	{target: service.ErrCaptchaDisabled, code: response.CodeBadRequest, key: "error.captcha_unavailable"},
}

var userProfileErrorRules = []mappedHandlerError{
	{target: service.ErrFieldsRequired, code: response.CodeBadRequest, key: "error.fields_required"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, key: "error.password_min_length"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, key: "error.email_exists"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

var userLoginErrorRules = []mappedHandlerError{
	{target: service.ErrLoginFieldsRequired, code: response.CodeBadRequest, key: "error.login_fields_required"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.login_invalid"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, key: "error.user_disabled"},
}

var userPasswordErrorRules = []mappedHandlerError{
	{target: service.ErrPasswordFieldsMissing, code: response.CodeBadRequest, key: "error.password_fields_required"},
	{target: service.ErrPasswordMismatch, code: response.CodeBadRequest, key: "error.password_mismatch"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrCartItemInvalid, code: response.CodeBadRequest, key: "error.cart_item_invalid"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, key: "error.product_not_found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrPaymentMethodRequired, code: response.CodeBadRequest, key: "error.payment_method_required"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
}

var lookupErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
}

func respondRegisterError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(captchaErrorRules, userProfileErrorRules), response.CodeInternal, "error.server")
}

func respondProfileError(c *gin.Context, err error) {
	respondWithMappedError(c, err, userProfileErrorRules, response.CodeInternal, "error.server")
}

func respondLoginError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(captchaErrorRules, userLoginErrorRules), response.CodeInternal, "error.server")
}

func respondPasswordError(c *gin.Context, err error) {
	respondWithMappedError(c, err, userPasswordErrorRules, response.CodeInternal, "error.server")
}

func respondCaptchaError(c *gin.Context, err error) {
	respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "error.server")
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.server")
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.server")
}

func respondLookupError(c *gin.Context, err error) {
	respondWithMappedError(c, err, lookupErrorRules, response.CodeInternal, "error.server")
}

// loginFailReason 将登录错误归类为登录日志失败原因
func loginFailReason(err error) string {
	switch {
	case errors.Is(err, service.ErrLoginFieldsRequired):
		return constants.LoginLogFailReasonBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return constants.LoginLogFailReasonInvalidCredentials
	case errors.Is(err, service.ErrUserDisabled):
		return constants.LoginLogFailReasonUserDisabled
	case errors.Is(err, service.ErrCaptchaRequired):
		return constants.LoginLogFailReasonCaptchaRequired
	case errors.Is(err, service.ErrCaptchaInvalid):
		return constants.LoginLogFailReasonCaptchaInvalid
	default:
		return constants.LoginLogFailReasonInternalError
	}
}
