package service

import (
	"unicode"

	"github.com/storefront-next/internal/config"
)

// PasswordPolicyError 密码策略校验失败，携带 i18n 键与参数
type PasswordPolicyError struct {
	key  string
	args []interface{}
}

func (e PasswordPolicyError) Error() string {
	return e.key
}

// Is 使 errors.Is(err, ErrWeakPassword) 成立
func (e PasswordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Key 返回 i18n 键
func (e PasswordPolicyError) Key() string {
	return e.key
}

// Args 返回 i18n 参数
func (e PasswordPolicyError) Args() []interface{} {
	return e.args
}

type passwordClass struct {
	required bool
	present  bool
	key      string
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return PasswordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	classes := []passwordClass{
		{required: policy.RequireUpper, present: hasUpper, key: "error.password_require_upper"},
		{required: policy.RequireLower, present: hasLower, key: "error.password_require_lower"},
		{required: policy.RequireNumber, present: hasNumber, key: "error.password_require_number"},
		{required: policy.RequireSpecial, present: hasSpecial, key: "error.password_require_special"},
	}
	for _, class := range classes {
		if class.required && !class.present {
			return PasswordPolicyError{key: class.key}
		}
	}
	return nil
}
