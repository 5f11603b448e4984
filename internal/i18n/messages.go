package i18n

var catalog = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":              "Invalid request",
		"error.fields_required":          "All fields are required",
		"error.login_fields_required":    "Email and password are required",
		"error.password_min_length":      "Password must be at least %d characters",
		"error.password_require_upper":   "Password must contain an uppercase letter",
		"error.password_require_lower":   "Password must contain a lowercase letter",
		"error.password_require_number":  "Password must contain a number",
		"error.password_require_special": "Password must contain a special character",
		"error.password_mismatch":        "Current password is incorrect",
		"error.password_fields_required": "Old and new password are required",
		"error.email_invalid":            "Invalid email address",
		"error.email_exists":             "Email already exists",
		"error.login_invalid":            "Invalid email or password",
		"error.login_too_many":           "Too many login attempts, try again in %d seconds",
		"error.rate_limited":             "Too many requests, try again in %d seconds",
		"error.rate_limit_unavailable":   "Rate limiter unavailable",
		"error.user_disabled":            "Account is disabled",
		"error.user_not_found":           "User not found",
		"error.token_required":           "Access token required",
		"error.token_invalid":            "Invalid or expired token",
		"error.jwt_secret_missing":       "Token verification is not configured",
		"error.unauthorized":             "Unauthorized",
		"error.cart_item_invalid":        "Product ID and quantity are required",
		"error.quantity_invalid":         "Valid quantity is required",
		"error.cart_item_id_invalid":     "Invalid cart item id",
		"error.product_not_found":        "Product not found",
		"error.product_id_invalid":       "Invalid product id",
		"error.payment_method_required":  "Payment method is required",
		"error.cart_empty":               "Cart is empty",
		"error.order_not_found":          "Order not found",
		"error.order_id_invalid":         "Invalid order id",
		"error.captcha_required":         "Captcha is required",
		"error.captcha_invalid":          "Captcha is incorrect",
		"error.captcha_unavailable":      "Captcha is not enabled",
		"error.captcha_generate_failed":  "Failed to generate captcha",
		"error.server":                   "Server error",
		"error.not_found":                "Not found",

		"message.register_success":  "Account created successfully",
		"message.login_success":     "Login successful",
		"message.user_updated":      "User updated successfully",
		"message.password_changed":  "Password changed successfully",
		"message.cart_item_added":   "Item added to cart",
		"message.cart_updated":      "Cart updated",
		"message.cart_item_removed": "Item removed from cart",
		"message.cart_cleared":      "Cart cleared",
		"message.order_created":     "Order created successfully",

		"email.order_placed_subject": "Order #%d confirmed",
		"email.order_placed_body":    "Hi %s,\n\nThanks for your order #%d.\nPayment method: %s\nTotal: $%s\n\n%s",
	},
	LocaleZH: {
		"error.bad_request":              "请求参数错误",
		"error.fields_required":          "所有字段均为必填",
		"error.login_fields_required":    "邮箱和密码不能为空",
		"error.password_min_length":      "密码长度至少为 %d 位",
		"error.password_require_upper":   "密码必须包含大写字母",
		"error.password_require_lower":   "密码必须包含小写字母",
		"error.password_require_number":  "密码必须包含数字",
		"error.password_require_special": "密码必须包含特殊字符",
		"error.password_mismatch":        "当前密码不正确",
		"error.password_fields_required": "旧密码和新密码不能为空",
		"error.email_invalid":            "邮箱格式不正确",
		"error.email_exists":             "邮箱已被注册",
		"error.login_invalid":            "邮箱或密码错误",
		"error.login_too_many":           "登录尝试过于频繁，请 %d 秒后再试",
		"error.rate_limited":             "请求过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable":   "限流服务不可用",
		"error.user_disabled":            "账号已被禁用",
		"error.user_not_found":           "用户不存在",
		"error.token_required":           "缺少访问令牌",
		"error.token_invalid":            "令牌无效或已过期",
		"error.jwt_secret_missing":       "令牌校验未配置",
		"error.unauthorized":             "未授权",
		"error.cart_item_invalid":        "商品ID和数量不能为空",
		"error.quantity_invalid":         "请输入有效的数量",
		"error.cart_item_id_invalid":     "购物车项ID无效",
		"error.product_not_found":        "商品不存在",
		"error.product_id_invalid":       "商品ID无效",
		"error.payment_method_required":  "请选择支付方式",
		"error.cart_empty":               "购物车为空",
		"error.order_not_found":          "订单不存在",
		"error.order_id_invalid":         "订单ID无效",
		"error.captcha_required":         "请输入验证码",
		"error.captcha_invalid":          "验证码错误",
		"error.captcha_unavailable":      "验证码未启用",
		"error.captcha_generate_failed":  "验证码生成失败",
		"error.server":                   "服务器错误",
		"error.not_found":                "资源不存在",

		"message.register_success":  "注册成功",
		"message.login_success":     "登录成功",
		"message.user_updated":      "资料已更新",
		"message.password_changed":  "密码已修改",
		"message.cart_item_added":   "已加入购物车",
		"message.cart_updated":      "购物车已更新",
		"message.cart_item_removed": "已从购物车移除",
		"message.cart_cleared":      "购物车已清空",
		"message.order_created":     "下单成功",

		"email.order_placed_subject": "订单 #%d 已确认",
		"email.order_placed_body":    "%s 您好：\n\n感谢您的订单 #%d。\n支付方式：%s\n合计：$%s\n\n%s",
	},
}
