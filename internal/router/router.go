package router

import (
	"time"

	"github.com/storefront-next/internal/config"
	publichandlers "github.com/storefront-next/internal/http/handlers/public"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/i18n"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := gin.New()
	h := publichandlers.New(c)

	loginLimit := cfg.Security.LoginRateLimit
	loginLimiter := NewRedisFixedWindow(
		c.Cache.Client(),
		c.Cache.Key("rate:login"),
		time.Duration(loginLimit.WindowSeconds)*time.Second,
		loginLimit.MaxAttempts,
	)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, i18n.T(i18n.ResolveLocale(ctx), "error.not_found"))
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/register", h.UserRegister)
		api.POST("/login", RateLimitMiddleware(loginLimiter, KeyByIPAndJSONField("email"), "error.login_too_many"), h.UserLogin)
		api.GET("/products", h.GetProducts)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/captcha/image", h.GetImageCaptcha)

		authed := api.Group("")
		authed.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey))
		{
			authed.GET("/user", h.GetCurrentUser)
			authed.PUT("/user", h.UpdateCurrentUser)
			authed.PUT("/user/password", h.ChangePassword)
			authed.GET("/user/login-logs", h.GetMyLoginLogs)

			authed.GET("/cart", h.GetCart)
			authed.POST("/cart", h.AddCartItem)
			authed.PUT("/cart/:id", h.UpdateCartItem)
			authed.DELETE("/cart/:id", h.DeleteCartItem)
			authed.DELETE("/cart", h.ClearCart)

			authed.POST("/orders", h.CreateOrder)
			authed.GET("/orders", h.ListOrders)
			authed.GET("/orders/:id", h.GetOrder)
		}
	}

	return r
}
