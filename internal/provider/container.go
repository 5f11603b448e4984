package provider

import (
	"time"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/events"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"

	"github.com/mojocn/base64Captcha"
	"gorm.io/gorm"
)

// Container 依赖注入容器，进程内唯一的共享资源都挂在这里
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	Cache       *cache.Store
	QueueClient *queue.Client
	Publisher   events.Publisher

	// Repositories
	UserRepo         repository.UserRepository
	ProductRepo      repository.ProductRepository
	CartRepo         repository.CartRepository
	OrderRepo        repository.OrderRepository
	UserLoginLogRepo repository.UserLoginLogRepository

	// Services
	UserAuthService     *service.UserAuthService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	ProductService      *service.ProductService
	CartService         *service.CartService
	OrderService        *service.OrderService
	UserLoginLogService *service.UserLoginLogService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config, db *gorm.DB) *Container {
	c := &Container{
		Config:      cfg,
		DB:          db,
		Cache:       cache.NewStore(&cfg.Redis),
		QueueClient: queue.NewClient(&cfg.Queue),
		Publisher:   events.NewPublisher(&cfg.Kafka),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	c.UserRepo = repository.NewUserRepository(c.DB)
	c.ProductRepo = repository.NewProductRepository(c.DB)
	c.CartRepo = repository.NewCartRepository(c.DB)
	c.OrderRepo = repository.NewOrderRepository(c.DB)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(c.DB)
}

func (c *Container) initServices() {
	cfg := c.Config
	c.UserAuthService = service.NewUserAuthService(cfg, c.UserRepo)
	c.EmailService = service.NewEmailService(&cfg.Email)
	c.CaptchaService = service.NewCaptchaService(cfg.Captcha, c.captchaStore())
	c.ProductService = service.NewProductService(c.ProductRepo, c.Cache, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.Publisher)
	c.OrderService = service.NewOrderService(c.DB, c.OrderRepo, c.CartRepo, c.UserRepo, c.orderEnqueuer(), c.Publisher)
	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)
}

// captchaStore Redis 启用时验证码跨实例共享，否则使用进程内存
func (c *Container) captchaStore() base64Captcha.Store {
	if !c.Cache.Enabled() {
		return nil
	}
	expire := time.Duration(c.Config.Captcha.Image.ExpireSeconds) * time.Second
	return cache.NewCaptchaStore(c.Cache, expire)
}

func (c *Container) orderEnqueuer() service.OrderPlacedEnqueuer {
	if !c.QueueClient.Enabled() {
		return nil
	}
	return c.QueueClient
}

// Close 释放外部连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.Publisher.Close(); err != nil {
		logger.Warnw("provider_close_publisher_failed", "error", err)
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if err := c.Cache.Close(); err != nil {
		logger.Warnw("provider_close_cache_failed", "error", err)
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warnw("provider_close_db_failed", "error", err)
			}
		}
	}
}
