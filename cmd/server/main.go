package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/storefront-next/internal/app"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
)

func main() {
	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	generated, err := config.EnsureUserJWTSecret(cfg)
	if err != nil {
		stdLog.Fatalf("令牌密钥校验失败: %v", err)
	}
	if generated {
		logger.Warnw("user_jwt_secret_generated",
			"reason", "user_jwt.secret not configured",
			"effect", "tokens are invalidated on restart",
		)
	} else if config.IsWeakSecret(cfg.UserJWT.SecretKey) {
		logger.Warnw("user_jwt_secret_weak", "hint", "use at least 32 random characters in production")
	}

	// 初始化数据库
	db, err := models.InitDB(models.DBOptions{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.DSN,
		LogLevel: cfg.Database.LogLevel,
		Pool: models.DBPoolConfig{
			MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		},
	})
	if err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(db); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 设置 Gin 模式
	if cfg.Server.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		DB:      db,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + "╔════════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiCyan + "║        TechParts Hub storefront API        ║" + ansiReset)
	fmt.Println(ansiCyan + "╚════════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "Modes: all | api | worker" + ansiReset)
	fmt.Println(ansiDim + "----------------------------------------------" + ansiReset)
}
