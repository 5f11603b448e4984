package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/events"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "k8Jd0pQ2mZx7Lr5Vt1Nc9Bw4Hy6Fs3Ge"

type recordingEnqueuer struct {
	mu       sync.Mutex
	payloads []queue.OrderPlacedPayload
	err      error
}

func (r *recordingEnqueuer) EnqueueOrderPlaced(_ context.Context, payload queue.OrderPlacedPayload, _ ...asynq.Option) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, payload)
	return r.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type testEnv struct {
	db        *gorm.DB
	cfg       *config.Config
	auth      *UserAuthService
	cart      *CartService
	orders    *OrderService
	products  *ProductService
	enqueuer  *recordingEnqueuer
	publisher *recordingPublisher
}

func newTestConfig() *config.Config {
	return &config.Config{
		UserJWT: config.JWTConfig{SecretKey: testSecret, ExpireHours: 168},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 6},
		},
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.AutoMigrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	cfg := newTestConfig()

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	enqueuer := &recordingEnqueuer{}
	publisher := &recordingPublisher{}
	return &testEnv{
		db:        db,
		cfg:       cfg,
		auth:      NewUserAuthService(cfg, userRepo),
		cart:      NewCartService(cartRepo, productRepo, publisher),
		orders:    NewOrderService(db, orderRepo, cartRepo, userRepo, enqueuer, publisher),
		products:  NewProductService(productRepo, nil, 0),
		enqueuer:  enqueuer,
		publisher: publisher,
	}
}

func (e *testEnv) registerUser(t *testing.T, email string) *models.User {
	t.Helper()
	result, err := e.auth.Register(context.Background(), RegisterInput{
		Name:     "Test Buyer",
		Email:    email,
		Phone:    "555-0100",
		Address:  "1 Main St",
		Password: "secret123",
	})
	require.NoError(t, err)
	return result.User
}

func (e *testEnv) createProduct(t *testing.T, name, price string) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Category: "test", Price: models.MustMoney(price), Image: "/img/" + name + ".png", Stock: 5}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
