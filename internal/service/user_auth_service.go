package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenTypeBearer 令牌类型
const TokenTypeBearer = "Bearer"

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository) *UserAuthService {
	return &UserAuthService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Session 登录会话，调用方自行保存
type Session struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthResult 注册/登录结果
type AuthResult struct {
	Session Session
	User    *models.User
}

// RegisterInput 注册输入
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Password string
}

// UpdateProfileInput 资料更新输入
type UpdateProfileInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// IssueSession 为用户签发会话
func (s *UserAuthService) IssueSession(user *models.User) (Session, error) {
	secret := strings.TrimSpace(s.cfg.UserJWT.SecretKey)
	if secret == "" {
		return Session{}, ErrTokenSecretMissing
	}
	issuedAt := time.Now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(time.Duration(resolveUserJWTExpireHours(s.cfg.UserJWT)) * time.Hour)
	claims := UserJWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:     tokenString,
		TokenType: TokenTypeBearer,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// ParseUserJWT 解析用户 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	return ParseUserJWT(s.cfg.UserJWT.SecretKey, tokenString)
}

// ParseUserJWT 使用给定密钥校验并解析令牌，仅接受 HS256
func ParseUserJWT(secret, tokenString string) (*UserJWTClaims, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrTokenSecretMissing
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Register 用户注册
func (s *UserAuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	address := strings.TrimSpace(input.Address)
	if name == "" || strings.TrimSpace(input.Email) == "" || phone == "" || address == "" || input.Password == "" {
		return nil, ErrFieldsRequired
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}
	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	exist, err := s.userRepo.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Name:         name,
		Email:        normalized,
		Phone:        phone,
		Address:      address,
		PasswordHash: string(hashed),
		Status:       constants.UserStatusActive,
		MemberSince:  now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	session, err := s.IssueSession(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Session: session, User: user}, nil
}

// Login 用户登录，未知邮箱与密码错误返回同一错误
func (s *UserAuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrLoginFieldsRequired
	}
	normalized := strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if status := strings.ToLower(strings.TrimSpace(user.Status)); status != "" && status != constants.UserStatusActive {
		return &AuthResult{User: user}, ErrUserDisabled
	}

	session, err := s.IssueSession(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	return &AuthResult{Session: session, User: user}, nil
}

// GetUserByID 获取用户信息
func (s *UserAuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile 更新个人资料
func (s *UserAuthService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	address := strings.TrimSpace(input.Address)
	if name == "" || strings.TrimSpace(input.Email) == "" || phone == "" || address == "" {
		return nil, ErrFieldsRequired
	}
	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if normalized != strings.ToLower(user.Email) {
		taken, err := s.userRepo.EmailTakenByOther(ctx, normalized, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailExists
		}
	}

	user.Name = name
	user.Email = normalized
	user.Phone = phone
	user.Address = address
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword 修改密码
func (s *UserAuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return ErrPasswordFieldsMissing
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrPasswordMismatch
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashed)
	user.UpdatedAt = time.Now()
	return s.userRepo.Update(ctx, user)
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// NormalizeEmail 统一邮箱格式
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}

func resolveUserJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 168
	}
	return cfg.ExpireHours
}
