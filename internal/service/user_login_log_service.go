package service

import (
	"context"
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// UserLoginLogService 用户登录日志服务
type UserLoginLogService struct {
	repo repository.UserLoginLogRepository
}

// NewUserLoginLogService 创建用户登录日志服务
func NewUserLoginLogService(repo repository.UserLoginLogRepository) *UserLoginLogService {
	return &UserLoginLogService{repo: repo}
}

// RecordUserLoginInput 登录日志记录输入
type RecordUserLoginInput struct {
	UserID     uint
	Email      string
	Status     string
	FailReason string
	ClientIP   string
	UserAgent  string
	Source     string
	RequestID  string
}

// Record 记录一次登录尝试，失败原因为空时记为 internal_error
func (s *UserLoginLogService) Record(ctx context.Context, input RecordUserLoginInput) error {
	if s == nil || s.repo == nil {
		return nil
	}

	status := constants.LoginLogStatusFailed
	if strings.EqualFold(strings.TrimSpace(input.Status), constants.LoginLogStatusSuccess) {
		status = constants.LoginLogStatusSuccess
	}

	failReason := ""
	if status == constants.LoginLogStatusFailed {
		failReason = strings.ToLower(strings.TrimSpace(input.FailReason))
		if failReason == "" {
			failReason = constants.LoginLogFailReasonInternalError
		}
	}

	source := strings.ToLower(strings.TrimSpace(input.Source))
	if source == "" {
		source = constants.LoginLogSourceWeb
	}

	return s.repo.Create(ctx, &models.UserLoginLog{
		UserID:     input.UserID,
		Email:      strings.ToLower(strings.TrimSpace(input.Email)),
		Status:     status,
		FailReason: failReason,
		ClientIP:   strings.TrimSpace(input.ClientIP),
		UserAgent:  truncate(strings.TrimSpace(input.UserAgent), 512),
		Source:     source,
		RequestID:  strings.TrimSpace(input.RequestID),
		CreatedAt:  time.Now(),
	})
}

// ListByUser 用户查询自己的登录日志
func (s *UserLoginLogService) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]models.UserLoginLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.UserLoginLog{}, 0, nil
	}
	return s.repo.ListByUser(ctx, userID, page, pageSize)
}

func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max])
}
