package service

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/i18n"
)

// 邮件相关错误
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled 是否启用
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// OrderPlacedEmailInput 下单确认邮件输入
type OrderPlacedEmailInput struct {
	OrderID       uint
	Name          string
	TotalAmount   string
	PaymentMethod string
}

// SendOrderPlacedEmail 发送下单确认邮件
func (s *EmailService) SendOrderPlacedEmail(toEmail string, input OrderPlacedEmailInput, locale string) error {
	subject, body := s.buildOrderPlacedContent(input, locale)
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) buildOrderPlacedContent(input OrderPlacedEmailInput, locale string) (string, string) {
	locale = i18n.NormalizeLocale(locale)
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "there"
	}
	signature := ""
	if s.cfg != nil {
		signature = strings.TrimSpace(s.cfg.FromName)
	}
	subject := i18n.Sprintf(locale, "email.order_placed_subject", input.OrderID)
	body := i18n.Sprintf(locale, "email.order_placed_body", name, input.OrderID, input.PaymentMethod, input.TotalAmount, signature)
	return subject, strings.TrimRight(body, "\n")
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if !s.Enabled() {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := []byte(buildEmailMessage(from, toEmail, subject, body))

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	var client *smtp.Client
	var err error
	switch {
	case s.cfg.UseSSL:
		client, err = dialSMTPWithSSL(addr, s.cfg.Host)
	default:
		client, err = smtp.Dial(addr)
	}
	if err != nil {
		return err
	}
	defer client.Close()

	if !s.cfg.UseSSL && s.cfg.UseTLS {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return err
		}
	}
	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	return normalizeEmailSendError(sendSMTPData(client, s.cfg.From, []string{toEmail}, msg))
}

func dialSMTPWithSSL(addr, host string) (*smtp.Client, error) {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return nil, err
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return client, nil
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	message := strings.ToLower(err.Error())
	for _, keyword := range []string{"no such recipient", "no such user", "recipient address rejected", "user unknown", "mailbox unavailable"} {
		if strings.Contains(message, keyword) {
			return fmt.Errorf("%w: %v", ErrEmailRecipientRejected, err)
		}
	}
	return err
}
