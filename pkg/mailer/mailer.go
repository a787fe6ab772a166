package mailer

import (
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/Hari-r31/internship-platform/config"
)

// Sender 事务邮件发送接口
type Sender interface {
	Send(to, subject, body string) error
}

// Mailer SMTP 邮件发送器（密码重置链接）
type Mailer struct {
	cfg    *config.MailConfig
	logger *zap.Logger
}

// NewMailer 创建邮件发送器
func NewMailer(cfg *config.MailConfig, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// Send 发送纯文本邮件
// 发送失败原样返回错误，由调用方决定是否向用户暴露
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("无效的发件人地址: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("无效的收件人地址: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(m.cfg.SMTPHost,
		gomail.WithPort(m.cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("创建 SMTP 客户端失败: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		m.logger.Error("邮件发送失败", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("邮件发送失败: %w", err)
	}

	m.logger.Info("邮件发送成功", zap.String("to", to), zap.String("subject", subject))
	return nil
}
