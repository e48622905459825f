// Package mailer は確認メールの組み立てと送信を提供する。
package mailer

import (
	"fmt"
	"log/slog"

	gomail "gopkg.in/gomail.v2"
)

// Message は送信するメール1通を表す。
type Message struct {
	To      string // "名前 <メールアドレス>" 形式
	Subject string
	Body    string // HTML本文
}

// Sender はメール送信のインターフェース。
type Sender interface {
	// Send はメールを1通送信する。
	Send(msg *Message) error
}

// SMTPSender はSMTP経由でメールを送信するSender実装。
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender はSMTPSenderを生成する。
// fromは "名前 <メールアドレス>" 形式を受け付ける。
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send はメールを1通送信する。
func (s *SMTPSender) Send(msg *Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("メールの送信に失敗しました: %w", err)
	}
	return nil
}

// LogSender は実際には送信せずログに記録するSender実装。
// SMTPが未設定の環境（開発・テスト）で使用する。
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender はLogSenderを生成する。
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send はメールの内容をログに記録する。
func (s *LogSender) Send(msg *Message) error {
	s.logger.Info("mail delivery skipped (SMTP not configured)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}

// compile-time interface checks
var (
	_ Sender = (*SMTPSender)(nil)
	_ Sender = (*LogSender)(nil)
)
