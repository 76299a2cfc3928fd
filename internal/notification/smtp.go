package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"app/internal/config"

	"github.com/sirupsen/logrus"
)

type smtpMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	fromName string
	feURL    string
}

// disabledMailer はSMTP未設定のとき用。送らずにdebugログだけ残す。
type disabledMailer struct {
	log *logrus.Logger
}

// NewMailerFromConfig はSMTP設定があれば本物を、なければ無効版を返す。
func NewMailerFromConfig(cfg config.Config, log *logrus.Logger) Mailer {
	if cfg.MailHost == "" {
		log.Warn("MAIL_HOST not set, transactional email disabled")
		return &disabledMailer{log: log}
	}

	return &smtpMailer{
		host:     cfg.MailHost,
		port:     cfg.MailPort,
		username: cfg.MailUsername,
		password: cfg.MailPassword,
		from:     cfg.MailFrom,
		fromName: cfg.MailFromName,
		feURL:    cfg.FEURL,
	}
}

func (m *smtpMailer) SendWelcomeEmail(ctx context.Context, toEmail string, toName string) error {
	subject := "Welcome to QuickBite!"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\n"+
			"Thank you for joining QuickBite! Your account has been created with email: %s\r\n\r\n"+
			"You can now browse our menu and place orders at %s/home\r\n\r\n"+
			"- The QuickBite Team\r\n",
		toName, toEmail, m.feURL,
	)

	return m.send(ctx, toEmail, subject, body)
}

func (m *smtpMailer) SendOrderConfirmationEmail(ctx context.Context, toEmail string, toName string, oc OrderConfirmation) error {
	subject := "Order Confirmed!"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\n"+
			"Thank you for your order!\r\n"+
			"Order ID: %d\r\n"+
			"Status: %s\r\n"+
			"Total: $%.2f\r\n\r\n"+
			"We'll notify you once your order is ready!\r\n\r\n"+
			"- The QuickBite Team\r\n",
		toName, oc.OrderID, oc.Status, oc.TotalAmount,
	)

	return m.send(ctx, toEmail, subject, body)
}

// sendはブロッキング。呼び出し側がgoroutine＋timeoutで包む。
func (m *smtpMailer) send(ctx context.Context, to string, subject string, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := m.buildMessage(to, subject, body)
	addr := m.host + ":" + m.port

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	// net/smtpはctxを受けないので、締め切り超過をチャネルで観測する
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.from, []string{to}, msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *smtpMailer) buildMessage(to string, subject string, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", m.fromName, m.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func (d *disabledMailer) SendWelcomeEmail(ctx context.Context, toEmail string, toName string) error {
	d.log.WithField("to", toEmail).Debug("mail disabled, welcome email not sent")
	return nil
}

func (d *disabledMailer) SendOrderConfirmationEmail(ctx context.Context, toEmail string, toName string, oc OrderConfirmation) error {
	d.log.WithFields(logrus.Fields{"to": toEmail, "order_id": oc.OrderID}).
		Debug("mail disabled, order confirmation not sent")
	return nil
}
