package mailing

import (
	"strconv"

	"gopkg.in/gomail.v2"

	"bitescan-api/internal/config"
)

type Mailer struct {
	host     string
	port     string
	sender   string
	email    string
	password string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		sender:   cfg.SMTPSenderName,
		email:    cfg.SMTPAuthEmail,
		password: cfg.SMTPAuthPassword,
	}
}

func (m *Mailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.email)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(m.port)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(m.host, port, m.email, m.password)

	return dialer.DialAndSend(mailer)
}
