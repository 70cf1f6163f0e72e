// Package email sends transactional mail. A noop provider stands in
// when SMTP is not configured, so callers never branch on config.
package email

import (
	"collegeskills_backend/internal/config"
	"collegeskills_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

type Message struct {
	To      string
	Subject string
	Body    string
	HTML    bool
}

type Provider interface {
	Send(msg *Message) error
}

func NewProvider(cfg config.EmailConfig) Provider {
	if !cfg.Enabled {
		return &noopProvider{}
	}
	return &smtpProvider{cfg: cfg}
}

type smtpProvider struct {
	cfg config.EmailConfig
}

func (p *smtpProvider) Send(msg *Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", p.cfg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if msg.HTML {
		m.SetBody("text/html", msg.Body)
	} else {
		m.SetBody("text/plain", msg.Body)
	}

	d := gomail.NewDialer(p.cfg.SMTPHost, p.cfg.SMTPPort, p.cfg.SMTPUser, p.cfg.SMTPPassword)
	return d.DialAndSend(m)
}

type noopProvider struct{}

func (p *noopProvider) Send(msg *Message) error {
	logger.Debug("email sending disabled, dropping message", "to", msg.To, "subject", msg.Subject)
	return nil
}
