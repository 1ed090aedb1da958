package utils

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/meinhoongagan/homeconnect-pro/config"
)

var ErrEmailNotConfigured = errors.New("email: SMTP_HOST is not set")

func SendEmail(to, subject, body string) error {
	cfg := config.Get()
	if !cfg.EmailEnabled() {
		return ErrEmailNotConfigured
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.EmailUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	return d.DialAndSend(m)
}

func WelcomeEmail(name string) (subject, body string) {
	subject = "Welcome to HomeConnect Pro"
	body = fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your HomeConnect Pro account is ready. Browse verified local pros, post a job and book in minutes.</p>
		<p>The HomeConnect Pro Team</p>
	`, escape(name))
	return subject, body
}
