package service

import (
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/jcamiloaa/experienciaas/internal/domain"
)

// SendGridSender implements EmailSender over the SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

func NewSendGridSender(apiKey, fromName, fromEmail string) *SendGridSender {
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SendGridSender) SendApplicationReceived(user *domain.User, role domain.Role) error {
	subject := fmt.Sprintf("We received your %s application", role)
	body := fmt.Sprintf("Hi %s,\n\nWe received your application to become a %s. Our team will review it shortly.", user.DisplayName(), role)
	return s.send(user, subject, body)
}

func (s *SendGridSender) SendRoleApproved(user *domain.User, role domain.Role) error {
	subject := fmt.Sprintf("Your %s application was approved", role)
	body := fmt.Sprintf("Hi %s,\n\nCongratulations, your %s access is now active.", user.DisplayName(), role)
	return s.send(user, subject, body)
}

func (s *SendGridSender) SendRoleRejected(user *domain.User, role domain.Role, reason string) error {
	subject := fmt.Sprintf("Update on your %s application", role)
	body := fmt.Sprintf("Hi %s,\n\nYour %s application was not approved.\n\nReason: %s\n\nYou are welcome to apply again in the future.", user.DisplayName(), role, reason)
	return s.send(user, subject, body)
}

func (s *SendGridSender) SendRoleSuspended(user *domain.User, role domain.Role, until *time.Time, reason string) error {
	subject := fmt.Sprintf("Your %s access has been suspended", role)
	window := "until further notice"
	if until != nil {
		window = fmt.Sprintf("until %s", until.UTC().Format("January 2, 2006"))
	}
	body := fmt.Sprintf("Hi %s,\n\nYour %s access is suspended %s.", user.DisplayName(), role, window)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	return s.send(user, subject, body)
}

func (s *SendGridSender) SendRoleReactivated(user *domain.User, role domain.Role) error {
	subject := fmt.Sprintf("Your %s access has been restored", role)
	body := fmt.Sprintf("Hi %s,\n\nYour %s access is active again.", user.DisplayName(), role)
	return s.send(user, subject, body)
}

func (s *SendGridSender) SendRoleRevoked(user *domain.User, role domain.Role, reason string) error {
	subject := fmt.Sprintf("Your %s access has been removed", role)
	body := fmt.Sprintf("Hi %s,\n\nYour %s access has been removed.", user.DisplayName(), role)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nYou may apply again at any time."
	return s.send(user, subject, body)
}

func (s *SendGridSender) SendWelcome(user *domain.User) error {
	body := fmt.Sprintf("Hi %s,\n\nWelcome! Your account is ready.", user.DisplayName())
	return s.send(user, "Welcome to Experienciaas", body)
}

func (s *SendGridSender) send(user *domain.User, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(user.DisplayName(), user.Email)
	message := mail.NewSingleEmail(from, subject, to, plainText, "")

	resp, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d", resp.StatusCode)
	}
	return nil
}
