package email

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/donorconnect/donor-api/config"
	"github.com/donorconnect/donor-api/internal/model"
)

type Service interface {
	SendDonorContact(ctx context.Context, alert *model.ContactAlert) error
}

// sender is the part of gomail.Dialer the service relies on.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPService struct {
	from   string
	sender sender
}

func NewSMTPService(cfg config.SMTPConfig) *SMTPService {
	return &SMTPService{
		from:   cfg.From,
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// SendDonorContact emails the donor about an emergency request they matched.
// The dial runs to completion; ctx is only checked before sending.
func (s *SMTPService) SendDonorContact(ctx context.Context, alert *model.ContactAlert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if alert.DonorEmail == "" {
		return fmt.Errorf("donor %s has no email address", alert.DonorID)
	}

	m := ContactMessage(s.from, alert)
	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send contact email to %s: %w", alert.DonorEmail, err)
	}
	return nil
}

// ContactMessage renders the alert email.
func ContactMessage(from string, alert *model.ContactAlert) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetAddressHeader("To", alert.DonorEmail, alert.DonorName)
	m.SetHeader("Subject", fmt.Sprintf("Urgent %s donation request near %s", alert.RequestType, alert.Location))
	m.SetHeader("X-DonorConnect-Alert", alert.ID)
	m.SetBody("text/plain", contactBody(alert))
	return m
}

func contactBody(alert *model.ContactAlert) string {
	var body strings.Builder
	fmt.Fprintf(&body, "Hello %s,\n\n", alert.DonorName)
	fmt.Fprintf(&body, "You have been identified as a potential match for an urgent %s donation request (%s) at %s.\n\n",
		strings.ToLower(string(alert.RequestType)), alert.Detail, alert.Location)
	body.WriteString("If you are able to help, please reply to this email or contact the DonorConnect team as soon as possible.\n\n")
	body.WriteString("Thank you for being a donor.\n")
	body.WriteString("DonorConnect\n")
	return body.String()
}
