// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/bazarcheck/bazarcheck-backend/internal/apperr"
	"github.com/bazarcheck/bazarcheck-backend/internal/config"
)

// NotificationService delivers outbound mail. With no SMTP host configured
// it logs the message instead, so development runs without a relay.
type NotificationService struct {
	cfg config.EmailConfig
}

func NewNotificationService(cfg config.EmailConfig) *NotificationService {
	return &NotificationService{cfg: cfg}
}

type ContactInput struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

var contactTemplate = template.Must(template.New("contact").Parse(`
<!DOCTYPE html>
<html>
<body>
  <h2>New contact message</h2>
  <p><strong>From:</strong> {{.Name}} ({{.Email}})</p>
  <p><strong>Subject:</strong> {{.Subject}}</p>
  <hr>
  <p>{{.Message}}</p>
</body>
</html>
`))

// SendContactMessage forwards a contact-form submission to the support inbox.
func (s *NotificationService) SendContactMessage(input ContactInput) error {
	var buf bytes.Buffer
	if err := contactTemplate.Execute(&buf, input); err != nil {
		return apperr.Internal("failed to render contact email", err)
	}

	subject := "Contact: " + input.Subject
	if err := s.sendEmail(s.cfg.ContactEmail, subject, buf.String()); err != nil {
		return apperr.External("failed to send contact email", err)
	}
	return nil
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.cfg.SMTPHost == "" {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("SMTP not configured, logging email instead")
		return nil
	}

	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.FromName, s.cfg.FromEmail, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	return smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, msg)
}
