package services

import (
  "context"
  "fmt"
  "os"

  "github.com/sendgrid/sendgrid-go"
  "github.com/sendgrid/sendgrid-go/helpers/mail"

  "github.com/ainstein-org/ainstein-backend/internal/logger"
)

type EmailService interface {
  SendEmail(ctx context.Context, toEmail string, subject string, plainText string, htmlContent string) error
  SendVerificationCode(ctx context.Context, toEmail string, toName string, code string) error
}

type emailService struct {
  log       *logger.Logger
  client    *sendgrid.Client
  fromEmail string
  fromName  string
}

func NewEmailService(log *logger.Logger) (EmailService, error) {
  serviceLog := log.With("service", "EmailService")
  apiKey := os.Getenv("SENDGRID_API_KEY")
  if apiKey == "" {
    return nil, fmt.Errorf("Missing SENDGRID_API_KEY environment variable")
  }
  fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
  if fromEmail == "" {
    serviceLog.Warn("SENDGRID_FROM_EMAIL not set; using fallback no-reply@ainstein.app")
    fromEmail = "no-reply@ainstein.app"
  }
  client := sendgrid.NewSendClient(apiKey)

  return &emailService{
    log:       serviceLog,
    client:    client,
    fromEmail: fromEmail,
    fromName:  "Ainstein",
  }, nil
}

func (es *emailService) SendEmail(ctx context.Context, toEmail string, subject string, plainText string, htmlContent string) error {
  from := mail.NewEmail(es.fromName, es.fromEmail)
  to := mail.NewEmail(toEmail, toEmail)
  message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
  resp, err := es.client.SendWithContext(ctx, message)
  if err != nil {
    es.log.Error("Failed to send email", "error", err, "to", toEmail)
    return err
  }
  if resp.StatusCode >= 300 {
    es.log.Error("Sendgrid responded with non-2xx", "statusCode", resp.StatusCode, "body", resp.Body)
    return fmt.Errorf("sendgrid responded with status %d", resp.StatusCode)
  }
  es.log.Info("Email sent successfully :)", "to", toEmail, "subject", subject)
  return nil
}

func (es *emailService) SendVerificationCode(ctx context.Context, toEmail string, toName string, code string) error {
  subject := "Your Ainstein verification code"
  plainText := fmt.Sprintf("Hi %s,\n\nYour verification code is %s. It expires in 15 minutes.\n\nIf you did not create an account, you can ignore this email.", toName, code)
  htmlContent := fmt.Sprintf(`<p>Hi %s,</p><p>Your verification code is <strong>%s</strong>. It expires in 15 minutes.</p><p>If you did not create an account, you can ignore this email.</p>`, toName, code)
  return es.SendEmail(ctx, toEmail, subject, plainText, htmlContent)
}
