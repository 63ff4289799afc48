package services

import (
	"fmt"

	"github.com/ChurchPortal/initializers"
	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client *resend.Client
	from   string
}

var emailService *EmailService

// InitEmailService initializes the email service with Resend API
func InitEmailService() {
	apiKey := initializers.Config.ResendAPIKey
	if apiKey == "" {
		initializers.Log.Warn("RESEND_API_KEY not set, outgoing email is disabled")
		emailService = nil
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
		from:   initializers.Config.EmailFrom,
	}
	initializers.Log.Info("email service initialized with resend")
}

// GetEmailService returns nil while email is disabled.
func GetEmailService() *EmailService {
	return emailService
}

const emailLayout = `<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; padding: 20px 0; border-bottom: 2px solid #4a6fa5; }
        .header h1 { color: #4a6fa5; margin: 0; }
        .content { padding: 30px 0; }
        .code { font-size: 32px; font-weight: bold; letter-spacing: 8px; color: #4a6fa5; font-family: monospace; text-align: center; background-color: #f5f5f5; border-radius: 8px; padding: 20px; }
        .footer { text-align: center; padding: 20px 0; border-top: 1px solid #ddd; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="header"><h1>Church Portal</h1></div>
    <div class="content">%s</div>
    <div class="footer"><p>This is an automated message, please do not reply directly to this email.</p></div>
</body>
</html>
`

func (s *EmailService) send(to, subject, html, text string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    fmt.Sprintf(emailLayout, html),
		Text:    text,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		initializers.Log.Errorw("failed to send email", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	initializers.Log.Infow("email sent", "to", to, "subject", subject, "id", sent.Id)
	return nil
}

// SendVerificationEmail sends the token an administrator needs to verify their account.
func (s *EmailService) SendVerificationEmail(toEmail, name, token string) error {
	html := fmt.Sprintf(`
        <h2>Verify your email</h2>
        <p>Hi %s,</p>
        <p>Use the verification token below to activate your Church Portal account:</p>
        <p class="code">%s</p>`, name, token)
	text := fmt.Sprintf("Hi %s,\n\nUse this verification token to activate your Church Portal account:\n\n%s\n", name, token)

	return s.send(toEmail, "Verify your Church Portal account", html, text)
}

// SendPasswordResetEmail sends a password reset email with a 6-digit code
func (s *EmailService) SendPasswordResetEmail(toEmail, code, name string) error {
	html := fmt.Sprintf(`
        <h2>Password Reset Request</h2>
        <p>Hi %s,</p>
        <p>Use the code below to reset your Church Portal password:</p>
        <p class="code">%s</p>
        <p><strong>This code will expire in 15 minutes.</strong></p>
        <p>If you didn't request a password reset, please ignore this email.</p>`, name, code)
	text := fmt.Sprintf("Hi %s,\n\nYour password reset code: %s\n\nThis code will expire in 15 minutes.\n", name, code)

	return s.send(toEmail, "Reset your Church Portal password", html, text)
}

func (s *EmailService) SendTestEmail(toEmail string) error {
	html := `
        <h2>Test email</h2>
        <p>Email delivery for Church Portal is working.</p>`
	return s.send(toEmail, "Church Portal test email", html, "Email delivery for Church Portal is working.\n")
}
