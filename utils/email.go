package utils

import (
	"fmt"
	"net/smtp"
	"os"

	"taskboard/backend/logging"
)

// SendEmail delivers a plain HTML mail through the configured SMTP
// account. Sender and credentials come from the environment.
func SendEmail(to, subject, body string) error {
	from := os.Getenv("EMAIL_FROM")
	password := os.Getenv("EMAIL_PASSWORD")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}
	if smtpPort == "" {
		smtpPort = "587"
	}

	if from == "" || password == "" {
		logging.Logger.Errorf("Event ID: SEND_EMAIL_MISSING_ENV, Description: EMAIL_FROM or EMAIL_PASSWORD is not set.")
		return fmt.Errorf("email credentials are not configured")
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", from, password, smtpHost)
	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{to}, message); err != nil {
		logging.Logger.Errorf("Event ID: SEND_EMAIL_FAILED, Description: Failed to send email to '%s': %v", to, err)
		return fmt.Errorf("failed to send email: %v", err)
	}

	logging.Logger.Infof("Event ID: SEND_EMAIL_SUCCESS, Description: Email sent to '%s' with subject: '%s'", to, subject)
	return nil
}
