package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func smtpConfig() EmailConfig {
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendEmail sends an HTML email via the configured SMTP server
func SendEmail(to, subject, body string) error {
	config := smtpConfig()

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// SendDonationReceipt sends a thank-you email after a donation is credited
func SendDonationReceipt(to, donorName, campaignTitle string, amount float64) error {
	subject := "Thank you for your donation"

	body := fmt.Sprintf(`
		<h2>Thank you, %s!</h2>
		<p>Your donation has been received.</p>
		<h1 style="color: #4CAF50; font-size: 32px;">%.2f</h1>
		<p>Campaign: <strong>%s</strong></p>
		<p>Your support makes a real difference for students and schools.</p>
	`, donorName, amount, campaignTitle)

	return SendEmail(to, subject, body)
}
