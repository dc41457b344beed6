package utils

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nikhil-742/ShopNest/models"
	"gopkg.in/gomail.v2"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func emailConfigFromEnv() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendEmail sends an HTML email using the configured SMTP server.
func SendEmail(to, subject, body string) error {
	config := emailConfigFromEnv()

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

// SendOrderConfirmation emails the customer a summary after placement.
// Callers fire this on a goroutine; a delivery failure is logged, never
// surfaced to the order flow.
func SendOrderConfirmation(to string, order *models.Order) {
	body := fmt.Sprintf(`
		<h2>Thank you for your order!</h2>
		<p>Your order <strong>%s</strong> has been placed successfully.</p>
		<p>Payment method: %s</p>
		<p>Order total: %.2f</p>
		<p>We'll let you know when it ships.</p>
	`, order.OrderNumber, order.PaymentMethod, order.Total)

	if err := SendEmail(to, fmt.Sprintf("Your %s order %s", AppName, order.OrderNumber), body); err != nil {
		LogError("Failed to send order confirmation for %s: %v", order.OrderNumber, err)
	}
}

// SendRefundNotification emails the customer when a refund lands in their
// wallet.
func SendRefundNotification(to, orderNumber string, amount float64) {
	body := fmt.Sprintf(`
		<h2>Refund processed</h2>
		<p>A refund of <strong>%.2f</strong> for order <strong>%s</strong> has been credited to your wallet.</p>
	`, amount, orderNumber)

	if err := SendEmail(to, fmt.Sprintf("Refund for order %s", orderNumber), body); err != nil {
		LogError("Failed to send refund notification for %s: %v", orderNumber, err)
	}
}
