package config

import (
	razorpay "github.com/razorpay/razorpay-go"
)

// PaymentGateway is the slice of the Razorpay API the wallet top-up flow
// needs. Tests swap in a stub; production uses the client built once at
// startup instead of constructing one from env vars per request.
type PaymentGateway interface {
	CreateOrder(amountPaise int, receipt string) (map[string]interface{}, error)
	FetchPayment(paymentID string) (map[string]interface{}, error)
}

// Gateway is the process-wide payment gateway, set by InitPaymentGateway.
var Gateway PaymentGateway

type razorpayGateway struct {
	client *razorpay.Client
}

func (g *razorpayGateway) CreateOrder(amountPaise int, receipt string) (map[string]interface{}, error) {
	orderData := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"receipt":         receipt,
		"payment_capture": 1,
	}
	return g.client.Order.Create(orderData, nil)
}

func (g *razorpayGateway) FetchPayment(paymentID string) (map[string]interface{}, error) {
	return g.client.Payment.Fetch(paymentID, nil, nil)
}

// InitPaymentGateway builds the Razorpay-backed gateway from configuration.
func InitPaymentGateway(cfg *Config) {
	Gateway = &razorpayGateway{
		client: razorpay.NewClient(cfg.RazorpayKey, cfg.RazorpaySecret),
	}
}
