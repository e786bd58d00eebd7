package services

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/wajabatt/restaurant-app/models"
	"github.com/wajabatt/restaurant-app/utils"
)

// Mailer is the outbound mail transport. No retry is built in; a failed send
// is the caller's problem to surface.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailerFromEnv builds the transport from the EMAIL_SERVER_*
// variables.
func NewSMTPMailerFromEnv() *SMTPMailer {
	port, err := strconv.Atoi(os.Getenv("EMAIL_SERVER_PORT"))
	if err != nil {
		port = 587
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(
			os.Getenv("EMAIL_SERVER_HOST"),
			port,
			os.Getenv("EMAIL_SERVER_USER"),
			os.Getenv("EMAIL_SERVER_PASSWORD"),
		),
		from: os.Getenv("EMAIL_FROM"),
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}

// OrderNotificationSubject and OrderNotificationBody compose the operator
// summary for channel B. The same text, link-encoded, feeds channel A.
func OrderNotificationSubject(order *models.Order) string {
	return fmt.Sprintf("New Order #%d from %s", order.ID, order.CustomerName)
}

func OrderNotificationBody(order *models.Order) string {
	body := fmt.Sprintf("New Order Received!\n\nOrder ID: %d\n", order.ID)
	for _, item := range order.OrderItems {
		body += fmt.Sprintf("Item: %d x %s - %s\n",
			item.Quantity, item.Menu.Name,
			utils.FormatUSD(item.Price.Mul(decimalFromInt(item.Quantity))))
	}
	body += fmt.Sprintf("Total: %s\n\nCustomer: %s\nEmail: %s\nPhone: %s\n",
		utils.FormatUSD(order.Total),
		order.CustomerName, order.CustomerEmail, order.CustomerPhone)
	if order.Description != "" {
		body += fmt.Sprintf("\nAdditional Instructions: %s\n", order.Description)
	}
	body += "\nPlease process this order as soon as possible."
	return body
}

// VerificationBody composes the signup verification mail.
func VerificationBody(baseURL, token string) string {
	return fmt.Sprintf(
		"Please follow the link below to verify your email address:\n\n%s/auth/verify?token=%s\n",
		baseURL, token)
}
