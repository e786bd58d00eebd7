package services

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/wajabatt/restaurant-app/models"
	"github.com/wajabatt/restaurant-app/utils"
)

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// BuildWhatsAppLink builds the prefilled wa.me deep link for channel A.
// This is pure string construction: the server never contacts the messaging
// service and never learns whether the client actually opened the link.
func BuildWhatsAppLink(number string, order *models.Order) string {
	message := fmt.Sprintf("Hello, I'd like to confirm my order:\n\nOrder #%d\n", order.ID)
	for _, item := range order.OrderItems {
		message += fmt.Sprintf("Item: %d x %s\n", item.Quantity, item.Menu.Name)
	}
	message += fmt.Sprintf("Total: %s\n\nCustomer: %s\nEmail: %s\nPhone: %s\n",
		utils.FormatUSD(order.Total),
		order.CustomerName, order.CustomerEmail, order.CustomerPhone)
	if order.Description != "" {
		message += fmt.Sprintf("\nAdditional Instructions: %s\n", order.Description)
	}
	message += "\nPlease confirm my order. Thank you!"

	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message))
}
