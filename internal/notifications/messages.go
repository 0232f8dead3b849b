package notifications

import (
	"fmt"
	"strings"

	"github.com/sbaral/bookpasal-backend/pkg/config"
	"github.com/sbaral/bookpasal-backend/pkg/db/models"
	"github.com/sbaral/bookpasal-backend/pkg/enums"
	"github.com/sbaral/bookpasal-backend/pkg/mail"
)

// Renderer builds the plain-text storefront emails. Copy is deliberately
// simple; the store runs digital delivery by hand.
type Renderer struct {
	storeName     string
	adminEmail    string
	ebookPassword string
	downloadPath  string
}

// NewRenderer derives mail copy settings from the store configuration.
func NewRenderer(store config.StoreConfig) *Renderer {
	return &Renderer{
		storeName:     store.Name,
		adminEmail:    store.AdminEmail,
		ebookPassword: store.EbookPassword,
		downloadPath:  store.DownloadPath,
	}
}

// CustomerConfirmation renders the buyer-facing confirmation. The fulfillment
// copy branches on whether anything in the order ships.
func (r *Renderer) CustomerConfirmation(order *models.Order) mail.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", order.CustomerName())
	fmt.Fprintf(&b, "Thank you for your order at %s!\n\n", r.storeName)
	fmt.Fprintf(&b, "Order number: %s\n\n", order.OrderNumber)
	writeItemLines(&b, order)
	writeTotals(&b, order)

	if order.RequiresShipping {
		b.WriteString("Your order will be shipped within 2-3 business days.\n")
		b.WriteString("Expected delivery window: 5-7 days after dispatch.\n")
		if order.ShippingAddress != nil {
			fmt.Fprintf(&b, "\nShipping to:\n%s\n", order.ShippingAddress.String())
		}
	} else {
		b.WriteString("Your ebook will be delivered manually within 24 hours to this email address.\n")
		if r.ebookPassword != "" {
			fmt.Fprintf(&b, "Access password: %s\n", r.ebookPassword)
		}
	}

	fmt.Fprintf(&b, "\nWarm regards,\n%s\n", r.storeName)
	return mail.Message{
		To:      []string{order.Email},
		Subject: fmt.Sprintf("%s - order %s confirmed", r.storeName, order.OrderNumber),
		Body:    b.String(),
	}
}

// AdminAlert renders the back-office notification for a new order.
func (r *Renderer) AdminAlert(order *models.Order) mail.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "New order %s\n\n", order.OrderNumber)
	fmt.Fprintf(&b, "Customer: %s\n", order.CustomerName())
	fmt.Fprintf(&b, "Email: %s\n", order.Email)
	fmt.Fprintf(&b, "Phone: %s\n", order.Phone)
	if order.RequiresShipping && order.ShippingAddress != nil {
		fmt.Fprintf(&b, "Address: %s\n", order.ShippingAddress.String())
	} else {
		b.WriteString("Address: Digital delivery (ebook)\n")
	}
	fmt.Fprintf(&b, "Payment: %s (ref %s)\n\n", order.PaymentMethod, order.TransactionRef)
	writeItemLines(&b, order)
	writeTotals(&b, order)

	if order.RequiresShipping {
		b.WriteString("Action required: pack and ship this order.\n")
	} else {
		fmt.Fprintf(&b, "Send the ebook files manually. Password: %s, download path: %s\n",
			r.ebookPassword, r.downloadPath)
	}

	return mail.Message{
		To:      []string{r.adminEmail},
		Subject: fmt.Sprintf("New order %s - %s", order.OrderNumber, order.CustomerName()),
		Body:    b.String(),
	}
}

// StatusUpdate renders the customer-facing lifecycle email for a transition
// into the given status. Pending transitions never reach here.
func (r *Renderer) StatusUpdate(order *models.Order) mail.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", order.CustomerName())

	label := "Your order " + order.OrderNumber
	if item := order.PrimaryItem(); item != nil {
		label = fmt.Sprintf("Your order %s (%s)", order.OrderNumber, item.Title)
	}

	switch order.Status {
	case enums.OrderStatusConfirmed:
		fmt.Fprintf(&b, "%s has been confirmed and is being prepared.\n", label)
	case enums.OrderStatusShipped:
		fmt.Fprintf(&b, "%s has been shipped.\n", label)
		b.WriteString("Expected delivery window: 5-7 days after dispatch.\n")
	case enums.OrderStatusDelivered:
		fmt.Fprintf(&b, "%s has been delivered. Happy reading!\n", label)
	default:
		fmt.Fprintf(&b, "%s status is now %s.\n", label, order.Status)
	}

	if order.Notes != nil && *order.Notes != "" {
		fmt.Fprintf(&b, "\nNote from the store: %s\n", *order.Notes)
	}
	fmt.Fprintf(&b, "\nWarm regards,\n%s\n", r.storeName)

	return mail.Message{
		To:      []string{order.Email},
		Subject: fmt.Sprintf("%s - order %s %s", r.storeName, order.OrderNumber, order.Status),
		Body:    b.String(),
	}
}

func writeItemLines(b *strings.Builder, order *models.Order) {
	b.WriteString("Items:\n")
	for _, item := range order.Items {
		fmt.Fprintf(b, "  - %s by %s (%s) x%d - %s %s\n",
			item.Title, item.Author, item.Format, item.Quantity,
			order.Currency, item.LineTotal.StringFixed(2))
	}
	b.WriteString("\n")
}

func writeTotals(b *strings.Builder, order *models.Order) {
	fmt.Fprintf(b, "Subtotal: %s %s\n", order.Currency, order.Subtotal.StringFixed(2))
	if order.RequiresShipping {
		fmt.Fprintf(b, "Shipping: %s %s\n", order.Currency, order.ShippingCost.StringFixed(2))
	}
	fmt.Fprintf(b, "Total: %s %s\n\n", order.Currency, order.GrandTotal.StringFixed(2))
}
