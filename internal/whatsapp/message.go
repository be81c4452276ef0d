package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cardap-io/cardap/internal/cart"
	"github.com/cardap-io/cardap/internal/domain"
	"github.com/cardap-io/cardap/internal/menu"
)

// Order carries everything the serializer needs to render one order
// message. Orders are not persisted anywhere; this message IS the order.
type Order struct {
	RestaurantName string
	Lines          []cart.Line
	Total          int64
	Customer       domain.CustomerInfo

	// Delivery selects the fulfillment block: customer address when true,
	// PickupAddress (the restaurant's own address) otherwise.
	Delivery      bool
	PickupAddress string
}

// BuildMessage renders the human-readable order summary sent to the
// restaurant. Every line item, its variations, extras and observations, the
// cart total, and the customer block appear in the message.
func BuildMessage(o Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*🍕 NOVO PEDIDO - %s*\n\n", o.RestaurantName)

	b.WriteString("*Itens:*\n")
	for _, line := range o.Lines {
		fmt.Fprintf(&b, "• %dx %s", line.Quantity, line.Product.Name)
		if len(line.SelectedVariations) > 0 {
			parts := make([]string, len(line.SelectedVariations))
			for i, v := range line.SelectedVariations {
				parts[i] = fmt.Sprintf("%s: %s", v.GroupName, v.OptionName)
			}
			fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
		}
		b.WriteString("\n")

		if len(line.SelectedExtras) > 0 {
			names := make([]string, len(line.SelectedExtras))
			for i, e := range line.SelectedExtras {
				names[i] = e.Name
			}
			fmt.Fprintf(&b, "  Adicionais: %s\n", strings.Join(names, ", "))
		}
		if obs := strings.TrimSpace(line.Observations); obs != "" {
			fmt.Fprintf(&b, "  Obs: %s\n", obs)
		}
	}

	fmt.Fprintf(&b, "\n💰 *Total:* %s\n\n", menu.FormatCents(o.Total))

	b.WriteString("*👤 Dados do Cliente:*\n")
	fmt.Fprintf(&b, "• Nome: %s\n", o.Customer.Name)
	fmt.Fprintf(&b, "• Pagamento: %s\n", o.Customer.PaymentMethod)
	if o.Delivery {
		b.WriteString("• Modo: ✅ ENTREGA EM CASA\n")
		fmt.Fprintf(&b, "📍 *Endereço:* %s", o.Customer.Address)
	} else {
		b.WriteString("• Modo: ✅ RETIRADA NO LOCAL\n")
		fmt.Fprintf(&b, "📍 *Ponto de Retirada:* %s", o.PickupAddress)
	}

	return b.String()
}

// BuildLink builds the wa.me deep link that opens the restaurant's chat
// with the order message prefilled. The message is percent-encoded so the
// result is a syntactically valid URL.
func BuildLink(number, message string) string {
	q := url.Values{"text": {message}}
	return fmt.Sprintf("https://wa.me/%s?%s", number, q.Encode())
}
