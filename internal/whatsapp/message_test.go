package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/cardap-io/cardap/internal/cart"
	"github.com/cardap-io/cardap/internal/domain"
	"github.com/google/uuid"
)

func testOrder() Order {
	return Order{
		RestaurantName: "Pizzaria do Zé",
		Lines: []cart.Line{
			{
				Product:  domain.Product{ID: uuid.New(), Name: "Pizza Calabresa"},
				Quantity: 2,
				SelectedVariations: []domain.SelectedVariation{
					{GroupName: "Tamanho", OptionName: "Grande", PriceAdjustment: 1000},
					{GroupName: "Massa", OptionName: "Fina"},
				},
				SelectedExtras: []domain.Extra{
					{Name: "Bacon", Price: 300},
					{Name: "Catupiry", Price: 500},
				},
				Observations: "sem cebola",
				TotalPrice:   8580,
			},
			{
				Product:    domain.Product{ID: uuid.New(), Name: "Guaraná 2L"},
				Quantity:   1,
				TotalPrice: 1200,
			},
		},
		Total: 9780,
		Customer: domain.CustomerInfo{
			Name:          "Maria Silva",
			Address:       "Rua das Flores, 123",
			PaymentMethod: domain.PaymentPix,
		},
		Delivery: true,
	}
}

func TestBuildMessage_Delivery(t *testing.T) {
	msg := BuildMessage(testOrder())

	wantFragments := []string{
		"*🍕 NOVO PEDIDO - Pizzaria do Zé*",
		"*Itens:*",
		"• 2x Pizza Calabresa (Tamanho: Grande, Massa: Fina)",
		"  Adicionais: Bacon, Catupiry",
		"  Obs: sem cebola",
		"• 1x Guaraná 2L",
		"💰 *Total:* R$ 97.80",
		"*👤 Dados do Cliente:*",
		"• Nome: Maria Silva",
		"• Pagamento: Pix",
		"• Modo: ✅ ENTREGA EM CASA",
		"📍 *Endereço:* Rua das Flores, 123",
	}

	for _, fragment := range wantFragments {
		if !strings.Contains(msg, fragment) {
			t.Errorf("message missing %q\nmessage:\n%s", fragment, msg)
		}
	}

	if strings.Contains(msg, "RETIRADA") {
		t.Error("delivery order must not mention pickup")
	}
}

func TestBuildMessage_Pickup(t *testing.T) {
	o := testOrder()
	o.Delivery = false
	o.PickupAddress = "Av. Central, 45"

	msg := BuildMessage(o)

	if !strings.Contains(msg, "• Modo: ✅ RETIRADA NO LOCAL") {
		t.Error("pickup order should carry the pickup mode line")
	}
	if !strings.Contains(msg, "📍 *Ponto de Retirada:* Av. Central, 45") {
		t.Error("pickup order should show the restaurant address")
	}
	if strings.Contains(msg, "ENTREGA EM CASA") {
		t.Error("pickup order must not mention delivery")
	}
}

func TestBuildMessage_PlainLineWithoutDecoration(t *testing.T) {
	o := Order{
		RestaurantName: "Lanchonete",
		Lines: []cart.Line{
			{Product: domain.Product{Name: "X-Salada"}, Quantity: 1, TotalPrice: 1500},
		},
		Total:    1500,
		Customer: domain.CustomerInfo{Name: "João", PaymentMethod: domain.PaymentCash},
	}

	msg := BuildMessage(o)

	if strings.Contains(msg, "Adicionais:") {
		t.Error("line without extras must not render the extras row")
	}
	if strings.Contains(msg, "Obs:") {
		t.Error("line without observations must not render the note row")
	}
	if strings.Contains(msg, "(") {
		t.Error("line without variations must not render parentheses")
	}
}

func TestBuildLink(t *testing.T) {
	link := BuildLink("5511999998888", "pedido: açaí & pizza")

	if !strings.HasPrefix(link, "https://wa.me/5511999998888?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link is not a valid URL: %v", err)
	}
	if got := u.Query().Get("text"); got != "pedido: açaí & pizza" {
		t.Errorf("decoded text = %q", got)
	}
	if strings.Contains(link, " ") || strings.Contains(link, "&p") {
		t.Error("message must be percent-encoded in the link")
	}
}

func TestBuildLink_EncodesNewlines(t *testing.T) {
	msg := BuildMessage(testOrder())
	link := BuildLink("5511999998888", msg)

	if strings.Contains(link, "\n") {
		t.Error("newlines must be percent-encoded")
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Query().Get("text") != msg {
		t.Error("round-tripped message differs")
	}
}
