package mailer

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func sampleOrder() *models.Order {
	return &models.Order{
		ID:       primitive.NewObjectID(),
		Customer: models.OrderCustomer{Name: "Aung Kyaw", Email: "aung@example.com"},
		Items: []models.OrderItem{
			{Name: "Nord Premium", Duration: "1 Month", Price: 15000, Quantity: 2},
		},
		TotalAmount: 30000,
	}
}

func TestOrderConfirmationHTML(t *testing.T) {
	order := sampleOrder()
	body := orderConfirmationHTML("VPN Store", order)

	for _, want := range []string{"Aung Kyaw", order.ID.Hex(), "Nord Premium", "1 Month", "30000 MMK", "VPN Store"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected confirmation body to contain %q", want)
		}
	}
}

func TestCredentialsHTML(t *testing.T) {
	order := sampleOrder()
	order.Credentials = &models.VPNCredentials{
		Username:   "vpn_user1",
		Password:   "p@ss1234",
		ServerInfo: "sg1.example.com",
		ExpiryDate: "2025-02-01",
	}
	body := credentialsHTML("VPN Store", order)

	for _, want := range []string{"vpn_user1", "p@ss1234", "sg1.example.com", "2025-02-01"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected credentials body to contain %q", want)
		}
	}
}

func TestCredentialsHTMLWithoutCredentials(t *testing.T) {
	body := credentialsHTML("VPN Store", sampleOrder())
	if !strings.Contains(body, "Username") {
		t.Fatal("expected template to render even without credentials attached")
	}
}
