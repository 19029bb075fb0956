package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentMethod is a mobile-wallet channel shown to customers at checkout.
type PaymentMethod struct {
	ID            string `bson:"id" json:"id"`
	Name          string `bson:"name" json:"name"`
	Logo          string `bson:"logo,omitempty" json:"logo,omitempty"`
	AccountNumber string `bson:"accountNumber" json:"accountNumber"`
	AccountName   string `bson:"accountName" json:"accountName"`
	Phone         string `bson:"phone,omitempty" json:"phone,omitempty"`
	IsActive      bool   `bson:"isActive" json:"isActive"`
}

// Settings is a singleton document; the paymentMethods array is always
// replaced as a whole on write.
type Settings struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SiteName        string             `bson:"siteName" json:"siteName"`
	MaintenanceMode bool               `bson:"maintenanceMode" json:"maintenanceMode"`
	PromoBanner     string             `bson:"promoBanner,omitempty" json:"promoBanner,omitempty"`
	SupportEmail    string             `bson:"supportEmail,omitempty" json:"supportEmail,omitempty"`
	SupportPhone    string             `bson:"supportPhone,omitempty" json:"supportPhone,omitempty"`
	PaymentMethods  []PaymentMethod    `bson:"paymentMethods" json:"paymentMethods"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
