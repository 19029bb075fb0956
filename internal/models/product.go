package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CategoryPremium  = "Premium"
	CategoryStandard = "Standard"
)

type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Provider  string             `bson:"provider" json:"provider"`
	Duration  string             `bson:"duration" json:"duration"`
	Price     int64              `bson:"price" json:"price"`
	Features  StringList         `bson:"features" json:"features"`
	Category  string             `bson:"category" json:"category"`
	Rating    float64            `bson:"rating" json:"rating"`
	Logo      string             `bson:"logo,omitempty" json:"logo,omitempty"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	IsDeleted bool               `bson:"isDeleted" json:"isDeleted,omitempty"`
	DeletedAt *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
