package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfilePreferences holds per-user notification and locale choices.
type ProfilePreferences struct {
	EmailNotifications bool   `bson:"emailNotifications" json:"emailNotifications"`
	Language           string `bson:"language,omitempty" json:"language,omitempty"`
}

// ProfileSubscription is a snapshot of the user's latest delivered VPN plan.
type ProfileSubscription struct {
	Plan      string     `bson:"plan,omitempty" json:"plan,omitempty"`
	ExpiresAt *time.Time `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}

// Profile holds extended personal data keyed to a user account.
type Profile struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID  `bson:"userId" json:"userId"`
	Address      string              `bson:"address,omitempty" json:"address,omitempty"`
	Preferences  ProfilePreferences  `bson:"preferences" json:"preferences"`
	Subscription ProfileSubscription `bson:"subscription" json:"subscription"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
