package models

import "time"

// Firm is a billing entity (shop/branch) owned by a single user.
// The owner never changes after creation.
type Firm struct {
	ID        int64     `json:"id" bson:"_id,omitempty" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name"`
	Address   string    `json:"address" bson:"address" db:"address"`
	GSTNumber string    `json:"gst_number" bson:"gst_number" db:"gst_number"`
	OwnerID   int64     `json:"owner_id" bson:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
