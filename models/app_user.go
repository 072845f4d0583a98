package models

import "time"

type AppUser struct {
	ID        int64     `json:"id" bson:"_id,omitempty" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name"`
	Email     string    `json:"email" bson:"email" db:"email"`
	Phone     string    `json:"phone,omitempty" bson:"phone" db:"phone"`
	Password  string    `json:"password,omitempty" bson:"password" db:"password_hash"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
