package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field length limits enforced on signup input.
const (
	MaxNameLength     = 20
	MaxEmailLength    = 30
	MaxPasswordLength = 20
)

// User represents a member record in the directory. Exactly one record
// exists per email; records are never deleted by this system.
type User struct {
	ObjectID     primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	Admin        bool               `json:"admin" bson:"admin"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}
