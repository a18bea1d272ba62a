package model

import (
	"time"

	"github.com/google/uuid"
)

// User stores customers and back-office admins.
// Role: "user" | "admin"
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Firstname    string    `gorm:"not null"`
	Lastname     string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Phone        string
	Address      string
	Zipcode      string
	City         string
	Role         string `gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time `gorm:"index"`
}
