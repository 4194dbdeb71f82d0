package models

import "time"

// User represents a registered account of the store.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username     string    `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
