package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account in the system.
// The credential hash is owned by the auth layer and is never serialized.
type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	DisplayName  string    `gorm:"not null" json:"display_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	LastLogin    time.Time `json:"last_login"`
}

// BeforeCreate is a GORM hook which is called before a record is inserted.
// It assigns a fresh UUID when the ID has not been set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
