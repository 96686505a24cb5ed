package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a dashboard account. Reports are never readable without one.
type User struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;not null;unique;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"size:255;not null;unique" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Active    *bool     `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"not null;default:clock_timestamp()" json:"-"`
	UpdatedAt time.Time `gorm:"not null;default:clock_timestamp()" json:"-"`
}
