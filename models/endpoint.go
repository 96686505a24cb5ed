package models

import (
	"time"

	"github.com/google/uuid"
)

// Endpoint is a named ingestion target. The token is generated server-side
// at creation time and is the only credential required to submit reports.
type Endpoint struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;not null;unique;default:gen_random_uuid()" json:"id"`
	Label     string    `gorm:"size:100;not null;unique" json:"label"`
	Token     string    `gorm:"size:64;not null;uniqueIndex" json:"token"`
	CreatedAt time.Time `gorm:"not null;default:clock_timestamp()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:clock_timestamp()" json:"-"`
}
