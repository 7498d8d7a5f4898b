package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Username string    `gorm:"not null" json:"username"`
	Password string    `gorm:"not null" json:"-"`
	Disabled bool      `gorm:"not null;default:false" json:"disabled"`
	Phone    *string   `json:"phone,omitempty"`
	Diet     *string   `json:"diet,omitempty"`

	Receipts []*Receipt `gorm:"foreignKey:UserID"`
	Timestamp
}
