package entities

import (
	"time"

	"github.com/google/uuid"
)

// Receipt identity is scoped to its owner: the same receipt uuid under two
// users is two independent receipts.
type Receipt struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Store        string    `json:"store"`
	PurchaseDate time.Time `gorm:"type:date" json:"purchase_date"`
	Status       string    `json:"status"`

	User  *User          `gorm:"foreignKey:UserID"`
	Items []*ReceiptItem `gorm:"foreignKey:ReceiptID,UserID;references:ID,UserID"`
	Timestamp
}

// ReceiptItem rows are only ever replaced as a whole set per receipt,
// never patched individually. Sequence is server-assigned submission order.
type ReceiptItem struct {
	ReceiptID uuid.UUID `gorm:"type:uuid;primaryKey" json:"receipt_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Sequence  int       `gorm:"primaryKey" json:"sequence"`
	Name      string    `gorm:"not null" json:"name"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	UnitPrice *float64  `json:"unit_price,omitempty"`
	Category  *string   `json:"category,omitempty"`

	// Macros stay nil until enrichment resolves them. Nil means unknown;
	// zero is a valid resolved value.
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`

	NeedsReview bool `gorm:"not null;default:false" json:"needs_review"`
	Timestamp
}
