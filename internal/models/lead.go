package models

import (
	"time"
)

// Lead is a buyer-interest record created once by an anonymous visitor
// and read only by admin-side reporting. PropertyName is a snapshot of
// the property's display name at submission time; it is not kept in
// sync if the property is later renamed. Leads are never updated.
type Lead struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Phone        string `gorm:"size:32;not null" json:"phone"`
	Email        string `gorm:"size:255" json:"email"`
	PropertyID   uint64 `gorm:"index" json:"property_id"`
	PropertyName string `gorm:"size:255" json:"property_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName overrides the table name for Lead
func (Lead) TableName() string {
	return "leads"
}
