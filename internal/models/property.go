package models

import (
	"time"
)

// Property is a listed investment property managed through the CMS.
// AuthorID is stamped from the authenticated session at creation and is
// never client-supplied. Anonymous listing queries only ever see rows
// with Published = true.
type Property struct {
	ID               uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string  `gorm:"size:255;not null" json:"name"`
	Description      string  `gorm:"type:text" json:"description"`
	Location         string  `gorm:"size:255;index" json:"location"`
	Type             string  `gorm:"size:100;index" json:"type"`
	Status           string  `gorm:"size:100;index" json:"status"`
	Valuation        string  `gorm:"size:100" json:"valuation"`
	InvestmentPeriod string  `gorm:"size:100" json:"investment_period"`
	PricePerSqft     uint    `json:"price_per_sqft"`
	TotalAreaSqft    uint    `json:"total_area_sqft"`
	Bedrooms         uint    `json:"bedrooms"`
	Bathrooms        uint    `json:"bathrooms"`
	ParkingSpaces    uint    `json:"parking_spaces"`
	MinInvestment    string  `gorm:"size:50" json:"min_investment"`
	ImageURL         *string `gorm:"size:512" json:"image_url"`
	Gallery          JSON    `json:"gallery,omitempty" swaggertype:"array,string"`
	Rera             bool    `json:"rera"`
	Published        bool    `gorm:"index;not null;default:false" json:"published"`
	Featured         bool    `gorm:"index;not null;default:false" json:"featured"`
	AuthorID         string  `gorm:"type:char(36);not null;index" json:"author_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName overrides the table name for Property
func (Property) TableName() string {
	return "properties"
}
