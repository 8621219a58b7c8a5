package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// prices travel as JSON numbers, like the rest of the menu payload
	decimal.MarshalJSONWithoutQuotes = true
}

type MenuItem struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:500;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Category    string          `gorm:"size:30;not null;index" json:"category"`
	Image       string          `gorm:"size:500;not null;default:''" json:"image"`

	IsVegetarian    bool `gorm:"not null;default:false" json:"isVegetarian"`
	IsSpicy         bool `gorm:"not null;default:false" json:"isSpicy"`
	IsAvailable     bool `gorm:"not null;default:true;index" json:"isAvailable"`
	PreparationTime int  `gorm:"not null;default:15" json:"preparationTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
