package models

import (
	"encoding/json"
	"math"
	"time"

	"gorm.io/datatypes"
)

const (
	PricingSingle   = "single"
	PricingMultiple = "multiple"
)

type MenuItem struct {
	ID                   uint              `json:"id" gorm:"primaryKey"`
	Name                 string            `json:"name" gorm:"size:200;not null"`
	Description          string            `json:"description" gorm:"type:text"`
	CategoryID           uint              `json:"category_id" gorm:"not null;index"`
	Category             *Category         `json:"-" gorm:"foreignKey:CategoryID"`
	Image                string            `json:"image" gorm:"type:text"`
	IsVegetarian         bool              `json:"is_vegetarian" gorm:"not null;default:false"`
	IsAvailable          bool              `json:"is_available" gorm:"not null"`
	Status               int               `json:"status" gorm:"not null"`
	PricingType          string            `json:"pricing_type" gorm:"size:10;not null;default:'single'"`
	Price                *int64            `json:"price"`
	PriceVariations      datatypes.JSONMap `json:"price_variations"`
	AvailabilitySchedule datatypes.JSONMap `json:"availability_schedule"`
	CreatedAt            time.Time         `json:"created_at"`
}

func (MenuItem) TableName() string {
	return "restaurant_menuitem"
}

// Variations returns the price map of a multiple-priced item. Values that are
// not whole numbers are skipped.
func (m *MenuItem) Variations() map[string]int64 {
	out := make(map[string]int64, len(m.PriceVariations))
	for name, raw := range m.PriceVariations {
		if price, ok := toInt64(raw); ok {
			out[name] = price
		}
	}
	return out
}

func SetVariations(variations map[string]int64) datatypes.JSONMap {
	if variations == nil {
		return nil
	}
	out := make(datatypes.JSONMap, len(variations))
	for name, price := range variations {
		out[name] = price
	}
	return out
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil && f == math.Trunc(f) {
			return int64(f), true
		}
	}
	return 0, false
}
