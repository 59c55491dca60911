package services

import (
	"errors"
	"fmt"
	"sort"

	"seaside_restaurant/internal/models"
)

var (
	ErrInvalidVariation  = errors.New("invalid variation for this item")
	ErrPriceNotAvailable = errors.New("price not available for this item")
)

// ResolveUnitPrice returns the price of one unit of item. Single-priced items
// ignore variation; multiple-priced items need an exact key of the variation map.
func ResolveUnitPrice(item *models.MenuItem, variation string) (int64, error) {
	if item.PricingType == models.PricingSingle {
		if item.Price == nil {
			return 0, ErrPriceNotAvailable
		}
		return *item.Price, nil
	}

	if variation == "" {
		return 0, ErrInvalidVariation
	}
	price, ok := item.Variations()[variation]
	if !ok {
		return 0, ErrInvalidVariation
	}
	return price, nil
}

// PricingStyle selects between the two menu pricing shapes.
type PricingStyle int

const (
	// PricingDetailed labels variations "variation" and adds min/max.
	PricingDetailed PricingStyle = iota
	// PricingCompact labels variations "size" and omits min/max.
	PricingCompact
)

func DisplayPrice(price int64) string {
	return fmt.Sprintf("₹%d", price)
}

const priceNotAvailable = "Price not available"

type variationPrice struct {
	name  string
	price int64
}

func sortedVariations(item *models.MenuItem) []variationPrice {
	vars := item.Variations()
	out := make([]variationPrice, 0, len(vars))
	for name, price := range vars {
		out = append(out, variationPrice{name: name, price: price})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].price != out[j].price {
			return out[i].price < out[j].price
		}
		return out[i].name < out[j].name
	})
	return out
}

// BuildPricing renders the "pricing" object shown on menu listings.
func BuildPricing(item *models.MenuItem, style PricingStyle) map[string]interface{} {
	if item.PricingType == models.PricingSingle {
		if item.Price == nil || *item.Price == 0 {
			return map[string]interface{}{
				"type":          models.PricingSingle,
				"price":         nil,
				"display_price": priceNotAvailable,
			}
		}
		return map[string]interface{}{
			"type":          models.PricingSingle,
			"price":         *item.Price,
			"display_price": DisplayPrice(*item.Price),
		}
	}

	label := "variation"
	if style == PricingCompact {
		label = "size"
	}

	vars := sortedVariations(item)
	list := make([]map[string]interface{}, 0, len(vars))
	for _, v := range vars {
		list = append(list, map[string]interface{}{
			label:           v.name,
			"price":         v.price,
			"display_price": DisplayPrice(v.price),
		})
	}

	pricing := map[string]interface{}{
		"type":          models.PricingMultiple,
		"variations":    list,
		"starting_from": priceNotAvailable,
	}
	if style == PricingDetailed {
		pricing["min_price"] = nil
		pricing["max_price"] = nil
	}
	if len(vars) > 0 {
		pricing["starting_from"] = DisplayPrice(vars[0].price)
		if style == PricingDetailed {
			pricing["min_price"] = vars[0].price
			pricing["max_price"] = vars[len(vars)-1].price
		}
	}
	return pricing
}
