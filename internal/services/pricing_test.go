package services

import (
	"testing"

	"seaside_restaurant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v int64) *int64 { return &v }

func TestResolveUnitPrice(t *testing.T) {
	single := &models.MenuItem{Name: "Paneer Tikka", PricingType: models.PricingSingle, Price: price(120)}
	unpriced := &models.MenuItem{Name: "Special", PricingType: models.PricingSingle}
	multi := &models.MenuItem{
		Name:            "Tomato Soup",
		PricingType:     models.PricingMultiple,
		PriceVariations: models.SetVariations(map[string]int64{"Half": 60, "Full": 100}),
	}

	tests := []struct {
		name      string
		item      *models.MenuItem
		variation string
		want      int64
		wantErr   error
	}{
		{"single ignores variation", single, "Large", 120, nil},
		{"single without variation", single, "", 120, nil},
		{"single without a price", unpriced, "", 0, ErrPriceNotAvailable},
		{"multiple with exact key", multi, "Full", 100, nil},
		{"multiple is case sensitive", multi, "full", 0, ErrInvalidVariation},
		{"multiple without variation", multi, "", 0, ErrInvalidVariation},
		{"multiple with unknown key", multi, "Bowl", 0, ErrInvalidVariation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveUnitPrice(tt.item, tt.variation)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPricing(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		p := BuildPricing(&models.MenuItem{PricingType: models.PricingSingle, Price: price(150)}, PricingDetailed)
		assert.Equal(t, "single", p["type"])
		assert.Equal(t, int64(150), p["price"])
		assert.Equal(t, "₹150", p["display_price"])
	})

	t.Run("single without price", func(t *testing.T) {
		p := BuildPricing(&models.MenuItem{PricingType: models.PricingSingle}, PricingDetailed)
		assert.Nil(t, p["price"])
		assert.Equal(t, "Price not available", p["display_price"])
	})

	multi := &models.MenuItem{
		PricingType:     models.PricingMultiple,
		PriceVariations: models.SetVariations(map[string]int64{"Full": 250, "Half": 150, "Quarter": 90}),
	}

	t.Run("multiple detailed", func(t *testing.T) {
		p := BuildPricing(multi, PricingDetailed)
		vars := p["variations"].([]map[string]interface{})
		require.Len(t, vars, 3)
		assert.Equal(t, "Quarter", vars[0]["variation"])
		assert.Equal(t, "Full", vars[2]["variation"])
		assert.Equal(t, "₹90", p["starting_from"])
		assert.Equal(t, int64(90), p["min_price"])
		assert.Equal(t, int64(250), p["max_price"])
	})

	t.Run("multiple compact", func(t *testing.T) {
		p := BuildPricing(multi, PricingCompact)
		vars := p["variations"].([]map[string]interface{})
		assert.Equal(t, "Quarter", vars[0]["size"])
		assert.NotContains(t, p, "min_price")
	})

	t.Run("multiple without variations", func(t *testing.T) {
		p := BuildPricing(&models.MenuItem{PricingType: models.PricingMultiple}, PricingDetailed)
		assert.Equal(t, "Price not available", p["starting_from"])
		assert.Nil(t, p["min_price"])
		assert.Empty(t, p["variations"])
	})
}
