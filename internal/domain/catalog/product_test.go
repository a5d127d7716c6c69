package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		wantErr bool
	}{
		{"valid", Product{ID: "p-1", Name: "Desk Lamp", Price: decimal.NewFromInt(1000)}, false},
		{"missing id", Product{Name: "Desk Lamp", Price: decimal.NewFromInt(1000)}, true},
		{"missing name", Product{ID: "p-1", Price: decimal.NewFromInt(1000)}, true},
		{"negative price", Product{ID: "p-1", Name: "Desk Lamp", Price: decimal.NewFromInt(-5)}, true},
		{"zero price allowed", Product{ID: "p-1", Name: "Freebie", Price: decimal.Zero}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProduct_Validate_NormalizesSoftFields(t *testing.T) {
	zero := decimal.Zero
	p := Product{
		ID:            "p-1",
		Name:          "Desk Lamp",
		Price:         decimal.NewFromInt(1000),
		DiscountPrice: &zero,
		Rating:        7.3,
		SalesCount:    -4,
	}

	require.NoError(t, p.Validate())
	assert.Nil(t, p.DiscountPrice, "non-positive discount is dropped")
	assert.Equal(t, 5.0, p.Rating)
	assert.Equal(t, 0, p.SalesCount)
}

func TestProduct_Summary(t *testing.T) {
	discount := decimal.NewFromInt(800)
	p := Product{
		ID:            "p-1",
		Name:          "Desk Lamp",
		Price:         decimal.NewFromInt(1000),
		DiscountPrice: &discount,
		ImageURL:      "https://cdn.example.com/lamp.jpg",
		Rating:        4.5,
	}

	s := p.Summary()
	assert.Equal(t, "p-1", s.ID)
	assert.True(t, s.Price.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, s.DiscountPrice)
	assert.True(t, s.DiscountPrice.Equal(discount))

	// The summary holds a copy, not a reference into the catalog record
	*p.DiscountPrice = decimal.NewFromInt(1)
	assert.True(t, s.DiscountPrice.Equal(discount))
}
