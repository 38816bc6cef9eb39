package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountProducts(t *testing.T) {
	tests := []struct {
		name     string
		products string
		want     int
	}{
		{"trailing comma", "apple,banana,", 2},
		{"single with trailing comma", "x,", 1},
		{"no trailing comma drops last", "apple,banana", 1},
		{"single without comma", "apple", 0},
		{"empty", "", 0},
		{"only separator", ",", 1},
		{"empty segments count", "a,,b,", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountProducts(tt.products))
		})
	}
}

func TestProductListMatchesCount(t *testing.T) {
	for _, products := range []string{"apple,banana,", "x,y,", "", "a", "a,,b,"} {
		assert.Len(t, ProductList(products), CountProducts(products), products)
	}
	assert.Equal(t, []string{"apple", "banana"}, ProductList("apple,banana,"))
}

func TestNewOrderRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	o := NewOrder("user-1", "TX1", decimal.RequireFromString("9.99"), "x,y,", now)

	require.NotNil(t, o.UserID)
	assert.Equal(t, "user-1", *o.UserID)
	assert.NotEmpty(t, o.OrderID)
	assert.Equal(t, 2, o.TotalProducts)
	assert.Equal(t, now, o.CreatedAt)
	assert.Equal(t, now, o.UpdatedAt)

	// Re-splitting the stored names reproduces the derived count.
	stored := o.ProductNames
	assert.Equal(t, o.TotalProducts, len(strings.Split(stored, ProductSeparator)[:CountProducts(stored)]))
	assert.Equal(t, o.TotalProducts, CountProducts(stored))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		ok   bool
		want string
	}{
		{"9.99", true, "9.99"},
		{" 10 ", true, "10"},
		{"0", true, "0"},
		{"9.990", true, "9.99"},
		{"9999999999.99", true, "9999999999.99"},
		{"9.999", false, ""},
		{"10000000000", false, ""},
		{"-1", false, ""},
		{"abc", false, ""},
		{"", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseAmount(tt.raw)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
			}
		})
	}
}
