package domain

import "github.com/shopspring/decimal"

// Category groups products. Listings are ordered by name.
type Category struct {
	CategoryID  string `json:"categoryID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Timestamps
}

// Product is plain reference data shown in the storefront.
type Product struct {
	ProductID   string          `json:"productID"`
	CategoryID  string          `json:"categoryID"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	IsActive    bool            `json:"isActive"`
	ImageURL    string          `json:"imageURL,omitempty"`
	Timestamps
}
