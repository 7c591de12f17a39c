package model

import (
	"strings"
	"time"
)

// ProductPageSize is the fixed number of products returned per listing page.
const ProductPageSize = 10

// Product represents an item in the catalogue. AverageRating is a denormalized
// aggregate over the product's reviews and is only written by the rating aggregator.
type Product struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	Category      string    `json:"category" db:"category"`
	Price         float64   `json:"price" db:"price"`
	Image         string    `json:"image" db:"image"`
	DateAdded     time.Time `json:"dateAdded" db:"date_added"`
	AverageRating float64   `json:"averageRating" db:"average_rating"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductDetail is a product with its reviews embedded.
type ProductDetail struct {
	Product
	Reviews []Review `json:"reviews"`
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	// Category is an exact-match filter; empty means all categories.
	Category string
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products      []Product `json:"products"`
	Page          int       `json:"page"`
	Pages         int       `json:"pages"`
	TotalProducts int       `json:"totalProducts"`
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Image       string   `json:"image"`
}

// Normalize trims surrounding whitespace from the text fields.
func (r *CreateProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.Image = strings.TrimSpace(r.Image)
}

// ValidationMessage returns the client-facing message for a failed rule.
func (r *CreateProductRequest) ValidationMessage(field, tag string) string {
	switch field {
	case "name":
		return "Product name is required"
	case "description":
		return "Description is required"
	case "category":
		return "Category is required"
	case "price":
		if tag == "required" {
			return "Price is required"
		}
		return "Price must be a non-negative number"
	}
	return ""
}
