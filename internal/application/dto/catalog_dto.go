package dto

import "time"

// CreateProductRequest body para POST /api/products (montos en centavos).
type CreateProductRequest struct {
	SKU               string `json:"sku"`
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	CategoryID        string `json:"category_id,omitempty"`
	InternalCostCents int64  `json:"internal_cost_cents"`
	PriceCents        int64  `json:"price_cents"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name              string `json:"name,omitempty"`
	Description       string `json:"description,omitempty"`
	CategoryID        *string `json:"category_id,omitempty"`
	InternalCostCents *int64 `json:"internal_cost_cents,omitempty"`
	PriceCents        *int64 `json:"price_cents,omitempty"`
	Active            *bool  `json:"active,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID                string    `json:"id"`
	SKU               string    `json:"sku"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	CategoryID        string    `json:"category_id,omitempty"`
	InternalCostCents int64     `json:"internal_cost_cents"`
	PriceCents        int64     `json:"price_cents"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	ParentID string `json:"parent_id,omitempty"`
}

// UpdateCategoryRequest body para PUT /api/categories/:id.
type UpdateCategoryRequest struct {
	Name     string  `json:"name,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
	Status   string  `json:"status,omitempty"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID       string `json:"id"`
	ParentID string `json:"parent_id,omitempty"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Status   string `json:"status"`
}
