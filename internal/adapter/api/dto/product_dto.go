package dto

import (
	"time"

	"github.com/varejotech/backoffice-api/internal/domain/product"
	"github.com/varejotech/backoffice-api/pkg/numeric"
)

// ProductVariationRequest representa a requisição de variação do produto
type ProductVariationRequest struct {
	Name     string         `json:"name"`
	SKU      string         `json:"sku" binding:"required"`
	Price    numeric.Amount `json:"price"`
	Quantity int            `json:"quantity"`
}

// ProductRequest representa a requisição de criação de produto
type ProductRequest struct {
	Name         string                    `json:"name" binding:"required"`
	Description  string                    `json:"description"`
	Category     string                    `json:"category"`
	DefaultPrice numeric.Amount            `json:"default_price"`
	PhotoBase64  string                    `json:"photo_base64"`
	Variations   []ProductVariationRequest `json:"variations"`
}

// ProductUpdateRequest representa a requisição de atualização de produto
type ProductUpdateRequest struct {
	Name         string         `json:"name" binding:"required"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	Status       product.Status `json:"status"`
	DefaultPrice numeric.Amount `json:"default_price"`
	PhotoBase64  string         `json:"photo_base64"`
}

// ProductVariationResponse representa a resposta de variação do produto
type ProductVariationResponse struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	SKU              string         `json:"sku"`
	Price            numeric.Amount `json:"price"`
	Quantity         int            `json:"quantity"`
	ReservedQuantity int            `json:"reserved_quantity"`
	Available        int            `json:"available"`
}

// ProductResponse representa a resposta de produto
type ProductResponse struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Description  string                     `json:"description"`
	Category     string                     `json:"category"`
	Status       product.Status             `json:"status"`
	DefaultPrice numeric.Amount             `json:"default_price"`
	PhotoBase64  string                     `json:"photo_base64,omitempty"`
	Variations   []ProductVariationResponse `json:"variations"`
	CreatedAt    time.Time                  `json:"created_at"`
	UpdatedAt    time.Time                  `json:"updated_at"`
	DeletedAt    *time.Time                 `json:"deleted_at,omitempty"`
	DeletedBy    string                     `json:"deleted_by,omitempty"`
}

// ProductListResponse representa a resposta de lista de produtos
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	TotalPages int               `json:"total_pages"`
}

// ToProductResponse converte um produto do domínio para DTO
func ToProductResponse(p *product.Product) *ProductResponse {
	variations := make([]ProductVariationResponse, len(p.Variations))
	for i, v := range p.Variations {
		variations[i] = ProductVariationResponse{
			ID:               v.ID,
			Name:             v.Name,
			SKU:              v.SKU,
			Price:            v.Price,
			Quantity:         v.Quantity,
			ReservedQuantity: v.ReservedQuantity,
			Available:        v.Available(),
		}
	}

	return &ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Status:       p.Status,
		DefaultPrice: p.DefaultPrice,
		PhotoBase64:  p.PhotoBase64,
		Variations:   variations,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		DeletedAt:    p.DeletedAt,
		DeletedBy:    p.DeletedBy,
	}
}

// ToProductListResponse converte uma lista de produtos do domínio para DTO
func ToProductListResponse(products []*product.Product, total, page, size, totalPages int) *ProductListResponse {
	items := make([]ProductResponse, len(products))
	for i, p := range products {
		items[i] = *ToProductResponse(p)
	}

	return &ProductListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	}
}
