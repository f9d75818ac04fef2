package dto

import (
	"time"

	"github.com/varejotech/backoffice-api/internal/domain/sale"
	"github.com/varejotech/backoffice-api/internal/domain/status"
	"github.com/varejotech/backoffice-api/pkg/numeric"
)

// SaleItemRequest representa a requisição de item da venda
type SaleItemRequest struct {
	ProductID string         `json:"product_id" binding:"required"`
	VariantID string         `json:"variant_id"`
	Quantity  int            `json:"quantity" binding:"required"`
	UnitPrice numeric.Amount `json:"unit_price"`
}

// SaleRequest representa a requisição de criação de venda
type SaleRequest struct {
	CustomerName  string            `json:"customer_name" binding:"required"`
	CustomerEmail string            `json:"customer_email"`
	CustomerPhone string            `json:"customer_phone"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1"`
}

// SaleItemResponse representa a resposta de item da venda
type SaleItemResponse struct {
	ProductID string         `json:"product_id"`
	VariantID string         `json:"variant_id"`
	Quantity  int            `json:"quantity"`
	UnitPrice numeric.Amount `json:"unit_price"`
	Total     numeric.Amount `json:"total"`
}

// SaleResponse representa a resposta de venda com o rótulo e a cor de
// exibição do status
type SaleResponse struct {
	ID            string             `json:"id"`
	SaleDate      time.Time          `json:"sale_date"`
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	CustomerPhone string             `json:"customer_phone"`
	Status        status.SaleStatus  `json:"status"`
	StatusLabel   string             `json:"status_label"`
	StatusColor   string             `json:"status_color"`
	Total         numeric.Amount     `json:"total"`
	Items         []SaleItemResponse `json:"items"`
	Location      string             `json:"location,omitempty"`
	Actor         string             `json:"actor,omitempty"`
	CreatedBy     string             `json:"created_by"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// SaleListResponse representa a resposta de lista de vendas
type SaleListResponse struct {
	Items      []SaleResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalPages int            `json:"total_pages"`
}

// ToSaleResponse converte uma venda do domínio para DTO
func ToSaleResponse(s *sale.Sale) *SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = SaleItemResponse{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		}
	}

	st := status.NormalizeSale(string(s.Status))

	return &SaleResponse{
		ID:            s.ID,
		SaleDate:      s.SaleDate,
		CustomerName:  s.CustomerName,
		CustomerEmail: s.CustomerEmail,
		CustomerPhone: s.CustomerPhone,
		Status:        st,
		StatusLabel:   st.Label(),
		StatusColor:   st.Color(),
		Total:         s.Total,
		Items:         items,
		Location:      s.Location,
		Actor:         s.Actor,
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToSaleListResponse converte uma lista de vendas do domínio para DTO
func ToSaleListResponse(sales []*sale.Sale, total, page, size, totalPages int) *SaleListResponse {
	items := make([]SaleResponse, len(sales))
	for i, s := range sales {
		items[i] = *ToSaleResponse(s)
	}

	return &SaleListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	}
}
