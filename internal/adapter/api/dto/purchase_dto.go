package dto

import (
	"time"

	"github.com/varejotech/backoffice-api/internal/domain/purchase"
	"github.com/varejotech/backoffice-api/internal/domain/status"
	"github.com/varejotech/backoffice-api/pkg/numeric"
)

// PurchaseOrderLineRequest representa a requisição de linha do pedido de compra
type PurchaseOrderLineRequest struct {
	ProductID string         `json:"product_id" binding:"required"`
	VariantID string         `json:"variant_id"`
	Quantity  int            `json:"quantity" binding:"required"`
	UnitPrice numeric.Amount `json:"unit_price"`
}

// PurchaseOrderRequest representa a requisição de criação de pedido de compra
type PurchaseOrderRequest struct {
	SupplierName  string                     `json:"supplier_name" binding:"required"`
	SupplierEmail string                     `json:"supplier_email"`
	Lines         []PurchaseOrderLineRequest `json:"lines" binding:"required,min=1"`
}

// ReceiveLineRequest representa a requisição de recebimento de uma linha
type ReceiveLineRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// PurchaseOrderLineResponse representa a resposta de linha do pedido de compra
type PurchaseOrderLineResponse struct {
	ID               string         `json:"id"`
	ProductID        string         `json:"product_id"`
	VariantID        string         `json:"variant_id"`
	Quantity         int            `json:"quantity"`
	UnitPrice        numeric.Amount `json:"unit_price"`
	Total            numeric.Amount `json:"total"`
	ReceivedQuantity int            `json:"received_quantity"`
	Remaining        int            `json:"remaining"`
}

// PurchaseOrderResponse representa a resposta de pedido de compra. O status
// nativo do backend é devolvido junto com a forma canônica, o rótulo e a cor
// usados na exibição.
type PurchaseOrderResponse struct {
	ID              string                      `json:"id"`
	OrderNumber     string                      `json:"order_number"`
	SupplierName    string                      `json:"supplier_name"`
	SupplierEmail   string                      `json:"supplier_email"`
	Status          string                      `json:"status"`
	CanonicalStatus status.PurchaseStatus       `json:"canonical_status"`
	StatusLabel     string                      `json:"status_label"`
	StatusColor     string                      `json:"status_color"`
	Total           numeric.Amount              `json:"total"`
	RejectionReason string                      `json:"rejection_reason,omitempty"`
	Lines           []PurchaseOrderLineResponse `json:"lines"`
	CreatedBy       string                      `json:"created_by"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

// PurchaseOrderListResponse representa a resposta de lista de pedidos de compra
type PurchaseOrderListResponse struct {
	Items      []PurchaseOrderResponse `json:"items"`
	Total      int                     `json:"total"`
	Page       int                     `json:"page"`
	Size       int                     `json:"size"`
	TotalPages int                     `json:"total_pages"`
}

// ToPurchaseOrderResponse converte um pedido de compra do domínio para DTO
func ToPurchaseOrderResponse(po *purchase.PurchaseOrder) *PurchaseOrderResponse {
	lines := make([]PurchaseOrderLineResponse, len(po.Lines))
	for i, l := range po.Lines {
		lines[i] = PurchaseOrderLineResponse{
			ID:               l.ID,
			ProductID:        l.ProductID,
			VariantID:        l.VariantID,
			Quantity:         l.Quantity,
			UnitPrice:        l.UnitPrice,
			Total:            l.Total,
			ReceivedQuantity: l.ReceivedQuantity,
			Remaining:        l.Remaining(),
		}
	}

	canonical := status.NormalizePurchase(string(po.Status))

	return &PurchaseOrderResponse{
		ID:              po.ID,
		OrderNumber:     po.OrderNumber,
		SupplierName:    po.SupplierName,
		SupplierEmail:   po.SupplierEmail,
		Status:          string(po.Status),
		CanonicalStatus: canonical,
		StatusLabel:     canonical.Label(),
		StatusColor:     canonical.Color(),
		Total:           po.Total,
		RejectionReason: po.RejectionReason,
		Lines:           lines,
		CreatedBy:       po.CreatedBy,
		CreatedAt:       po.CreatedAt,
		UpdatedAt:       po.UpdatedAt,
	}
}

// ToPurchaseOrderListResponse converte uma lista de pedidos do domínio para DTO
func ToPurchaseOrderListResponse(orders []*purchase.PurchaseOrder, total, page, size, totalPages int) *PurchaseOrderListResponse {
	items := make([]PurchaseOrderResponse, len(orders))
	for i, po := range orders {
		items[i] = *ToPurchaseOrderResponse(po)
	}

	return &PurchaseOrderListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	}
}
