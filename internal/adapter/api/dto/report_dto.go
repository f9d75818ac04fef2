package dto

import (
	"github.com/varejotech/backoffice-api/internal/domain/report"
)

// LowStockResponse representa a resposta do relatório de estoque baixo
type LowStockResponse struct {
	Threshold int                   `json:"threshold"`
	Items     []report.LowStockItem `json:"items"`
}

// InventoryValueResponse representa a resposta do relatório de valor do
// inventário
type InventoryValueResponse struct {
	TotalValue    float64 `json:"total_value"`
	TotalQuantity int     `json:"total_quantity"`
	ItemCount     int     `json:"item_count"`
}

// ToInventoryValueResponse converte o resumo do inventário para DTO
func ToInventoryValueResponse(v *report.InventoryValue) *InventoryValueResponse {
	return &InventoryValueResponse{
		TotalValue:    v.TotalValue.InexactFloat64(),
		TotalQuantity: v.TotalQuantity,
		ItemCount:     v.ItemCount,
	}
}
