package report

import (
	"context"

	"github.com/varejotech/backoffice-api/pkg/numeric"
)

// LowStockItem representa uma variação com estoque abaixo do limite
type LowStockItem struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	VariationID   string `json:"variation_id"`
	VariationName string `json:"variation_name"`
	SKU           string `json:"sku"`
	Quantity      int    `json:"quantity"`
}

// InventoryValue resume o valor total do inventário ativo
type InventoryValue struct {
	TotalValue    numeric.Amount `json:"total_value"`
	TotalQuantity int            `json:"total_quantity"`
	ItemCount     int            `json:"item_count"`
}

// Turnover mede a rotação de estoque de uma variação numa janela de dias.
// A taxa divide as unidades vendidas pelo estoque atual, tratando estoque
// zerado como um para evitar divisão por zero.
type Turnover struct {
	VariationID  string  `json:"variation_id"`
	WindowDays   int     `json:"window_days"`
	SoldUnits    int     `json:"sold_units"`
	CurrentStock int     `json:"current_stock"`
	Rate         float64 `json:"rate"`
}

// DaysOfSupply estima em quantos dias o estoque da variação se esgota
// dado um consumo diário informado
type DaysOfSupply struct {
	VariationID      string  `json:"variation_id"`
	Quantity         int     `json:"quantity"`
	DailyConsumption float64 `json:"daily_consumption"`
	Days             float64 `json:"days"`
}

// Repository define a interface para os relatórios de leitura
type Repository interface {
	// LowStock lista variações com quantidade abaixo do limite
	LowStock(ctx context.Context, threshold int) ([]LowStockItem, error)

	// InventoryValue calcula o valor total do inventário
	InventoryValue(ctx context.Context) (*InventoryValue, error)

	// Turnover calcula a rotação de estoque de uma variação
	Turnover(ctx context.Context, variationID string, windowDays int) (*Turnover, error)

	// DaysOfSupply estima os dias de cobertura de estoque de uma variação
	DaysOfSupply(ctx context.Context, variationID string, dailyConsumption float64) (*DaysOfSupply, error)
}
