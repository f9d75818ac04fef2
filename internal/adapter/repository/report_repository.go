package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/varejotech/backoffice-api/internal/domain/report"
	"github.com/varejotech/backoffice-api/pkg/numeric"
)

// Erros específicos do repositório
var (
	ErrVariationNotFound = errors.New("variação não encontrada")
)

// ReportRepository implementa a interface report.Repository com consultas
// de leitura sobre as variações dos produtos e os itens das vendas
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository cria uma nova instância de ReportRepository
func NewReportRepository(db *pgxpool.Pool) report.Repository {
	return &ReportRepository{
		db: db,
	}
}

// LowStock implementa report.Repository.LowStock
func (r *ReportRepository) LowStock(ctx context.Context, threshold int) ([]report.LowStockItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.name, v->>'id', v->>'name', v->>'sku', (v->>'quantity')::int
		FROM products p, jsonb_array_elements(p.variations) v
		WHERE p.deleted_at IS NULL AND (v->>'quantity')::int < $1
		ORDER BY (v->>'quantity')::int, p.name`,
		threshold)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar estoque baixo: %w", err)
	}
	defer rows.Close()

	items := make([]report.LowStockItem, 0)
	for rows.Next() {
		var item report.LowStockItem
		err := rows.Scan(&item.ProductID, &item.ProductName, &item.VariationID,
			&item.VariationName, &item.SKU, &item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler item de estoque baixo: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return items, nil
}

// InventoryValue implementa report.Repository.InventoryValue
func (r *ReportRepository) InventoryValue(ctx context.Context) (*report.InventoryValue, error) {
	var totalValue float64
	var totalQuantity, itemCount int

	err := r.db.QueryRow(ctx,
		`SELECT
			COALESCE(SUM((v->>'quantity')::numeric * (v->>'price')::numeric), 0),
			COALESCE(SUM((v->>'quantity')::int), 0),
			COUNT(*)
		FROM products p, jsonb_array_elements(p.variations) v
		WHERE p.deleted_at IS NULL`).Scan(&totalValue, &totalQuantity, &itemCount)
	if err != nil {
		return nil, fmt.Errorf("erro ao calcular valor do inventário: %w", err)
	}

	return &report.InventoryValue{
		TotalValue:    numeric.FromFloat(totalValue),
		TotalQuantity: totalQuantity,
		ItemCount:     itemCount,
	}, nil
}

// Turnover implementa report.Repository.Turnover
func (r *ReportRepository) Turnover(ctx context.Context, variationID string, windowDays int) (*report.Turnover, error) {
	stock, err := r.variationStock(ctx, variationID)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -windowDays)

	var soldUnits int
	err = r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM((i->>'quantity')::int), 0)
		FROM sales s, jsonb_array_elements(s.items) i
		WHERE i->>'variant_id' = $1
			AND s.status IN ('CONFIRMED', 'SHIPPED', 'PAID', 'DELIVERED')
			AND s.sale_date >= $2`,
		variationID, since).Scan(&soldUnits)
	if err != nil {
		return nil, fmt.Errorf("erro ao somar unidades vendidas: %w", err)
	}

	// Estoque zerado conta como um para a divisão nunca estourar
	divisor := stock
	if divisor < 1 {
		divisor = 1
	}

	return &report.Turnover{
		VariationID:  variationID,
		WindowDays:   windowDays,
		SoldUnits:    soldUnits,
		CurrentStock: stock,
		Rate:         float64(soldUnits) / float64(divisor),
	}, nil
}

// DaysOfSupply implementa report.Repository.DaysOfSupply
func (r *ReportRepository) DaysOfSupply(ctx context.Context, variationID string, dailyConsumption float64) (*report.DaysOfSupply, error) {
	stock, err := r.variationStock(ctx, variationID)
	if err != nil {
		return nil, err
	}

	result := &report.DaysOfSupply{
		VariationID:      variationID,
		Quantity:         stock,
		DailyConsumption: dailyConsumption,
	}
	if dailyConsumption > 0 {
		result.Days = float64(stock) / dailyConsumption
	}

	return result, nil
}

// variationStock busca a quantidade atual em estoque da variação
func (r *ReportRepository) variationStock(ctx context.Context, variationID string) (int, error) {
	var quantity int
	err := r.db.QueryRow(ctx,
		`SELECT (v->>'quantity')::int
		FROM products p, jsonb_array_elements(p.variations) v
		WHERE p.deleted_at IS NULL AND v->>'id' = $1`,
		variationID).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrVariationNotFound
		}
		return 0, fmt.Errorf("erro ao buscar estoque da variação: %w", err)
	}
	return quantity, nil
}
