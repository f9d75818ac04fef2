package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/varejotech/backoffice-api/internal/domain/sale"
	"github.com/varejotech/backoffice-api/internal/domain/status"
	"github.com/varejotech/backoffice-api/pkg/numeric"
)

// Erros específicos do repositório
var (
	ErrSaleNotFound = errors.New("venda não encontrada")
)

// SaleRepository implementa a interface sale.Repository
type SaleRepository struct {
	db *pgxpool.Pool
}

// NewSaleRepository cria uma nova instância de SaleRepository
func NewSaleRepository(db *pgxpool.Pool) sale.Repository {
	return &SaleRepository{
		db: db,
	}
}

// Create implementa sale.Repository.Create
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return fmt.Errorf("erro ao converter itens para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO sales (
			id, sale_date, customer_name, customer_email, customer_phone,
			status, total, items, location, actor, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9, $10, $11, $12, $13)`,
		s.ID, s.SaleDate, s.CustomerName, s.CustomerEmail, s.CustomerPhone,
		s.Status, s.Total.String(), items, s.Location, s.Actor, s.CreatedBy,
		s.CreatedAt, s.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar venda: %w", err)
	}

	return nil
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, sale_date, customer_name, customer_email, customer_phone,
			status, total, items, location, actor, created_by, created_at, updated_at
		FROM sales WHERE id = $1`,
		id)

	s, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("erro ao buscar venda: %w", err)
	}

	return s, nil
}

// List implementa sale.Repository.List
func (r *SaleRepository) List(ctx context.Context, limit, offset int) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sale_date, customer_name, customer_email, customer_phone,
			status, total, items, location, actor, created_by, created_at, updated_at
		FROM sales
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}
	defer rows.Close()

	return scanSaleRows(rows)
}

// FindByStatus implementa sale.Repository.FindByStatus
func (r *SaleRepository) FindByStatus(ctx context.Context, st status.SaleStatus, limit, offset int) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sale_date, customer_name, customer_email, customer_phone,
			status, total, items, location, actor, created_by, created_at, updated_at
		FROM sales
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		st, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar vendas: %w", err)
	}
	defer rows.Close()

	return scanSaleRows(rows)
}

// Update implementa sale.Repository.Update
func (r *SaleRepository) Update(ctx context.Context, s *sale.Sale) error {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return fmt.Errorf("erro ao converter itens para JSON: %w", err)
	}

	result, err := r.db.Exec(ctx,
		`UPDATE sales SET
			customer_name = $1, customer_email = $2, customer_phone = $3,
			status = $4, total = $5::numeric, items = $6, location = $7,
			actor = $8, updated_at = $9
		WHERE id = $10`,
		s.CustomerName, s.CustomerEmail, s.CustomerPhone, s.Status,
		s.Total.String(), items, s.Location, s.Actor, s.UpdatedAt, s.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar venda: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSaleNotFound
	}

	return nil
}

// Count implementa sale.Repository.Count
func (r *SaleRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM sales").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar vendas: %w", err)
	}
	return count, nil
}

func scanSale(row pgx.Row) (*sale.Sale, error) {
	var s sale.Sale
	var itemsJSON []byte
	var total float64

	err := row.Scan(
		&s.ID, &s.SaleDate, &s.CustomerName, &s.CustomerEmail,
		&s.CustomerPhone, &s.Status, &total, &itemsJSON, &s.Location,
		&s.Actor, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	s.Total = numeric.FromFloat(total)

	if err := json.Unmarshal(itemsJSON, &s.Items); err != nil {
		return nil, fmt.Errorf("erro ao converter itens: %w", err)
	}

	return &s, nil
}

func scanSaleRows(rows pgx.Rows) ([]*sale.Sale, error) {
	sales := make([]*sale.Sale, 0)

	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler venda: %w", err)
		}
		sales = append(sales, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return sales, nil
}
