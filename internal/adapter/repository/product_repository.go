package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/varejotech/backoffice-api/internal/domain/product"
	"github.com/varejotech/backoffice-api/pkg/numeric"
)

// Erros específicos do repositório
var (
	ErrProductNotFound = errors.New("produto não encontrado")
)

// ProductRepository implementa a interface product.Repository
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db *pgxpool.Pool) product.Repository {
	return &ProductRepository{
		db: db,
	}
}

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	variations, err := json.Marshal(p.Variations)
	if err != nil {
		return fmt.Errorf("erro ao converter variações para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO products (
			id, name, description, category, status, default_price,
			photo_base64, variations, created_at, updated_at, deleted_at, deleted_by
		) VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.Name, p.Description, p.Category, p.Status,
		p.DefaultPrice.String(), p.PhotoBase64, variations,
		p.CreatedAt, p.UpdatedAt, p.DeletedAt, p.DeletedBy)

	if err != nil {
		return fmt.Errorf("erro ao criar produto: %w", err)
	}

	return nil
}

// FindByID implementa product.Repository.FindByID. Produtos removidos
// continuam recuperáveis pelo ID para consulta de histórico.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, description, category, status, default_price,
			photo_base64, variations, created_at, updated_at, deleted_at, deleted_by
		FROM products WHERE id = $1`,
		id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}

	return p, nil
}

// List implementa product.Repository.List. Produtos com marcador de
// exclusão ficam fora das listagens.
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, category, status, default_price,
			photo_base64, variations, created_at, updated_at, deleted_at, deleted_by
		FROM products
		WHERE deleted_at IS NULL
		ORDER BY name
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	return scanProductRows(rows)
}

// Update implementa product.Repository.Update
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	variations, err := json.Marshal(p.Variations)
	if err != nil {
		return fmt.Errorf("erro ao converter variações para JSON: %w", err)
	}

	result, err := r.db.Exec(ctx,
		`UPDATE products SET
			name = $1, description = $2, category = $3, status = $4,
			default_price = $5::numeric, photo_base64 = $6, variations = $7,
			updated_at = $8, deleted_at = $9, deleted_by = $10
		WHERE id = $11`,
		p.Name, p.Description, p.Category, p.Status, p.DefaultPrice.String(),
		p.PhotoBase64, variations, p.UpdatedAt, p.DeletedAt, p.DeletedBy, p.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar produto: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Count implementa product.Repository.Count
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM products WHERE deleted_at IS NULL").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar produtos: %w", err)
	}
	return count, nil
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	var variationsJSON []byte
	var defaultPrice float64

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Status,
		&defaultPrice, &p.PhotoBase64, &variationsJSON, &p.CreatedAt,
		&p.UpdatedAt, &p.DeletedAt, &p.DeletedBy)
	if err != nil {
		return nil, err
	}

	p.DefaultPrice = numeric.FromFloat(defaultPrice)

	if err := json.Unmarshal(variationsJSON, &p.Variations); err != nil {
		return nil, fmt.Errorf("erro ao converter variações: %w", err)
	}

	return &p, nil
}

func scanProductRows(rows pgx.Rows) ([]*product.Product, error) {
	products := make([]*product.Product, 0)

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler produto: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return products, nil
}
