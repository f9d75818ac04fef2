package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/varejotech/backoffice-api/internal/domain/purchase"
	"github.com/varejotech/backoffice-api/pkg/numeric"
)

// Erros específicos do repositório
var (
	ErrPurchaseOrderNotFound = errors.New("pedido de compra não encontrado")
)

// PurchaseOrderRepository implementa a interface purchase.Repository
type PurchaseOrderRepository struct {
	db *pgxpool.Pool
}

// NewPurchaseOrderRepository cria uma nova instância de PurchaseOrderRepository
func NewPurchaseOrderRepository(db *pgxpool.Pool) purchase.Repository {
	return &PurchaseOrderRepository{
		db: db,
	}
}

// Create implementa purchase.Repository.Create
func (r *PurchaseOrderRepository) Create(ctx context.Context, po *purchase.PurchaseOrder) error {
	// Atribuir o número sequencial do pedido
	var seq int64
	if err := r.db.QueryRow(ctx, "SELECT nextval('purchase_order_number_seq')").Scan(&seq); err != nil {
		return fmt.Errorf("erro ao gerar número do pedido: %w", err)
	}
	po.OrderNumber = fmt.Sprintf("PC-%06d", seq)

	lines, err := json.Marshal(po.Lines)
	if err != nil {
		return fmt.Errorf("erro ao converter linhas para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO purchase_orders (
			id, order_number, supplier_name, supplier_email, status, total,
			rejection_reason, lines, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9, $10, $11)`,
		po.ID, po.OrderNumber, po.SupplierName, po.SupplierEmail, po.Status,
		po.Total.String(), po.RejectionReason, lines, po.CreatedBy,
		po.CreatedAt, po.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar pedido de compra: %w", err)
	}

	return nil
}

// FindByID implementa purchase.Repository.FindByID
func (r *PurchaseOrderRepository) FindByID(ctx context.Context, id string) (*purchase.PurchaseOrder, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, order_number, supplier_name, supplier_email, status,
			total, rejection_reason, lines, created_by, created_at, updated_at
		FROM purchase_orders WHERE id = $1`,
		id)

	po, err := scanPurchaseOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPurchaseOrderNotFound
		}
		return nil, fmt.Errorf("erro ao buscar pedido de compra: %w", err)
	}

	return po, nil
}

// List implementa purchase.Repository.List
func (r *PurchaseOrderRepository) List(ctx context.Context, limit, offset int) ([]*purchase.PurchaseOrder, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, order_number, supplier_name, supplier_email, status,
			total, rejection_reason, lines, created_by, created_at, updated_at
		FROM purchase_orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos de compra: %w", err)
	}
	defer rows.Close()

	return scanPurchaseOrderRows(rows)
}

// FindByStatus implementa purchase.Repository.FindByStatus
func (r *PurchaseOrderRepository) FindByStatus(ctx context.Context, st purchase.Status, limit, offset int) ([]*purchase.PurchaseOrder, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, order_number, supplier_name, supplier_email, status,
			total, rejection_reason, lines, created_by, created_at, updated_at
		FROM purchase_orders
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		st, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pedidos de compra: %w", err)
	}
	defer rows.Close()

	return scanPurchaseOrderRows(rows)
}

// Update implementa purchase.Repository.Update
func (r *PurchaseOrderRepository) Update(ctx context.Context, po *purchase.PurchaseOrder) error {
	lines, err := json.Marshal(po.Lines)
	if err != nil {
		return fmt.Errorf("erro ao converter linhas para JSON: %w", err)
	}

	result, err := r.db.Exec(ctx,
		`UPDATE purchase_orders SET
			supplier_name = $1, supplier_email = $2, status = $3,
			total = $4::numeric, rejection_reason = $5, lines = $6,
			updated_at = $7
		WHERE id = $8`,
		po.SupplierName, po.SupplierEmail, po.Status, po.Total.String(),
		po.RejectionReason, lines, po.UpdatedAt, po.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar pedido de compra: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPurchaseOrderNotFound
	}

	return nil
}

// Count implementa purchase.Repository.Count
func (r *PurchaseOrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM purchase_orders").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar pedidos de compra: %w", err)
	}
	return count, nil
}

func scanPurchaseOrder(row pgx.Row) (*purchase.PurchaseOrder, error) {
	var po purchase.PurchaseOrder
	var linesJSON []byte
	var total float64

	err := row.Scan(
		&po.ID, &po.OrderNumber, &po.SupplierName, &po.SupplierEmail,
		&po.Status, &total, &po.RejectionReason, &linesJSON, &po.CreatedBy,
		&po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		return nil, err
	}

	po.Total = numeric.FromFloat(total)

	if err := json.Unmarshal(linesJSON, &po.Lines); err != nil {
		return nil, fmt.Errorf("erro ao converter linhas: %w", err)
	}

	return &po, nil
}

func scanPurchaseOrderRows(rows pgx.Rows) ([]*purchase.PurchaseOrder, error) {
	orders := make([]*purchase.PurchaseOrder, 0)

	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler pedido de compra: %w", err)
		}
		orders = append(orders, po)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return orders, nil
}
