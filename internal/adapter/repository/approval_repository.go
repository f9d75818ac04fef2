package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/varejotech/backoffice-api/internal/domain/approval"
)

// Erros específicos do repositório
var (
	ErrApprovalTaskNotFound = errors.New("tarefa de aprovação não encontrada")
)

// ApprovalRepository implementa a interface approval.Repository
type ApprovalRepository struct {
	db *pgxpool.Pool
}

// NewApprovalRepository cria uma nova instância de ApprovalRepository
func NewApprovalRepository(db *pgxpool.Pool) approval.Repository {
	return &ApprovalRepository{
		db: db,
	}
}

// Create implementa approval.Repository.Create
func (r *ApprovalRepository) Create(ctx context.Context, t *approval.Task) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO approval_tasks (
			id, purchase_order_id, status, approver, comment, requested_at, decided_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.PurchaseOrderID, t.Status, t.Approver, t.Comment,
		t.RequestedAt, t.DecidedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar tarefa de aprovação: %w", err)
	}

	return nil
}

// FindByID implementa approval.Repository.FindByID
func (r *ApprovalRepository) FindByID(ctx context.Context, id string) (*approval.Task, error) {
	var t approval.Task

	err := r.db.QueryRow(ctx,
		`SELECT id, purchase_order_id, status, approver, comment, requested_at, decided_at
		FROM approval_tasks WHERE id = $1`,
		id).Scan(&t.ID, &t.PurchaseOrderID, &t.Status, &t.Approver,
		&t.Comment, &t.RequestedAt, &t.DecidedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApprovalTaskNotFound
		}
		return nil, fmt.Errorf("erro ao buscar tarefa de aprovação: %w", err)
	}

	return &t, nil
}

// List implementa approval.Repository.List
func (r *ApprovalRepository) List(ctx context.Context, limit, offset int) ([]*approval.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, purchase_order_id, status, approver, comment, requested_at, decided_at
		FROM approval_tasks
		ORDER BY requested_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar tarefas de aprovação: %w", err)
	}
	defer rows.Close()

	tasks := make([]*approval.Task, 0)
	for rows.Next() {
		var t approval.Task
		err := rows.Scan(&t.ID, &t.PurchaseOrderID, &t.Status, &t.Approver,
			&t.Comment, &t.RequestedAt, &t.DecidedAt)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler tarefa de aprovação: %w", err)
		}
		tasks = append(tasks, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return tasks, nil
}

// FindPendingByPurchaseOrder implementa approval.Repository.FindPendingByPurchaseOrder
func (r *ApprovalRepository) FindPendingByPurchaseOrder(ctx context.Context, purchaseOrderID string) (*approval.Task, error) {
	var t approval.Task

	err := r.db.QueryRow(ctx,
		`SELECT id, purchase_order_id, status, approver, comment, requested_at, decided_at
		FROM approval_tasks
		WHERE purchase_order_id = $1 AND status = $2`,
		purchaseOrderID, approval.StatusPending).Scan(&t.ID, &t.PurchaseOrderID,
		&t.Status, &t.Approver, &t.Comment, &t.RequestedAt, &t.DecidedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApprovalTaskNotFound
		}
		return nil, fmt.Errorf("erro ao buscar tarefa pendente: %w", err)
	}

	return &t, nil
}

// Update implementa approval.Repository.Update
func (r *ApprovalRepository) Update(ctx context.Context, t *approval.Task) error {
	result, err := r.db.Exec(ctx,
		`UPDATE approval_tasks SET
			status = $1, approver = $2, comment = $3, decided_at = $4
		WHERE id = $5`,
		t.Status, t.Approver, t.Comment, t.DecidedAt, t.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar tarefa de aprovação: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrApprovalTaskNotFound
	}

	return nil
}

// Count implementa approval.Repository.Count
func (r *ApprovalRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM approval_tasks`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar tarefas de aprovação: %w", err)
	}
	return count, nil
}
