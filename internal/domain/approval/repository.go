package approval

import (
	"context"
)

// Repository define a interface para operações de repositório de tarefas de
// aprovação
type Repository interface {
	// Create cria uma nova tarefa de aprovação
	Create(ctx context.Context, t *Task) error

	// FindByID busca uma tarefa pelo ID
	FindByID(ctx context.Context, id string) (*Task, error)

	// List lista as tarefas em todos os status; o filtro por status é um
	// predicado do lado do consumidor
	List(ctx context.Context, limit, offset int) ([]*Task, error)

	// FindPendingByPurchaseOrder busca a tarefa pendente de um pedido
	FindPendingByPurchaseOrder(ctx context.Context, purchaseOrderID string) (*Task, error)

	// Update persiste a decisão da tarefa
	Update(ctx context.Context, t *Task) error

	// Count conta quantas tarefas existem
	Count(ctx context.Context) (int, error)
}
