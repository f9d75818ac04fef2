package purchase

import (
	"context"
)

// Repository define a interface para operações de repositório de pedidos de
// compra
type Repository interface {
	// Create cria um novo pedido de compra e atribui o número sequencial
	Create(ctx context.Context, po *PurchaseOrder) error

	// FindByID busca um pedido pelo ID
	FindByID(ctx context.Context, id string) (*PurchaseOrder, error)

	// List lista os pedidos com paginação
	List(ctx context.Context, limit, offset int) ([]*PurchaseOrder, error)

	// FindByStatus busca pedidos por status
	FindByStatus(ctx context.Context, st Status, limit, offset int) ([]*PurchaseOrder, error)

	// Update persiste o estado atual do pedido (status, linhas, totais)
	Update(ctx context.Context, po *PurchaseOrder) error

	// Count conta quantos pedidos existem
	Count(ctx context.Context) (int, error)
}
