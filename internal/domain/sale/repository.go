package sale

import (
	"context"

	"github.com/varejotech/backoffice-api/internal/domain/status"
)

// Repository define a interface para operações de repositório de vendas
type Repository interface {
	// Create cria uma nova venda
	Create(ctx context.Context, s *Sale) error

	// FindByID busca uma venda pelo ID
	FindByID(ctx context.Context, id string) (*Sale, error)

	// List lista as vendas com paginação
	List(ctx context.Context, limit, offset int) ([]*Sale, error)

	// FindByStatus busca vendas por status
	FindByStatus(ctx context.Context, st status.SaleStatus, limit, offset int) ([]*Sale, error)

	// Update persiste o estado atual da venda
	Update(ctx context.Context, s *Sale) error

	// Count conta quantas vendas existem
	Count(ctx context.Context) (int, error)
}
