package product

import (
	"context"
)

// Repository define a interface para operações de repositório de produtos
type Repository interface {
	// Create cria um novo produto
	Create(ctx context.Context, p *Product) error

	// FindByID busca um produto pelo ID, incluindo removidos
	FindByID(ctx context.Context, id string) (*Product, error)

	// List lista os produtos sem marcador de exclusão, com paginação
	List(ctx context.Context, limit, offset int) ([]*Product, error)

	// Update atualiza os dados de um produto existente, inclusive o marcador
	// de exclusão
	Update(ctx context.Context, p *Product) error

	// Count conta os produtos sem marcador de exclusão
	Count(ctx context.Context) (int, error)
}
