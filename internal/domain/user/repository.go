package user

import (
	"context"
)

// Repository define a interface para operações de repositório de usuários
type Repository interface {
	// Create cria um novo usuário
	Create(ctx context.Context, u *User) error

	// FindByID busca um usuário pelo ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail busca um usuário pelo email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List lista os usuários com paginação
	List(ctx context.Context, limit, offset int) ([]*User, error)

	// Update atualiza os dados de um usuário existente
	Update(ctx context.Context, u *User) error

	// Delete remove um usuário do sistema
	Delete(ctx context.Context, id string) error

	// UpdateActive ativa ou desativa um usuário
	UpdateActive(ctx context.Context, id string, active bool) error

	// UpdatePassword atualiza a senha de um usuário
	UpdatePassword(ctx context.Context, id, hashedPassword string) error

	// UpdateLastLogin atualiza o timestamp de último login do usuário
	UpdateLastLogin(ctx context.Context, id string) error

	// ExistsByEmail verifica se já existe usuário com o email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Count conta quantos usuários existem
	Count(ctx context.Context) (int, error)
}
