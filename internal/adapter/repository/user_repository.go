package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/varejotech/backoffice-api/internal/domain/user"
)

// Erros específicos do repositório
var (
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrUserDuplicateEmail = errors.New("já existe usuário com este email")
)

// UserRepository implementa a interface user.Repository usando PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository cria uma nova instância de UserRepository
func NewUserRepository(db *pgxpool.Pool) user.Repository {
	return &UserRepository{
		db: db,
	}
}

// Create implementa user.Repository.Create
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (
			id, name, email, password, role, active,
			last_login_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Name, u.Email, u.Password, u.Role, u.Active,
		u.LastLoginAt, u.CreatedAt, u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUserDuplicateEmail
		}
		return fmt.Errorf("erro ao criar usuário: %w", err)
	}

	return nil
}

// FindByID implementa user.Repository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User

	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, password, role, active,
			last_login_at, created_at, updated_at
		FROM users WHERE id = $1`,
		id).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role,
		&u.Active, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}

	return &u, nil
}

// FindByEmail implementa user.Repository.FindByEmail
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User

	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, password, role, active,
			last_login_at, created_at, updated_at
		FROM users WHERE email = $1`,
		email).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role,
		&u.Active, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("erro ao buscar usuário por email: %w", err)
	}

	return &u, nil
}

// List implementa user.Repository.List
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, email, password, role, active,
			last_login_at, created_at, updated_at
		FROM users
		ORDER BY name
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar usuários: %w", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		var u user.User
		err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role,
			&u.Active, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler usuário: %w", err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return users, nil
}

// Update implementa user.Repository.Update
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET
			name = $1, email = $2, role = $3, active = $4, updated_at = $5
		WHERE id = $6`,
		u.Name, u.Email, u.Role, u.Active, u.UpdatedAt, u.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUserDuplicateEmail
		}
		return fmt.Errorf("erro ao atualizar usuário: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete implementa user.Repository.Delete
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao remover usuário: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateActive implementa user.Repository.UpdateActive
func (r *UserRepository) UpdateActive(ctx context.Context, id string, active bool) error {
	result, err := r.db.Exec(ctx,
		"UPDATE users SET active = $1, updated_at = $2 WHERE id = $3",
		active, time.Now(), id)
	if err != nil {
		return fmt.Errorf("erro ao atualizar estado do usuário: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdatePassword implementa user.Repository.UpdatePassword
func (r *UserRepository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	result, err := r.db.Exec(ctx,
		"UPDATE users SET password = $1, updated_at = $2 WHERE id = $3",
		hashedPassword, time.Now(), id)
	if err != nil {
		return fmt.Errorf("erro ao atualizar senha: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin implementa user.Repository.UpdateLastLogin
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		"UPDATE users SET last_login_at = $1 WHERE id = $2",
		time.Now(), id)
	if err != nil {
		return fmt.Errorf("erro ao registrar login: %w", err)
	}
	return nil
}

// ExistsByEmail implementa user.Repository.ExistsByEmail
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)",
		email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar email: %w", err)
	}
	return exists, nil
}

// Count implementa user.Repository.Count
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar usuários: %w", err)
	}
	return count, nil
}
