package dto

import (
	"time"

	"github.com/varejotech/backoffice-api/internal/domain/user"
)

// UserRequest representa os dados de um usuário para criação ou atualização
type UserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
}

// UserResponse representa a resposta com dados de um usuário
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Active      bool      `json:"active"`
	LastLoginAt time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserListResponse representa a resposta com a lista de usuários paginada
type UserListResponse struct {
	Data       []UserResponse `json:"data"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// ChangePasswordRequest representa os dados para alteração de senha
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// UpdateProfileRequest representa os dados para atualização do próprio perfil
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// ToUserResponse converte um usuário do domínio para DTO de resposta
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Active:      u.Active,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToUserListResponse converte uma lista de usuários do domínio para DTO de resposta paginada
func ToUserListResponse(users []*user.User, totalCount, page, pageSize int) UserListResponse {
	data := make([]UserResponse, len(users))
	for i, u := range users {
		data[i] = ToUserResponse(u)
	}

	totalPages := calculateTotalPages(totalCount, pageSize)

	return UserListResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
