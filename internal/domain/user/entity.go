package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyName   = errors.New("nome não pode ser vazio")
	ErrEmptyEmail  = errors.New("email não pode ser vazio")
	ErrInvalidRole = errors.New("papel de usuário inválido")
)

// Role representa o papel/função do usuário
type Role string

// Papéis reconhecidos pelo back-office
const (
	RoleAdmin             Role = "ADMIN"           // Administrador do sistema
	RoleManager           Role = "GESTOR"          // Gestor geral
	RoleSalesperson       Role = "VENDEDOR"        // Vendedor
	RolePurchasingManager Role = "GERENTE_COMPRAS" // Gerente de compras
)

// ValidRole verifica se o papel informado é reconhecido
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSalesperson, RolePurchasingManager:
		return true
	}
	return false
}

// User representa um usuário do back-office. Ativação e desativação são
// transições explícitas e reversíveis, distintas da exclusão.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"-"` // O hash da senha não é retornado nas respostas JSON
	Role        Role      `json:"role"`
	Active      bool      `json:"active"`
	LastLoginAt time.Time `json:"last_login_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewUser cria um novo usuário ativo
func NewUser(name, email string, role Role) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmptyEmail
	}
	if !ValidRole(role) {
		return nil, ErrInvalidRole
	}

	now := time.Now()
	return &User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Role:      role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Update atualiza os dados cadastrais do usuário
func (u *User) Update(name, email string, role Role) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(email) == "" {
		return ErrEmptyEmail
	}
	if !ValidRole(role) {
		return ErrInvalidRole
	}
	u.Name = name
	u.Email = email
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}

// IsActive verifica se o usuário está ativo
func (u *User) IsActive() bool {
	return u.Active
}

// IsAdmin verifica se o usuário é um administrador
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Activate ativa o usuário
func (u *User) Activate() {
	u.Active = true
	u.UpdatedAt = time.Now()
}

// Deactivate desativa o usuário sem removê-lo
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
}
