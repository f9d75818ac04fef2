package product

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/varejotech/backoffice-api/pkg/numeric"
)

var (
	ErrEmptyName      = errors.New("nome não pode ser vazio")
	ErrEmptySKU       = errors.New("sku não pode ser vazio")
	ErrAlreadyDeleted = errors.New("produto já foi removido")
)

// Status representa o estado do produto no catálogo
type Status string

const (
	StatusActive   Status = "ACTIVO"
	StatusInactive Status = "INACTIVO"
	StatusArchived Status = "ARQUIVADO"
)

// Variation representa uma variação do produto com o seu estoque.
// A quantidade reservada corresponde a vendas confirmadas ainda não enviadas.
type Variation struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	SKU              string         `json:"sku"`
	Price            numeric.Amount `json:"price"`
	Quantity         int            `json:"quantity"`
	ReservedQuantity int            `json:"reserved_quantity"`
}

// Available retorna a quantidade disponível (estoque menos reservas)
func (v *Variation) Available() int {
	return v.Quantity - v.ReservedQuantity
}

// Product representa um produto do catálogo. A remoção é sempre lógica:
// produtos removidos carregam o marcador de exclusão e saem das listagens
// ativas sem serem apagados fisicamente.
type Product struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	Status       Status         `json:"status"`
	DefaultPrice numeric.Amount `json:"default_price"`
	PhotoBase64  string         `json:"photo_base64"`
	Variations   []Variation    `json:"variations"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    *time.Time     `json:"deleted_at"`
	DeletedBy    string         `json:"deleted_by"`
}

// NewProduct cria um novo produto ativo
func NewProduct(name, description, category string, defaultPrice numeric.Amount) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	now := time.Now()
	return &Product{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  description,
		Category:     category,
		Status:       StatusActive,
		DefaultPrice: defaultPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Update atualiza os dados cadastrais do produto
func (p *Product) Update(name, description, category string, st Status, defaultPrice numeric.Amount, photoBase64 string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	p.Description = description
	p.Category = category
	if st != "" {
		p.Status = st
	}
	p.DefaultPrice = defaultPrice
	if photoBase64 != "" {
		p.PhotoBase64 = photoBase64
	}
	p.UpdatedAt = time.Now()
	return nil
}

// AddVariation adiciona uma variação ao produto
func (p *Product) AddVariation(name, sku string, price numeric.Amount, quantity int) (*Variation, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, ErrEmptySKU
	}
	v := Variation{
		ID:       uuid.New().String(),
		Name:     name,
		SKU:      sku,
		Price:    price,
		Quantity: quantity,
	}
	p.Variations = append(p.Variations, v)
	p.UpdatedAt = time.Now()
	return &p.Variations[len(p.Variations)-1], nil
}

// IsDeleted verifica se o produto carrega o marcador de exclusão
func (p *Product) IsDeleted() bool {
	return p.DeletedAt != nil
}

// SoftDelete marca o produto como removido sem apagá-lo fisicamente
func (p *Product) SoftDelete(deletedBy string) error {
	if p.IsDeleted() {
		return ErrAlreadyDeleted
	}
	now := time.Now()
	p.DeletedAt = &now
	p.DeletedBy = deletedBy
	p.Status = StatusArchived
	p.UpdatedAt = now
	return nil
}

// Activate ativa o produto
func (p *Product) Activate() {
	p.Status = StatusActive
	p.UpdatedAt = time.Now()
}

// Deactivate desativa o produto
func (p *Product) Deactivate() {
	p.Status = StatusInactive
	p.UpdatedAt = time.Now()
}
