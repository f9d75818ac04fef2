package sale

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/varejotech/backoffice-api/internal/domain/status"
	"github.com/varejotech/backoffice-api/pkg/numeric"
)

var (
	ErrEmptyCustomer     = errors.New("nome do cliente não pode ser vazio")
	ErrNoItems           = errors.New("venda precisa de pelo menos um item")
	ErrEmptyProduct      = errors.New("item precisa de um produto")
	ErrInvalidQuantity   = errors.New("quantidade deve ser positiva")
	ErrInvalidUnitPrice  = errors.New("preço unitário deve ser positivo")
	ErrInvalidTransition = errors.New("transição de status não permitida")
)

// DefaultActor é a identidade usada quando o ator da transição não está
// disponível
const DefaultActor = "system"

// Item representa um item da venda
type Item struct {
	ProductID string         `json:"product_id"`
	VariantID string         `json:"variant_id"`
	Quantity  int            `json:"quantity"`
	UnitPrice numeric.Amount `json:"unit_price"`
	Total     numeric.Amount `json:"total"`
}

// ItemInput são os dados de entrada para criação de um item
type ItemInput struct {
	ProductID string
	VariantID string
	Quantity  int
	UnitPrice numeric.Amount
}

// Sale representa uma venda a um cliente. O fluxo exposto pela interface vai
// de rascunho a enviada; os demais estados do backend são armazenados e
// exibidos fielmente mesmo sem operação de transição própria.
type Sale struct {
	ID            string           `json:"id"`
	SaleDate      time.Time        `json:"sale_date"`
	CustomerName  string           `json:"customer_name"`
	CustomerEmail string           `json:"customer_email"`
	CustomerPhone string           `json:"customer_phone"`
	Status        status.SaleStatus `json:"status"`
	Total         numeric.Amount   `json:"total"`
	Items         []Item           `json:"items"`
	Location      string           `json:"location"`
	Actor         string           `json:"actor"`
	CreatedBy     string           `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// NewSale cria uma nova venda em rascunho. Exige pelo menos um item; cada
// item exige produto, quantidade positiva e preço unitário positivo.
func NewSale(customerName, customerEmail, customerPhone, createdBy string, items []ItemInput) (*Sale, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, ErrEmptyCustomer
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	now := time.Now()
	s := &Sale{
		ID:            uuid.New().String(),
		SaleDate:      now,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		CustomerPhone: customerPhone,
		Status:        status.SaleDraft,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, in := range items {
		if strings.TrimSpace(in.ProductID) == "" {
			return nil, ErrEmptyProduct
		}
		if in.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if !in.UnitPrice.IsPositive() {
			return nil, ErrInvalidUnitPrice
		}
		s.Items = append(s.Items, Item{
			ProductID: in.ProductID,
			VariantID: in.VariantID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			Total:     numeric.SafeMultiply(in.Quantity, in.UnitPrice),
		})
	}

	s.RecomputeTotal()
	return s, nil
}

// RecomputeTotal recalcula o total da venda a partir dos itens
func (s *Sale) RecomputeTotal() {
	total := numeric.Zero()
	for i := range s.Items {
		s.Items[i].Total = numeric.SafeMultiply(s.Items[i].Quantity, s.Items[i].UnitPrice)
		total = total.Add(s.Items[i].Total)
	}
	s.Total = total
}

// Confirm confirma a venda e reserva o estoque. Os campos location e actor
// são registrados para auditoria.
func (s *Sale) Confirm(location, actor string) error {
	if s.Status != status.SaleDraft {
		return ErrInvalidTransition
	}
	s.Status = status.SaleConfirmed
	s.applyAudit(location, actor)
	return nil
}

// Ship marca a venda como enviada
func (s *Sale) Ship(location, actor string) error {
	if s.Status != status.SaleConfirmed {
		return ErrInvalidTransition
	}
	s.Status = status.SaleShipped
	s.applyAudit(location, actor)
	return nil
}

// Cancel cancela uma venda que ainda não foi enviada
func (s *Sale) Cancel(location, actor string) error {
	if s.Status != status.SaleDraft && s.Status != status.SaleConfirmed {
		return ErrInvalidTransition
	}
	s.Status = status.SaleCancelled
	s.applyAudit(location, actor)
	return nil
}

func (s *Sale) applyAudit(location, actor string) {
	if strings.TrimSpace(actor) == "" {
		actor = DefaultActor
	}
	s.Location = location
	s.Actor = actor
	s.UpdatedAt = time.Now()
}
