package purchase

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/varejotech/backoffice-api/pkg/numeric"
)

var (
	ErrEmptySupplier          = errors.New("fornecedor não pode ser vazio")
	ErrNoLines                = errors.New("pedido de compra precisa de pelo menos uma linha")
	ErrEmptyProduct           = errors.New("linha precisa de um produto")
	ErrInvalidQuantity        = errors.New("quantidade deve ser positiva")
	ErrInvalidUnitPrice       = errors.New("preço unitário deve ser positivo")
	ErrInvalidTransition      = errors.New("transição de status não permitida")
	ErrEmptyRejectionReason   = errors.New("justificativa de rejeição é obrigatória")
	ErrLineNotFound           = errors.New("linha não encontrada no pedido")
	ErrReceiveQuantityInvalid = errors.New("quantidade recebida deve ser positiva")
	ErrReceiveExceedsOrdered  = errors.New("quantidade recebida excede a quantidade pedida")
)

// Status representa o estado nativo do pedido de compra no backend.
// O vocabulário exposto à interface é obtido via status.NormalizePurchase.
type Status string

const (
	StatusDraft             Status = "DRAFT"
	StatusSent              Status = "SENT"
	StatusAccepted          Status = "ACCEPTED"
	StatusPartiallyReceived Status = "PARTIALLY_RECEIVED"
	StatusClosed            Status = "CLOSED"
	StatusRejected          Status = "REJECTED"
	StatusCancelled         Status = "CANCELLED"
)

// Line representa uma linha do pedido de compra
type Line struct {
	ID               string         `json:"id"`
	ProductID        string         `json:"product_id"`
	VariantID        string         `json:"variant_id"`
	Quantity         int            `json:"quantity"`
	UnitPrice        numeric.Amount `json:"unit_price"`
	Total            numeric.Amount `json:"total"`
	ReceivedQuantity int            `json:"received_quantity"`
}

// Remaining retorna a quantidade ainda não recebida da linha
func (l *Line) Remaining() int {
	return l.Quantity - l.ReceivedQuantity
}

// FullyReceived verifica se a linha foi recebida por completo
func (l *Line) FullyReceived() bool {
	return l.ReceivedQuantity >= l.Quantity
}

// LineInput são os dados de entrada para criação de uma linha
type LineInput struct {
	ProductID string
	VariantID string
	Quantity  int
	UnitPrice numeric.Amount
}

// PurchaseOrder representa um pedido de compra a um fornecedor
type PurchaseOrder struct {
	ID              string         `json:"id"`
	OrderNumber     string         `json:"order_number"`
	SupplierName    string         `json:"supplier_name"`
	SupplierEmail   string         `json:"supplier_email"`
	Status          Status         `json:"status"`
	Total           numeric.Amount `json:"total"`
	RejectionReason string         `json:"rejection_reason"`
	Lines           []Line         `json:"lines"`
	CreatedBy       string         `json:"created_by"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// NewPurchaseOrder cria um novo pedido de compra em rascunho.
// Exige pelo menos uma linha; cada linha exige produto, quantidade positiva e
// preço unitário positivo. O total é derivado das linhas.
func NewPurchaseOrder(supplierName, supplierEmail, createdBy string, lines []LineInput) (*PurchaseOrder, error) {
	if strings.TrimSpace(supplierName) == "" {
		return nil, ErrEmptySupplier
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}

	now := time.Now()
	po := &PurchaseOrder{
		ID:            uuid.New().String(),
		SupplierName:  supplierName,
		SupplierEmail: supplierEmail,
		Status:        StatusDraft,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, in := range lines {
		if strings.TrimSpace(in.ProductID) == "" {
			return nil, ErrEmptyProduct
		}
		if in.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if !in.UnitPrice.IsPositive() {
			return nil, ErrInvalidUnitPrice
		}
		po.Lines = append(po.Lines, Line{
			ID:        uuid.New().String(),
			ProductID: in.ProductID,
			VariantID: in.VariantID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			Total:     numeric.SafeMultiply(in.Quantity, in.UnitPrice),
		})
	}

	po.RecomputeTotal()
	return po, nil
}

// RecomputeTotal recalcula o total do pedido a partir das linhas
func (po *PurchaseOrder) RecomputeTotal() {
	total := numeric.Zero()
	for i := range po.Lines {
		po.Lines[i].Total = numeric.SafeMultiply(po.Lines[i].Quantity, po.Lines[i].UnitPrice)
		total = total.Add(po.Lines[i].Total)
	}
	po.Total = total
}

// RequiresApproval verifica se o total ultrapassa o limite monetário de
// aprovação. Pedidos no limite ou abaixo dele são aprovados automaticamente.
func (po *PurchaseOrder) RequiresApproval(threshold numeric.Amount) bool {
	return po.Total.GreaterThan(threshold)
}

// Send submete o pedido para aprovação. Pedidos acima do limite ficam em
// SENT aguardando a tarefa de aprovação; no limite ou abaixo são aceitos
// diretamente. Retorna se uma tarefa de aprovação deve ser criada.
func (po *PurchaseOrder) Send(threshold numeric.Amount) (bool, error) {
	if po.Status != StatusDraft {
		return false, ErrInvalidTransition
	}

	if po.RequiresApproval(threshold) {
		po.Status = StatusSent
		po.UpdatedAt = time.Now()
		return true, nil
	}

	po.Status = StatusAccepted
	po.UpdatedAt = time.Now()
	return false, nil
}

// Approve aceita um pedido enviado para aprovação
func (po *PurchaseOrder) Approve() error {
	if po.Status != StatusSent {
		return ErrInvalidTransition
	}
	po.Status = StatusAccepted
	po.UpdatedAt = time.Now()
	return nil
}

// Reject rejeita um pedido enviado para aprovação. A justificativa é
// obrigatória.
func (po *PurchaseOrder) Reject(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrEmptyRejectionReason
	}
	if po.Status != StatusSent {
		return ErrInvalidTransition
	}
	po.Status = StatusRejected
	po.RejectionReason = reason
	po.UpdatedAt = time.Now()
	return nil
}

// Cancel cancela um pedido que ainda não entrou em recebimento
func (po *PurchaseOrder) Cancel() error {
	if po.Status != StatusDraft && po.Status != StatusSent {
		return ErrInvalidTransition
	}
	po.Status = StatusCancelled
	po.UpdatedAt = time.Now()
	return nil
}

// ReceiveLine registra o recebimento parcial ou total de uma linha.
// Pré-condição: 0 < quantidade <= saldo restante da linha. Quando todas as
// linhas estiverem completas o pedido é encerrado.
func (po *PurchaseOrder) ReceiveLine(lineID string, quantity int) error {
	if po.Status != StatusAccepted && po.Status != StatusPartiallyReceived {
		return ErrInvalidTransition
	}
	if quantity <= 0 {
		return ErrReceiveQuantityInvalid
	}

	line := po.findLine(lineID)
	if line == nil {
		return ErrLineNotFound
	}
	if quantity > line.Remaining() {
		return ErrReceiveExceedsOrdered
	}

	line.ReceivedQuantity += quantity

	if po.allLinesReceived() {
		po.Status = StatusClosed
	} else {
		po.Status = StatusPartiallyReceived
	}
	po.UpdatedAt = time.Now()
	return nil
}

func (po *PurchaseOrder) findLine(lineID string) *Line {
	for i := range po.Lines {
		if po.Lines[i].ID == lineID {
			return &po.Lines[i]
		}
	}
	return nil
}

func (po *PurchaseOrder) allLinesReceived() bool {
	for i := range po.Lines {
		if !po.Lines[i].FullyReceived() {
			return false
		}
	}
	return true
}
