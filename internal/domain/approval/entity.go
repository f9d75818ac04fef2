package approval

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyPurchaseOrder = errors.New("tarefa de aprovação sem pedido de compra associado")
	ErrAlreadyDecided     = errors.New("tarefa de aprovação já foi decidida")
	ErrEmptyComment       = errors.New("justificativa de rejeição é obrigatória")
)

// Status representa o estado da tarefa de aprovação
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Task é o portão de autorização de um pedido de compra acima do limite
// monetário. Várias tarefas podem referenciar o histórico de um mesmo pedido,
// mas apenas uma fica pendente por vez; depois de decidida a tarefa é
// imutável.
type Task struct {
	ID              string     `json:"id"`
	PurchaseOrderID string     `json:"purchase_order_id"`
	Status          Status     `json:"status"`
	Approver        string     `json:"approver"`
	Comment         string     `json:"comment"`
	RequestedAt     time.Time  `json:"requested_at"`
	DecidedAt       *time.Time `json:"decided_at"`
}

// NewTask cria uma tarefa pendente para um pedido de compra
func NewTask(purchaseOrderID string) (*Task, error) {
	if strings.TrimSpace(purchaseOrderID) == "" {
		return nil, ErrEmptyPurchaseOrder
	}
	return &Task{
		ID:              uuid.New().String(),
		PurchaseOrderID: purchaseOrderID,
		Status:          StatusPending,
		RequestedAt:     time.Now(),
	}, nil
}

// Decided verifica se a tarefa já recebeu uma decisão terminal
func (t *Task) Decided() bool {
	return t.Status != StatusPending
}

// Approve aprova a tarefa. Uma segunda decisão sobre a mesma tarefa é
// rejeitada com ErrAlreadyDecided.
func (t *Task) Approve(approver string) error {
	if t.Decided() {
		return ErrAlreadyDecided
	}
	now := time.Now()
	t.Status = StatusApproved
	t.Approver = approver
	t.DecidedAt = &now
	return nil
}

// Reject rejeita a tarefa com uma justificativa obrigatória
func (t *Task) Reject(approver, comment string) error {
	if strings.TrimSpace(comment) == "" {
		return ErrEmptyComment
	}
	if t.Decided() {
		return ErrAlreadyDecided
	}
	now := time.Now()
	t.Status = StatusRejected
	t.Approver = approver
	t.Comment = comment
	t.DecidedAt = &now
	return nil
}
