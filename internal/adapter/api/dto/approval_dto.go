package dto

import (
	"time"

	"github.com/varejotech/backoffice-api/internal/domain/approval"
)

// ApprovalDecisionRequest representa a requisição de decisão sobre uma tarefa.
// O comentário é obrigatório apenas na rejeição.
type ApprovalDecisionRequest struct {
	Comment string `json:"comment"`
}

// ApprovalTaskResponse representa a resposta de tarefa de aprovação.
// O pedido de compra associado é embutido quando solicitado.
type ApprovalTaskResponse struct {
	ID              string                 `json:"id"`
	PurchaseOrderID string                 `json:"purchase_order_id"`
	Status          approval.Status        `json:"status"`
	Approver        string                 `json:"approver,omitempty"`
	Comment         string                 `json:"comment,omitempty"`
	RequestedAt     time.Time              `json:"requested_at"`
	DecidedAt       *time.Time             `json:"decided_at"`
	PurchaseOrder   *PurchaseOrderResponse `json:"purchase_order,omitempty"`
}

// ApprovalTaskListResponse representa a resposta de lista de tarefas
type ApprovalTaskListResponse struct {
	Items      []ApprovalTaskResponse `json:"items"`
	Total      int                    `json:"total"`
	Page       int                    `json:"page"`
	Size       int                    `json:"size"`
	TotalPages int                    `json:"total_pages"`
}

// ToApprovalTaskResponse converte uma tarefa de aprovação do domínio para DTO
func ToApprovalTaskResponse(t *approval.Task) *ApprovalTaskResponse {
	return &ApprovalTaskResponse{
		ID:              t.ID,
		PurchaseOrderID: t.PurchaseOrderID,
		Status:          t.Status,
		Approver:        t.Approver,
		Comment:         t.Comment,
		RequestedAt:     t.RequestedAt,
		DecidedAt:       t.DecidedAt,
	}
}

// ToApprovalTaskListResponse converte uma lista de tarefas do domínio para DTO
func ToApprovalTaskListResponse(tasks []*approval.Task, total, page, size, totalPages int) *ApprovalTaskListResponse {
	items := make([]ApprovalTaskResponse, len(tasks))
	for i, t := range tasks {
		items[i] = *ToApprovalTaskResponse(t)
	}

	return &ApprovalTaskListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	}
}
