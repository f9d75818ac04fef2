package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/varejotech/backoffice-api/internal/adapter/api/dto"
	"github.com/varejotech/backoffice-api/internal/adapter/repository"
	approvaldomain "github.com/varejotech/backoffice-api/internal/domain/approval"
	purchasedomain "github.com/varejotech/backoffice-api/internal/domain/purchase"
	"github.com/varejotech/backoffice-api/pkg/auth"
	"github.com/varejotech/backoffice-api/pkg/logger"
)

// ApprovalController gerencia as requisições de tarefas de aprovação
type ApprovalController struct {
	approvalRepo approvaldomain.Repository
	purchaseRepo purchasedomain.Repository
	logger       logger.Logger
}

// NewApprovalController cria uma nova instância de ApprovalController
func NewApprovalController(approvalRepo approvaldomain.Repository, purchaseRepo purchasedomain.Repository, logger logger.Logger) *ApprovalController {
	return &ApprovalController{
		approvalRepo: approvalRepo,
		purchaseRepo: purchaseRepo,
		logger:       logger,
	}
}

// ListPending retorna as tarefas de aprovação em todos os status. O filtro
// de pendência é um predicado do lado do consumidor, não do servidor.
// @Summary Listar tarefas de aprovação
// @Description Retorna as tarefas em todos os status, com o pedido associado embutido; o filtro de pendência cabe ao consumidor
// @Tags approvals
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.ApprovalTaskListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /approvals/pending [get]
func (c *ApprovalController) ListPending(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	offset := (page - 1) * size

	tasks, err := c.approvalRepo.List(ctx, size, offset)
	if err != nil {
		c.logger.Error("erro ao listar tarefas de aprovação", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar tarefas de aprovação", err.Error()))
		return
	}

	total, err := c.approvalRepo.Count(ctx)
	if err != nil {
		c.logger.Error("erro ao contar tarefas de aprovação", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar tarefas de aprovação", err.Error()))
		return
	}

	items := make([]dto.ApprovalTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp := dto.ToApprovalTaskResponse(t)
		po, err := c.purchaseRepo.FindByID(ctx, t.PurchaseOrderID)
		if err == nil {
			resp.PurchaseOrder = dto.ToPurchaseOrderResponse(po)
		}
		items = append(items, *resp)
	}

	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}

	ctx.JSON(http.StatusOK, dto.ApprovalTaskListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	})
}

// Get retorna uma tarefa de aprovação pelo ID. Uma tarefa cujo pedido de
// compra associado não existe mais é um problema de integridade de dados.
// @Summary Buscar tarefa de aprovação
// @Description Retorna uma tarefa de aprovação com o pedido associado embutido
// @Tags approvals
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da tarefa"
// @Success 200 {object} dto.ApprovalTaskResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /approvals/{id} [get]
func (c *ApprovalController) Get(ctx *gin.Context) {
	task, ok := c.findTask(ctx)
	if !ok {
		return
	}

	resp := dto.ToApprovalTaskResponse(task)

	po, err := c.purchaseRepo.FindByID(ctx, task.PurchaseOrderID)
	if err != nil {
		if errors.Is(err, repository.ErrPurchaseOrderNotFound) {
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "tarefa sem pedido de compra associado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar pedido da tarefa", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar tarefa de aprovação", err.Error()))
		return
	}
	resp.PurchaseOrder = dto.ToPurchaseOrderResponse(po)

	ctx.JSON(http.StatusOK, resp)
}

// Approve aprova uma tarefa pendente e aceita o pedido de compra associado
// @Summary Aprovar tarefa
// @Description Aprova a tarefa pendente e aceita o pedido de compra associado
// @Tags approvals
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da tarefa"
// @Param decision body dto.ApprovalDecisionRequest false "Comentário opcional"
// @Success 200 {object} dto.ApprovalTaskResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /approvals/{id}/approve [post]
func (c *ApprovalController) Approve(ctx *gin.Context) {
	task, ok := c.findTask(ctx)
	if !ok {
		return
	}

	po, ok := c.findTaskOrder(ctx, task)
	if !ok {
		return
	}

	currentUser := auth.GetCurrentUser(ctx)

	if err := task.Approve(currentUser.Name); err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "tarefa já foi decidida", err.Error()))
		return
	}

	if err := po.Approve(); err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "pedido não está aguardando aprovação", err.Error()))
		return
	}

	if err := c.purchaseRepo.Update(ctx, po); err != nil {
		c.logger.Error("erro ao atualizar pedido de compra", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar pedido de compra", err.Error()))
		return
	}

	if err := c.approvalRepo.Update(ctx, task); err != nil {
		c.logger.Error("erro ao atualizar tarefa de aprovação", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar tarefa de aprovação", err.Error()))
		return
	}

	resp := dto.ToApprovalTaskResponse(task)
	resp.PurchaseOrder = dto.ToPurchaseOrderResponse(po)
	ctx.JSON(http.StatusOK, resp)
}

// Reject rejeita uma tarefa pendente com justificativa obrigatória e rejeita
// o pedido de compra associado
// @Summary Rejeitar tarefa
// @Description Rejeita a tarefa pendente com justificativa obrigatória
// @Tags approvals
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da tarefa"
// @Param decision body dto.ApprovalDecisionRequest true "Justificativa da rejeição"
// @Success 200 {object} dto.ApprovalTaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /approvals/{id}/reject [post]
func (c *ApprovalController) Reject(ctx *gin.Context) {
	var req dto.ApprovalDecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	task, ok := c.findTask(ctx)
	if !ok {
		return
	}

	po, ok := c.findTaskOrder(ctx, task)
	if !ok {
		return
	}

	currentUser := auth.GetCurrentUser(ctx)

	if err := task.Reject(currentUser.Name, req.Comment); err != nil {
		if errors.Is(err, approvaldomain.ErrAlreadyDecided) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "tarefa já foi decidida", err.Error()))
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "justificativa obrigatória", err.Error()))
		return
	}

	if err := po.Reject(req.Comment); err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "pedido não está aguardando aprovação", err.Error()))
		return
	}

	if err := c.purchaseRepo.Update(ctx, po); err != nil {
		c.logger.Error("erro ao atualizar pedido de compra", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar pedido de compra", err.Error()))
		return
	}

	if err := c.approvalRepo.Update(ctx, task); err != nil {
		c.logger.Error("erro ao atualizar tarefa de aprovação", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar tarefa de aprovação", err.Error()))
		return
	}

	resp := dto.ToApprovalTaskResponse(task)
	resp.PurchaseOrder = dto.ToPurchaseOrderResponse(po)
	ctx.JSON(http.StatusOK, resp)
}

// findTask busca a tarefa do path e escreve a resposta de erro quando não
// encontra
func (c *ApprovalController) findTask(ctx *gin.Context) (*approvaldomain.Task, bool) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "id não informado", ""))
		return nil, false
	}

	task, err := c.approvalRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApprovalTaskNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "tarefa de aprovação não encontrada", err.Error()))
			return nil, false
		}
		c.logger.Error("erro ao buscar tarefa de aprovação", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar tarefa de aprovação", err.Error()))
		return nil, false
	}

	return task, true
}

// findTaskOrder busca o pedido associado à tarefa. A ausência do pedido é
// tratada como inconsistência de dados e não como recurso inexistente.
func (c *ApprovalController) findTaskOrder(ctx *gin.Context, task *approvaldomain.Task) (*purchasedomain.PurchaseOrder, bool) {
	po, err := c.purchaseRepo.FindByID(ctx, task.PurchaseOrderID)
	if err != nil {
		if errors.Is(err, repository.ErrPurchaseOrderNotFound) {
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "tarefa sem pedido de compra associado", err.Error()))
			return nil, false
		}
		c.logger.Error("erro ao buscar pedido da tarefa", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar pedido de compra", err.Error()))
		return nil, false
	}
	return po, true
}
