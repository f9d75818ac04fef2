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
	"github.com/varejotech/backoffice-api/pkg/numeric"
)

// PurchaseOrderController gerencia as requisições de pedidos de compra
type PurchaseOrderController struct {
	purchaseRepo purchasedomain.Repository
	approvalRepo approvaldomain.Repository
	threshold    numeric.Amount
	logger       logger.Logger
}

// NewPurchaseOrderController cria uma nova instância de PurchaseOrderController.
// O limite monetário define acima de que total o envio exige aprovação.
func NewPurchaseOrderController(purchaseRepo purchasedomain.Repository, approvalRepo approvaldomain.Repository, threshold numeric.Amount, logger logger.Logger) *PurchaseOrderController {
	return &PurchaseOrderController{
		purchaseRepo: purchaseRepo,
		approvalRepo: approvalRepo,
		threshold:    threshold,
		logger:       logger,
	}
}

// Create cria um novo pedido de compra
// @Summary Criar pedido de compra
// @Description Cria um novo pedido de compra em rascunho
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param purchase_order body dto.PurchaseOrderRequest true "Dados do pedido"
// @Success 201 {object} dto.PurchaseOrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /purchase-orders [post]
func (c *PurchaseOrderController) Create(ctx *gin.Context) {
	var req dto.PurchaseOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	lines := make([]purchasedomain.LineInput, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = purchasedomain.LineInput{
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}

	currentUser := auth.GetCurrentUser(ctx)

	po, err := purchasedomain.NewPurchaseOrder(req.SupplierName, req.SupplierEmail, currentUser.Name, lines)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar pedido de compra", err.Error()))
		return
	}

	if err := c.purchaseRepo.Create(ctx, po); err != nil {
		c.logger.Error("erro ao criar pedido de compra no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar pedido de compra", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPurchaseOrderResponse(po))
}

// Get retorna um pedido de compra pelo ID
// @Summary Buscar pedido de compra
// @Description Retorna os dados de um pedido de compra pelo ID
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Success 200 {object} dto.PurchaseOrderResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /purchase-orders/{id} [get]
func (c *PurchaseOrderController) Get(ctx *gin.Context) {
	po, ok := c.findOrder(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(po))
}

// List retorna a lista de pedidos de compra
// @Summary Listar pedidos de compra
// @Description Retorna a lista de pedidos de compra paginada, com filtro opcional por status
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Param status query string false "Filtrar por status"
// @Success 200 {object} dto.PurchaseOrderListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /purchase-orders [get]
func (c *PurchaseOrderController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	offset := (page - 1) * size

	var orders []*purchasedomain.PurchaseOrder
	var err error

	if st := ctx.Query("status"); st != "" {
		orders, err = c.purchaseRepo.FindByStatus(ctx, purchasedomain.Status(st), size, offset)
	} else {
		orders, err = c.purchaseRepo.List(ctx, size, offset)
	}
	if err != nil {
		c.logger.Error("erro ao listar pedidos de compra", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar pedidos de compra", err.Error()))
		return
	}

	total, err := c.purchaseRepo.Count(ctx)
	if err != nil {
		c.logger.Error("erro ao contar pedidos de compra", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar pedidos de compra", err.Error()))
		return
	}

	totalPages := (total + size - 1) / size
	ctx.JSON(http.StatusOK, dto.ToPurchaseOrderListResponse(orders, total, page, size, totalPages))
}

// Send submete um pedido de compra. Pedidos acima do limite monetário ficam
// aguardando aprovação com uma tarefa pendente; no limite ou abaixo são
// aceitos automaticamente.
// @Summary Enviar pedido de compra
// @Description Submete um pedido em rascunho; acima do limite cria tarefa de aprovação
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Success 200 {object} dto.PurchaseOrderResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /purchase-orders/{id}/send [post]
func (c *PurchaseOrderController) Send(ctx *gin.Context) {
	po, ok := c.findOrder(ctx)
	if !ok {
		return
	}

	needsApproval, err := po.Send(c.threshold)
	if err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "pedido não pode ser enviado", err.Error()))
		return
	}

	if err := c.purchaseRepo.Update(ctx, po); err != nil {
		c.logger.Error("erro ao atualizar pedido de compra", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar pedido de compra", err.Error()))
		return
	}

	if needsApproval {
		task, err := approvaldomain.NewTask(po.ID)
		if err != nil {
			c.logger.Error("erro ao criar tarefa de aprovação", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar tarefa de aprovação", err.Error()))
			return
		}
		if err := c.approvalRepo.Create(ctx, task); err != nil {
			c.logger.Error("erro ao salvar tarefa de aprovação", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar tarefa de aprovação", err.Error()))
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(po))
}

// Cancel cancela um pedido de compra que ainda não entrou em recebimento
// @Summary Cancelar pedido de compra
// @Description Cancela um pedido em rascunho ou aguardando aprovação
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Success 200 {object} dto.PurchaseOrderResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /purchase-orders/{id}/cancel [post]
func (c *PurchaseOrderController) Cancel(ctx *gin.Context) {
	po, ok := c.findOrder(ctx)
	if !ok {
		return
	}

	if err := po.Cancel(); err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "pedido não pode ser cancelado", err.Error()))
		return
	}

	if err := c.purchaseRepo.Update(ctx, po); err != nil {
		c.logger.Error("erro ao atualizar pedido de compra", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar pedido de compra", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(po))
}

// ReceiveLine registra o recebimento parcial ou total de uma linha do pedido
// @Summary Receber linha do pedido
// @Description Registra o recebimento de uma quantidade de uma linha do pedido
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Param lineId path string true "ID da linha"
// @Param receive body dto.ReceiveLineRequest true "Quantidade recebida"
// @Success 200 {object} dto.PurchaseOrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /purchase-orders/{id}/lines/{lineId}/receive [post]
func (c *PurchaseOrderController) ReceiveLine(ctx *gin.Context) {
	var req dto.ReceiveLineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		// Quantidade também pode vir por query string
		qty, qerr := strconv.Atoi(ctx.Query("qty"))
		if qerr != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
			return
		}
		req.Quantity = qty
	}

	po, ok := c.findOrder(ctx)
	if !ok {
		return
	}

	if err := po.ReceiveLine(ctx.Param("lineId"), req.Quantity); err != nil {
		switch {
		case errors.Is(err, purchasedomain.ErrLineNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "linha não encontrada", err.Error()))
		case errors.Is(err, purchasedomain.ErrInvalidTransition):
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "pedido não está em recebimento", err.Error()))
		default:
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "quantidade inválida", err.Error()))
		}
		return
	}

	if err := c.purchaseRepo.Update(ctx, po); err != nil {
		c.logger.Error("erro ao atualizar pedido de compra", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar pedido de compra", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(po))
}

// findOrder busca o pedido do path e escreve a resposta de erro quando não
// encontra
func (c *PurchaseOrderController) findOrder(ctx *gin.Context) (*purchasedomain.PurchaseOrder, bool) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "id não informado", ""))
		return nil, false
	}

	po, err := c.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPurchaseOrderNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "pedido de compra não encontrado", err.Error()))
			return nil, false
		}
		c.logger.Error("erro ao buscar pedido de compra", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar pedido de compra", err.Error()))
		return nil, false
	}

	return po, true
}
