package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/varejotech/backoffice-api/internal/adapter/api/dto"
	"github.com/varejotech/backoffice-api/internal/adapter/repository"
	saledomain "github.com/varejotech/backoffice-api/internal/domain/sale"
	"github.com/varejotech/backoffice-api/internal/domain/status"
	"github.com/varejotech/backoffice-api/pkg/auth"
	"github.com/varejotech/backoffice-api/pkg/logger"
)

// SaleController gerencia as requisições de vendas
type SaleController struct {
	saleRepo saledomain.Repository
	logger   logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(saleRepo saledomain.Repository, logger logger.Logger) *SaleController {
	return &SaleController{
		saleRepo: saleRepo,
		logger:   logger,
	}
}

// Create cria uma nova venda
// @Summary Criar venda
// @Description Cria uma nova venda em rascunho
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param sale body dto.SaleRequest true "Dados da venda"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [post]
func (c *SaleController) Create(ctx *gin.Context) {
	var req dto.SaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	items := make([]saledomain.ItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = saledomain.ItemInput{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
	}

	currentUser := auth.GetCurrentUser(ctx)

	s, err := saledomain.NewSale(req.CustomerName, req.CustomerEmail, req.CustomerPhone, currentUser.Name, items)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar venda", err.Error()))
		return
	}

	if err := c.saleRepo.Create(ctx, s); err != nil {
		c.logger.Error("erro ao criar venda no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar venda", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSaleResponse(s))
}

// Get retorna uma venda pelo ID
// @Summary Buscar venda
// @Description Retorna os dados de uma venda pelo ID
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	s, ok := c.findSale(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSaleResponse(s))
}

// List retorna a lista de vendas
// @Summary Listar vendas
// @Description Retorna a lista de vendas paginada, com filtro opcional por status
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Param status query string false "Filtrar por status"
// @Success 200 {object} dto.SaleListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	offset := (page - 1) * size

	var sales []*saledomain.Sale
	var err error

	if st := ctx.Query("status"); st != "" {
		sales, err = c.saleRepo.FindByStatus(ctx, status.NormalizeSale(st), size, offset)
	} else {
		sales, err = c.saleRepo.List(ctx, size, offset)
	}
	if err != nil {
		c.logger.Error("erro ao listar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar vendas", err.Error()))
		return
	}

	total, err := c.saleRepo.Count(ctx)
	if err != nil {
		c.logger.Error("erro ao contar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar vendas", err.Error()))
		return
	}

	totalPages := (total + size - 1) / size
	ctx.JSON(http.StatusOK, dto.ToSaleListResponse(sales, total, page, size, totalPages))
}

// Confirm confirma uma venda em rascunho e reserva o estoque
// @Summary Confirmar venda
// @Description Confirma uma venda em rascunho; local e usuário são registrados para auditoria
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Param location query string false "Local da operação"
// @Param username query string false "Usuário da operação"
// @Success 200 {object} dto.SaleResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id}/confirm [post]
func (c *SaleController) Confirm(ctx *gin.Context) {
	c.transition(ctx, func(s *saledomain.Sale, location, actor string) error {
		return s.Confirm(location, actor)
	}, "venda não pode ser confirmada")
}

// Ship marca uma venda confirmada como enviada
// @Summary Enviar venda
// @Description Marca uma venda confirmada como enviada
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Param location query string false "Local da operação"
// @Param username query string false "Usuário da operação"
// @Success 200 {object} dto.SaleResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id}/ship [post]
func (c *SaleController) Ship(ctx *gin.Context) {
	c.transition(ctx, func(s *saledomain.Sale, location, actor string) error {
		return s.Ship(location, actor)
	}, "venda não pode ser enviada")
}

// Cancel cancela uma venda que ainda não foi enviada
// @Summary Cancelar venda
// @Description Cancela uma venda em rascunho ou confirmada
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Param location query string false "Local da operação"
// @Param username query string false "Usuário da operação"
// @Success 200 {object} dto.SaleResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id}/cancel [post]
func (c *SaleController) Cancel(ctx *gin.Context) {
	c.transition(ctx, func(s *saledomain.Sale, location, actor string) error {
		return s.Cancel(location, actor)
	}, "venda não pode ser cancelada")
}

// transition aplica uma transição de status comum: busca a venda, executa a
// transição com local e ator e persiste o resultado
func (c *SaleController) transition(ctx *gin.Context, fn func(s *saledomain.Sale, location, actor string) error, conflictMsg string) {
	s, ok := c.findSale(ctx)
	if !ok {
		return
	}

	location := ctx.Query("location")
	actor := ctx.Query("username")
	if actor == "" {
		actor = auth.GetCurrentUser(ctx).Name
	}

	if err := fn(s, location, actor); err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, conflictMsg, err.Error()))
		return
	}

	if err := c.saleRepo.Update(ctx, s); err != nil {
		c.logger.Error("erro ao atualizar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar venda", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(s))
}

// findSale busca a venda do path e escreve a resposta de erro quando não
// encontra
func (c *SaleController) findSale(ctx *gin.Context) (*saledomain.Sale, bool) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "id não informado", ""))
		return nil, false
	}

	s, err := c.saleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", err.Error()))
			return nil, false
		}
		c.logger.Error("erro ao buscar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return nil, false
	}

	return s, true
}
