package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/varejotech/backoffice-api/internal/adapter/api/dto"
	"github.com/varejotech/backoffice-api/internal/adapter/repository"
	productdomain "github.com/varejotech/backoffice-api/internal/domain/product"
	"github.com/varejotech/backoffice-api/pkg/auth"
	"github.com/varejotech/backoffice-api/pkg/logger"
)

// ProductController gerencia as requisições de produtos
type ProductController struct {
	productRepo productdomain.Repository
	logger      logger.Logger
}

// NewProductController cria uma nova instância de ProductController
func NewProductController(productRepo productdomain.Repository, logger logger.Logger) *ProductController {
	return &ProductController{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create cria um novo produto
// @Summary Criar produto
// @Description Cria um novo produto ativo com suas variações
// @Tags products
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	p, err := productdomain.NewProduct(req.Name, req.Description, req.Category, req.DefaultPrice)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar produto", err.Error()))
		return
	}
	p.PhotoBase64 = req.PhotoBase64

	for _, v := range req.Variations {
		if _, err := p.AddVariation(v.Name, v.SKU, v.Price, v.Quantity); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao adicionar variação", err.Error()))
			return
		}
	}

	if err := c.productRepo.Create(ctx, p); err != nil {
		c.logger.Error("erro ao criar produto no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar produto", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProductResponse(p))
}

// Get retorna um produto pelo ID. Produtos removidos continuam acessíveis
// pelo ID para consulta de histórico.
// @Summary Buscar produto
// @Description Retorna os dados de um produto pelo ID
// @Tags products
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	p, ok := c.findProduct(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// List retorna a lista de produtos não removidos
// @Summary Listar produtos
// @Description Retorna a lista paginada de produtos, sem os removidos
// @Tags products
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.ProductListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [get]
func (c *ProductController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	offset := (page - 1) * size

	products, err := c.productRepo.List(ctx, size, offset)
	if err != nil {
		c.logger.Error("erro ao listar produtos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar produtos", err.Error()))
		return
	}

	total, err := c.productRepo.Count(ctx)
	if err != nil {
		c.logger.Error("erro ao contar produtos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar produtos", err.Error()))
		return
	}

	totalPages := (total + size - 1) / size
	ctx.JSON(http.StatusOK, dto.ToProductListResponse(products, total, page, size, totalPages))
}

// Update atualiza os dados cadastrais de um produto
// @Summary Atualizar produto
// @Description Atualiza os dados cadastrais de um produto existente
// @Tags products
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Param product body dto.ProductUpdateRequest true "Dados do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	var req dto.ProductUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	p, ok := c.findProduct(ctx)
	if !ok {
		return
	}

	if err := p.Update(req.Name, req.Description, req.Category, req.Status, req.DefaultPrice, req.PhotoBase64); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao atualizar produto", err.Error()))
		return
	}

	if err := c.productRepo.Update(ctx, p); err != nil {
		c.logger.Error("erro ao atualizar produto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar produto", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// Delete remove logicamente um produto. O registro permanece no banco com o
// marcador de exclusão e sai das listagens.
// @Summary Remover produto
// @Description Remove logicamente um produto do catálogo
// @Tags products
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	p, ok := c.findProduct(ctx)
	if !ok {
		return
	}

	currentUser := auth.GetCurrentUser(ctx)

	if err := p.SoftDelete(currentUser.Name); err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "produto já foi removido", err.Error()))
		return
	}

	if err := c.productRepo.Update(ctx, p); err != nil {
		c.logger.Error("erro ao remover produto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover produto", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("produto removido com sucesso", nil))
}

// findProduct busca o produto do path e escreve a resposta de erro quando
// não encontra
func (c *ProductController) findProduct(ctx *gin.Context) (*productdomain.Product, bool) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "id não informado", ""))
		return nil, false
	}

	p, err := c.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "produto não encontrado", err.Error()))
			return nil, false
		}
		c.logger.Error("erro ao buscar produto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar produto", err.Error()))
		return nil, false
	}

	return p, true
}
