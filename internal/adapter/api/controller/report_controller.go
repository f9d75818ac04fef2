package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/varejotech/backoffice-api/internal/adapter/api/dto"
	"github.com/varejotech/backoffice-api/internal/adapter/repository"
	reportdomain "github.com/varejotech/backoffice-api/internal/domain/report"
	"github.com/varejotech/backoffice-api/pkg/logger"
)

// ReportController gerencia as requisições de relatórios de leitura
type ReportController struct {
	reportRepo reportdomain.Repository
	logger     logger.Logger
}

// NewReportController cria uma nova instância de ReportController
func NewReportController(reportRepo reportdomain.Repository, logger logger.Logger) *ReportController {
	return &ReportController{
		reportRepo: reportRepo,
		logger:     logger,
	}
}

// LowStock retorna as variações com estoque abaixo do limite
// @Summary Relatório de estoque baixo
// @Description Lista as variações com quantidade abaixo do limite informado
// @Tags reports
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param threshold query int false "Limite de estoque" default(10)
// @Success 200 {object} dto.LowStockResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/low-stock [get]
func (c *ReportController) LowStock(ctx *gin.Context) {
	threshold, err := strconv.Atoi(ctx.DefaultQuery("threshold", "10"))
	if err != nil || threshold < 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "limite inválido", ""))
		return
	}

	items, err := c.reportRepo.LowStock(ctx, threshold)
	if err != nil {
		c.logger.Error("erro ao gerar relatório de estoque baixo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar relatório", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.LowStockResponse{
		Threshold: threshold,
		Items:     items,
	})
}

// InventoryValue retorna o valor total do inventário ativo
// @Summary Relatório de valor do inventário
// @Description Soma quantidade × preço de todas as variações dos produtos ativos
// @Tags reports
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.InventoryValueResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/inventory-value [get]
func (c *ReportController) InventoryValue(ctx *gin.Context) {
	value, err := c.reportRepo.InventoryValue(ctx)
	if err != nil {
		c.logger.Error("erro ao gerar relatório de inventário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar relatório", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInventoryValueResponse(value))
}

// Turnover retorna a rotação de estoque de uma variação
// @Summary Relatório de rotação de estoque
// @Description Divide as unidades vendidas na janela pelo estoque atual da variação
// @Tags reports
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param variantId path string true "ID da variação"
// @Param days query int false "Janela em dias" default(30)
// @Success 200 {object} report.Turnover
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/turnover/{variantId} [get]
func (c *ReportController) Turnover(ctx *gin.Context) {
	days, err := strconv.Atoi(ctx.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "janela inválida", ""))
		return
	}

	result, err := c.reportRepo.Turnover(ctx, ctx.Param("variantId"), days)
	if err != nil {
		if errors.Is(err, repository.ErrVariationNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "variação não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao gerar relatório de rotação", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar relatório", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// DaysOfSupply retorna os dias de cobertura de estoque de uma variação
// @Summary Relatório de dias de cobertura
// @Description Divide o estoque atual da variação pelo consumo diário informado
// @Tags reports
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param variantId path string true "ID da variação"
// @Param dailyConsumption query number false "Consumo diário" default(1)
// @Success 200 {object} report.DaysOfSupply
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/dos/{variantId} [get]
func (c *ReportController) DaysOfSupply(ctx *gin.Context) {
	dailyConsumption, err := strconv.ParseFloat(ctx.DefaultQuery("dailyConsumption", "1"), 64)
	if err != nil || dailyConsumption < 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "consumo diário inválido", ""))
		return
	}

	result, err := c.reportRepo.DaysOfSupply(ctx, ctx.Param("variantId"), dailyConsumption)
	if err != nil {
		if errors.Is(err, repository.ErrVariationNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "variação não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao gerar relatório de cobertura", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar relatório", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, result)
}
