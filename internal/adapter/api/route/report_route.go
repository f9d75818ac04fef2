package route

import (
	"github.com/gin-gonic/gin"
	"github.com/varejotech/backoffice-api/internal/adapter/api/controller"
	"github.com/varejotech/backoffice-api/pkg/auth"
)

// SetupReportRoutes configura as rotas para o módulo de relatórios
func SetupReportRoutes(router *gin.RouterGroup, reportController *controller.ReportController) {
	reportRouter := router.Group("/reports")
	{
		reportRouter.Use(auth.JWTAuthMiddleware())
		{
			reportRouter.GET("/low-stock", reportController.LowStock)
			reportRouter.GET("/inventory-value", reportController.InventoryValue)
			reportRouter.GET("/turnover/:variantId", reportController.Turnover)
			reportRouter.GET("/dos/:variantId", reportController.DaysOfSupply)
		}
	}
}
