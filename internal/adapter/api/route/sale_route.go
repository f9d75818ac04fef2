package route

import (
	"github.com/gin-gonic/gin"
	"github.com/varejotech/backoffice-api/internal/adapter/api/controller"
	"github.com/varejotech/backoffice-api/pkg/auth"
)

// SetupSaleRoutes configura as rotas para o módulo de vendas
func SetupSaleRoutes(router *gin.RouterGroup, saleController *controller.SaleController) {
	saleRouter := router.Group("/sales")
	{
		saleRouter.Use(auth.JWTAuthMiddleware())
		{
			saleRouter.POST("", saleController.Create)
			saleRouter.GET("", saleController.List)
			saleRouter.GET("/:id", saleController.Get)

			// Transições do ciclo de vida
			saleRouter.POST("/:id/confirm", saleController.Confirm)
			saleRouter.POST("/:id/ship", saleController.Ship)
			saleRouter.POST("/:id/cancel", saleController.Cancel)
		}
	}
}
