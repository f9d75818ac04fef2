package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/varejotech/backoffice-api/internal/adapter/api/controller"
	"github.com/varejotech/backoffice-api/internal/adapter/api/route"
	"github.com/varejotech/backoffice-api/internal/adapter/repository"
	"github.com/varejotech/backoffice-api/internal/infrastructure/database"
	"github.com/varejotech/backoffice-api/pkg/logger"
	"github.com/varejotech/backoffice-api/pkg/numeric"
)

// defaultApprovalThreshold é o limite monetário padrão acima do qual pedidos
// de compra exigem aprovação
const defaultApprovalThreshold = 10000

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	db     *database.PostgresDB
	logger logger.Logger

	authController          *controller.AuthController
	userController          *controller.UserController
	productController       *controller.ProductController
	saleController          *controller.SaleController
	purchaseOrderController *controller.PurchaseOrderController
	approvalController      *controller.ApprovalController
	reportController        *controller.ReportController
}

// NewApp cria uma nova instância do aplicativo
func NewApp() (*App, error) {
	appLogger := logger.NewLogger()

	// Configurar banco de dados
	config := database.NewPostgresConfigFromEnv()
	db, err := database.NewPostgresDB(config)
	if err != nil {
		return nil, err
	}

	// Criar repositórios
	userRepo := repository.NewUserRepository(db.Pool())
	productRepo := repository.NewProductRepository(db.Pool())
	saleRepo := repository.NewSaleRepository(db.Pool())
	purchaseRepo := repository.NewPurchaseOrderRepository(db.Pool())
	approvalRepo := repository.NewApprovalRepository(db.Pool())
	reportRepo := repository.NewReportRepository(db.Pool())

	// Criar controllers
	threshold := approvalThresholdFromEnv()
	authController := controller.NewAuthController(userRepo, appLogger)
	userController := controller.NewUserController(userRepo, appLogger)
	productController := controller.NewProductController(productRepo, appLogger)
	saleController := controller.NewSaleController(saleRepo, appLogger)
	purchaseOrderController := controller.NewPurchaseOrderController(purchaseRepo, approvalRepo, threshold, appLogger)
	approvalController := controller.NewApprovalController(approvalRepo, purchaseRepo, appLogger)
	reportController := controller.NewReportController(reportRepo, appLogger)

	// Configurar router
	router := gin.Default()
	router.Use(gin.Recovery())

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	return &App{
		router:                  router,
		db:                      db,
		logger:                  appLogger,
		authController:          authController,
		userController:          userController,
		productController:       productController,
		saleController:          saleController,
		purchaseOrderController: purchaseOrderController,
		approvalController:      approvalController,
		reportController:        reportController,
	}, nil
}

// SetupRoutes configura as rotas da aplicação
func (a *App) SetupRoutes(basePath string) {
	api := a.router.Group(basePath)

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	route.SetupAuthRoutes(api, a.authController)
	route.SetupUserRoutes(api, a.userController)
	route.SetupProductRoutes(api, a.productController)
	route.SetupSaleRoutes(api, a.saleController)
	route.SetupPurchaseOrderRoutes(api, a.purchaseOrderController)
	route.SetupApprovalRoutes(api, a.approvalController)
	route.SetupReportRoutes(api, a.reportController)

	// Documentação Swagger
	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Start inicia o servidor HTTP
func (a *App) Start() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	a.logger.Info("iniciando servidor", "port", port)
	if err := a.router.Run(":" + port); err != nil {
		log.Fatalf("Erro ao iniciar servidor: %v", err)
	}
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

// approvalThresholdFromEnv lê o limite monetário de aprovação do ambiente
func approvalThresholdFromEnv() numeric.Amount {
	if v := os.Getenv("APPROVAL_THRESHOLD"); v != "" {
		return numeric.Parse(v)
	}
	return numeric.FromInt(defaultApprovalThreshold)
}
