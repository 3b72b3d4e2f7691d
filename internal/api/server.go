package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/shopkhata/shopkhata-api/docs"
	v1 "github.com/shopkhata/shopkhata-api/internal/api/handler/v1"
	"github.com/shopkhata/shopkhata-api/internal/api/middleware"
	"github.com/shopkhata/shopkhata-api/internal/config"
	"github.com/shopkhata/shopkhata-api/internal/repository"
	"github.com/shopkhata/shopkhata-api/internal/repository/dao"
	"github.com/shopkhata/shopkhata-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	itemDAO := dao.NewItemDAO(db)
	purchaseDAO := dao.NewPurchaseDAO(db)
	saleDAO := dao.NewSaleDAO(db)
	fundDAO := dao.NewFundDAO(db)
	expenseDAO := dao.NewExpenseDAO(db)

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	ledgerRepo := repository.NewLedgerRepository(dao.NewTxRunner(db), itemDAO, purchaseDAO, saleDAO, fundDAO, expenseDAO)
	inventoryRepo := repository.NewInventoryRepository(itemDAO, purchaseDAO, saleDAO, expenseDAO)
	reportRepo := repository.NewReportRepository(dao.NewReportDAO(db), expenseDAO)

	authSvc := service.NewAuthService(userRepo)
	userSvc := service.NewUserService(userRepo)
	txnSvc := service.NewTransactionService(ledgerRepo, userRepo)
	inventorySvc := service.NewInventoryService(inventoryRepo, userRepo)
	reportSvc := service.NewReportService(reportRepo, inventoryRepo, ledgerRepo, userRepo)

	s.MountHandlers(
		v1.NewAuthHandler(s.Config.API, authSvc),
		v1.NewUserHandler(userSvc),
		v1.NewItemHandler(inventorySvc, userSvc),
		v1.NewPurchaseHandler(txnSvc, inventorySvc, userSvc),
		v1.NewSaleHandler(txnSvc, inventorySvc, userSvc),
		v1.NewFundHandler(txnSvc, userSvc),
		v1.NewExpenseHandler(txnSvc, inventorySvc, userSvc),
		v1.NewReportHandler(reportSvc, userSvc),
	)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	itemHandler *v1.ItemHandler,
	purchaseHandler *v1.PurchaseHandler,
	saleHandler *v1.SaleHandler,
	fundHandler *v1.FundHandler,
	expenseHandler *v1.ExpenseHandler,
	reportHandler *v1.ReportHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	protected := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		protected.GET("/users/me", userHandler.HandleGetMe)
		protected.GET("/users/:userID", userHandler.HandleGetUser)

		protected.POST("/items", itemHandler.HandleCreateItem)
		protected.GET("/items", itemHandler.HandleGetItems)
		protected.GET("/items/item-name", itemHandler.HandleGetItemNames)
		protected.GET("/items/:itemID", itemHandler.HandleGetItem)
		protected.PUT("/items/:itemID", itemHandler.HandleUpdateItem)

		protected.POST("/purchases", purchaseHandler.HandleCreatePurchase)
		protected.GET("/purchases", purchaseHandler.HandleGetPurchases)
		protected.PUT("/purchases/:purchaseID", purchaseHandler.HandleUpdatePurchase)
		protected.DELETE("/purchases/:purchaseID", purchaseHandler.HandleDeletePurchase)
		protected.POST("/purchases/:purchaseID/pay-borrow", purchaseHandler.HandlePayPurchaseBorrow)

		protected.POST("/sales", saleHandler.HandleCreateSale)
		protected.GET("/sales", saleHandler.HandleGetSales)
		protected.PUT("/sales/:saleID", saleHandler.HandleUpdateSale)
		protected.DELETE("/sales/:saleID", saleHandler.HandleDeleteSale)
		protected.POST("/sales/:saleID/pay-borrow", saleHandler.HandlePaySaleBorrow)

		protected.POST("/funds", fundHandler.HandleAddFund)
		protected.GET("/funds", fundHandler.HandleGetFundBalance)

		protected.POST("/expenses", expenseHandler.HandleAddExpense)
		protected.GET("/expenses", expenseHandler.HandleGetExpenses)

		protected.GET("/reports/dashboard", reportHandler.HandleDashboard)
		protected.GET("/reports/daily", reportHandler.HandleDailyReport)
		protected.GET("/reports/profit-loss", reportHandler.HandleProfitLoss)
		protected.GET("/reports/excel", reportHandler.HandleExcelReport)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Shopkhata API"
	docs.SwaggerInfo.Description = "Multi-shop retail ledger: items, purchases, sales, shop funds and worker expenses."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
