package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yeremiapane/acai-pdv/controllers"
	"github.com/yeremiapane/acai-pdv/kds"
	"github.com/yeremiapane/acai-pdv/middlewares"
	"github.com/yeremiapane/acai-pdv/models"
	"github.com/yeremiapane/acai-pdv/services"
	"github.com/yeremiapane/acai-pdv/utils"
)

type Dependencies struct {
	Ledger       *services.Ledger
	Auth         *services.AuthService
	JWT          *utils.JWTManager
	Hub          *kds.Hub
	Gatherer     prometheus.Gatherer
	RateLimiter  *middlewares.RateLimiter
	LoginLimiter *middlewares.RateLimiter
	CORSOrigin   string
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.RateLimit())
	}

	if err := utils.RegisterValidations(); err != nil {
		utils.ErrorLogger.WithError(err).Error("custom validations not registered")
	}

	authCtrl := controllers.NewAuthController(deps.Ledger, deps.Auth, deps.JWT)
	productCtrl := controllers.NewProductController(deps.Ledger)
	stockCtrl := controllers.NewStockController(deps.Ledger)
	orderCtrl := controllers.NewOrderController(deps.Ledger)
	reportCtrl := controllers.NewReportController(deps.Ledger)
	kdsCtrl := controllers.NewKDSController(deps.Hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	loginLimiter := deps.LoginLimiter
	if loginLimiter == nil {
		loginLimiter = middlewares.NewLoginRateLimiter()
	}
	r.POST("/login", loginLimiter.RateLimit(), authCtrl.Login)

	r.GET("/ws", middlewares.WebSocketAuthMiddleware(deps.JWT), kdsCtrl.Handler)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(deps.JWT), middlewares.SessionMiddleware(deps.Ledger))
	admin := middlewares.RequireRole(models.RoleAdmin)

	api.POST("/logout", authCtrl.Logout)
	api.GET("/profile", authCtrl.Profile)
	api.GET("/view", authCtrl.GetView)
	api.PUT("/view", authCtrl.SetView)

	// CATALOG
	api.GET("/products", productCtrl.GetProducts)
	api.GET("/products/:id", productCtrl.GetProduct)
	api.GET("/toppings", productCtrl.GetToppings)
	api.POST("/products", admin, productCtrl.CreateProduct)
	api.PATCH("/products/:id", admin, productCtrl.UpdateProduct)
	api.DELETE("/products/:id", admin, productCtrl.DeleteProduct)

	// STOCK
	api.GET("/stock", stockCtrl.GetStock)
	api.GET("/stock/low", stockCtrl.GetLowStock)
	api.GET("/stock/summary", stockCtrl.GetSummary)
	api.GET("/stock/:product_id/:size", stockCtrl.GetStockItem)
	api.POST("/stock", admin, stockCtrl.CreateStockItem)
	api.PUT("/stock/:product_id/:size", admin, stockCtrl.SetPackages)

	// CART & CHECKOUT
	api.GET("/cart", orderCtrl.GetCart)
	api.POST("/cart/items", orderCtrl.AddCartItem)
	api.PATCH("/cart/items/:id", orderCtrl.UpdateCartItem)
	api.DELETE("/cart/items/:id", orderCtrl.RemoveCartItem)
	api.DELETE("/cart", orderCtrl.ClearCart)
	api.POST("/orders/finalize", orderCtrl.FinalizeOrder)
	api.GET("/orders", orderCtrl.GetOrders)
	api.GET("/orders/:id", orderCtrl.GetOrder)

	// REPORTS
	reports := api.Group("/reports", admin)
	reports.GET("/daily", reportCtrl.GetDailySales)
	reports.GET("/daily/summary", reportCtrl.GetDailySummary)
	reports.GET("/export", reportCtrl.ExportDaily)

	return r
}
