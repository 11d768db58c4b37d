package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-shop-admin/internal/config"
	"go-shop-admin/internal/handler"
	"go-shop-admin/internal/middleware"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/service"
	"go-shop-admin/internal/ws"
	"go-shop-admin/pkg/database"
	"go-shop-admin/pkg/logger"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// 1. Config + logger
	cfg := config.Load()
	if err := logger.Init(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	logger.L().Info("Starting shop admin backend", zap.String("env", cfg.Server.Env))

	// 2. Database
	db := database.Connect(cfg.Database)
	// Auto Migrate (use a dedicated migration tool in production)
	if err := db.AutoMigrate(&model.User{}, &model.Product{}, &model.Order{}, &model.StockMovement{}); err != nil {
		logger.L().Fatal("Failed to run migrations", zap.Error(err))
	}

	// 3. Websocket hub for the admin event stream
	hub := ws.NewHub()
	go hub.Run()

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	userRepo := repository.NewUserRepo(db)
	movementRepo := repository.NewStockMovementRepo(db)

	ledger := service.NewStockLedger(productRepo, movementRepo)
	numbers := service.NewOrderNumberGenerator(orderRepo)

	orderService := service.NewOrderService(db, orderRepo, productRepo, userRepo, ledger, numbers, hub)
	productService := service.NewProductService(db, productRepo, orderRepo, hub)
	userService := service.NewUserService(userRepo)
	dashService := service.NewDashboardService(orderRepo, productRepo, movementRepo, cfg.Inventory.LowStockThreshold)

	orderHandler := handler.NewOrderHandler(orderService)
	productHandler := handler.NewProductHandler(productService)
	userHandler := handler.NewUserHandler(userService)
	dashHandler := handler.NewDashboardHandler(dashService)

	// 5. Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Shop Admin v1.0",
	})

	app.Use(fiberlogger.New()) // Request logging
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS
	app.Use(middleware.Metrics())

	// 6. Routes
	api := app.Group("/api/v1")

	// Products
	api.Get("/products", productHandler.GetProducts)
	api.Post("/products", productHandler.CreateProduct)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Put("/products/:id", productHandler.UpdateProduct)
	api.Delete("/products/:id", productHandler.DeleteProduct)

	// Orders
	api.Get("/orders", orderHandler.GetOrders)
	api.Post("/orders", orderHandler.CreateOrder)
	api.Get("/orders/statistics", orderHandler.GetOrderStatistics)
	api.Get("/orders/:id", orderHandler.GetOrder)
	api.Put("/orders/:id", orderHandler.UpdateOrder)
	api.Delete("/orders/:id", orderHandler.DeleteOrder)
	api.Patch("/orders/:id/status", orderHandler.UpdateOrderStatus)

	// Users
	api.Get("/users", userHandler.GetUsers)
	api.Post("/users", userHandler.CreateUser)
	api.Get("/users/:id", userHandler.GetUser)
	api.Put("/users/:id", userHandler.UpdateUser)
	api.Delete("/users/:id", userHandler.DeleteUser)

	// Dashboard
	api.Get("/dashboard/stats", dashHandler.GetStats)
	api.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)

	// Prometheus
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Websocket event stream
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.Register <- c
		defer func() { hub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logger.L().Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		logger.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.L().Info("Server exited")
}
