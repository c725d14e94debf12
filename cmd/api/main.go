package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vishdevs/inventory-backend/internal/config"
	"github.com/vishdevs/inventory-backend/internal/handler"
	"github.com/vishdevs/inventory-backend/internal/middleware"
	"github.com/vishdevs/inventory-backend/internal/model"
	"github.com/vishdevs/inventory-backend/internal/repository"
	"github.com/vishdevs/inventory-backend/internal/service"
	"github.com/vishdevs/inventory-backend/internal/ws"
	"github.com/vishdevs/inventory-backend/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer zapLogger.Sync()

	// 2. Setup Database
	db := database.ConnectDB(cfg.DatabaseURL)
	// Auto Migrate (use a dedicated migration tool in production)
	db.AutoMigrate(&model.Product{}, &model.Sale{}, &model.SaleItem{}, &model.User{})

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	userRepo := repository.NewUserRepo(db)
	txManager := repository.NewTxManager(db, zapLogger)

	// Seed default admin user
	seedAdmin(userRepo, cfg)

	productService := service.NewProductService(productRepo, txManager, zapLogger, wsHub)
	saleService := service.NewSaleService(saleRepo, productRepo, txManager, zapLogger, wsHub)
	dashService := service.NewDashboardService(saleRepo)
	authService := service.NewAuthService(userRepo, zapLogger)

	productHandler := handler.NewProductHandler(productService)
	saleHandler := handler.NewSaleHandler(saleService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Inventory Backend v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// Health-check route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Inventory backend is running")
	})

	// 6. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Product Routes
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)

	// Sale Routes
	protected.Post("/sales", saleHandler.CreateSale)
	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/recent", saleHandler.GetRecentSales)
	protected.Get("/sales/:id", saleHandler.GetSale)

	// Dashboard Routes
	protected.Get("/dashboard/summary", dashHandler.GetSummary)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin user if it doesn't exist
func seedAdmin(userRepo repository.UserRepository, cfg *config.Config) {
	if _, err := userRepo.FindByEmail(cfg.AdminEmail); err == nil {
		return
	}

	admin := &model.User{
		Email:    cfg.AdminEmail,
		FullName: "Administrator",
		IsActive: true,
	}
	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Printf("Admin user created: %s", cfg.AdminEmail)
	}
}
