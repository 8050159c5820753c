package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-bengkel-api/internal/config"
	"go-bengkel-api/internal/handler"
	"go-bengkel-api/internal/logging"
	"go-bengkel-api/internal/model"
	"go-bengkel-api/internal/repository"
	"go-bengkel-api/internal/service"
	"go-bengkel-api/internal/ws"
	"go-bengkel-api/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found")
	}
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	// 2. Setup Database
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	// Auto Migrate (production deployments should use a dedicated migration tool)
	if err := db.AutoMigrate(
		&model.Customer{},
		&model.Item{},
		&model.Transaction{},
		&model.TransactionService{},
		&model.TransactionItem{},
	); err != nil {
		log.WithError(err).Fatal("auto migration failed")
	}

	// 3. Seed catalog on an empty database
	seedCatalog(db, log)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(log)
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	customerRepo := repository.NewCustomerRepo(db)
	itemRepo := repository.NewItemRepo(db)
	transactionRepo := repository.NewTransactionRepo(db)

	customerService := service.NewCustomerService(customerRepo)
	itemService := service.NewItemService(itemRepo, wsHub)
	transactionService := service.NewTransactionService(transactionRepo, customerRepo, itemRepo, db, wsHub)

	customerHandler := handler.NewCustomerHandler(customerService, log)
	itemHandler := handler.NewItemHandler(itemService, log)
	transactionHandler := handler.NewTransactionHandler(transactionService, log)
	codeHandler := handler.NewCodeHandler(customerService, itemService, transactionService, log)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Bengkel Management API v1.0",
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowedOrigins}))

	// 7. Routes
	api := app.Group("/api/v1")

	customers := api.Group("/customers")
	customers.Get("/", customerHandler.GetAll)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	items := api.Group("/items")
	items.Get("/", itemHandler.GetAll)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	transactions := api.Group("/transactions")
	transactions.Get("/", transactionHandler.GetAll)
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Delete("/:id", transactionHandler.Delete)

	api.Get("/codes/next", codeHandler.Next)

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

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.Address()); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}
	log.Info("server exited")
}

// seedCatalog creates the starter customers and items when both tables are
// empty, mirroring the shop's bootstrap data.
func seedCatalog(db *gorm.DB, log logrus.FieldLogger) {
	var customerCount, itemCount int64
	db.Model(&model.Customer{}).Count(&customerCount)
	db.Model(&model.Item{}).Count(&itemCount)

	if customerCount == 0 {
		customers := []model.Customer{
			{KodeCustomer: "C001", NamaCustomer: "John Doe", NoHP: "081234567890", AlamatCustomer: "Jl. Sudirman No. 123, Jakarta"},
			{KodeCustomer: "C002", NamaCustomer: "Jane Smith", NoHP: "081987654321", AlamatCustomer: "Jl. Thamrin No. 456, Jakarta"},
			{KodeCustomer: "C003", NamaCustomer: "Bob Johnson", NoHP: "081122334455", AlamatCustomer: "Jl. Kuningan No. 789, Jakarta"},
		}
		if err := db.Create(&customers).Error; err != nil {
			log.WithError(err).Warn("failed to seed customers")
		} else {
			log.Infof("seeded %d customers", len(customers))
		}
	}

	if itemCount == 0 {
		items := []model.Item{
			{KodeBarang: "B001", NamaBarang: "Oli Mesin Shell Helix", Merek: "Shell", Qty: 50, Harga: 85000},
			{KodeBarang: "B002", NamaBarang: "Filter Udara", Merek: "Sakura", Qty: 30, Harga: 45000},
			{KodeBarang: "B003", NamaBarang: "Busi NGK", Merek: "NGK", Qty: 100, Harga: 25000},
			{KodeBarang: "B004", NamaBarang: "Ban Michelin 185/65R15", Merek: "Michelin", Qty: 20, Harga: 750000},
			{KodeBarang: "B005", NamaBarang: "Aki GS Astra 55Ah", Merek: "GS Astra", Qty: 15, Harga: 650000},
		}
		if err := db.Create(&items).Error; err != nil {
			log.WithError(err).Warn("failed to seed items")
		} else {
			log.Infof("seeded %d items", len(items))
		}
	}
}
