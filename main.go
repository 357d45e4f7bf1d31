package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"zipmyproject/internal/config"
	"zipmyproject/internal/handlers"
	"zipmyproject/internal/middleware"
	"zipmyproject/internal/models"
	"zipmyproject/internal/payments"
	"zipmyproject/internal/repositories"
	"zipmyproject/internal/services"
	"zipmyproject/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// --- Repositories ---
	// With a DATABASE_URL we run against PostgreSQL; without one the app runs
	// entirely in memory, seeded with sample data for local development.
	var (
		userRepo     repositories.UserRepository
		projectRepo  repositories.ProjectRepository
		purchaseRepo repositories.PurchaseRepository
		contactRepo  repositories.ContactRepository
	)
	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(
			&models.User{},
			&models.Project{},
			&models.Order{},
			&models.UserDownload{},
			&models.ContactMessage{},
		); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		userRepo = repositories.NewGORMUserRepository(db)
		projectRepo = repositories.NewGORMProjectRepository(db)
		purchaseRepo = repositories.NewGORMPurchaseRepository(db)
		contactRepo = repositories.NewGORMContactRepository(db)
	} else {
		log.Println("DATABASE_URL not set, running with in-memory repositories")
		mockUsers := repositories.NewMockUserRepository()
		mockProjects := repositories.NewMockProjectRepository()
		userRepo = mockUsers
		projectRepo = mockProjects
		purchaseRepo = repositories.NewMockPurchaseRepository(mockProjects, mockUsers)
		contactRepo = repositories.NewMockContactRepository()
		seedDevData(userRepo, projectRepo)
	}

	// --- Payment gateways ---
	var gateways []payments.Gateway
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		gateways = append(gateways, payments.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret))
	}
	if cfg.StripeSecretKey != "" {
		gateways = append(gateways, payments.NewStripeGateway(cfg.StripeSecretKey))
	}
	if len(gateways) == 0 {
		if cfg.DatabaseURL == "" {
			// Local development: accept any razorpay-style payment so the full
			// purchase flow can be exercised without provider keys.
			log.Println("No payment provider keys configured, using mock gateway")
			gateways = append(gateways, payments.NewMockGateway(models.PaymentMethodRazorpay))
		} else {
			log.Println("No payment provider keys configured, checkout will reject all payment methods")
		}
	}

	// --- Purchase events (optional) ---
	var events services.PurchaseEventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, purchase events disabled: %v", err)
		} else {
			defer mqClient.Close()
			events = mqClient
		}
	}

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	projectService := services.NewProjectService(projectRepo)
	orderService := services.NewOrderService(purchaseRepo, projectRepo, gateways, events)
	contactService := services.NewContactService(contactRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	orderHandler := handlers.NewOrderHandler(orderService)
	contactHandler := handlers.NewContactHandler(contactService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New()) // Request logger

	api := app.Group("/api")

	// Public routes
	authHandler.RegisterRoutes(api)
	projectHandler.RegisterPublicRoutes(api)
	contactHandler.RegisterPublicRoutes(api)

	// Authenticated routes
	protected := api.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protected)
	orderHandler.RegisterRoutes(protected)

	// Admin routes
	admin := protected.Group("", middleware.AdminRequired())
	projectHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	contactHandler.RegisterAdminRoutes(admin)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Purchase event consumer ---
	// Receipt/notification hooks consume the purchase queue. For now the
	// handler just records the event.
	if mqClient != nil {
		go func() {
			handler := func(msg amqp.Delivery) error {
				log.Printf("Purchase event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if err := mqClient.ConsumePurchaseEvents(handler); err != nil {
				log.Printf("Failed to start purchase event consumer: %v", err)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// seedDevData populates the in-memory repositories with an admin account and
// a couple of catalog entries so the API is usable out of the box.
func seedDevData(userRepo repositories.UserRepository, projectRepo repositories.ProjectRepository) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing seed admin password: %v", err)
		return
	}
	admin := &models.User{
		Name:         "Admin",
		Email:        "admin@zipmyproject.local",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Error seeding admin user: %v", err)
	} else {
		log.Printf("Seeded admin user: %s", admin.Email)
	}

	projects := []models.Project{
		{
			Title:            "E-Commerce Website with React & Node.js",
			Description:      "A complete full-stack e-commerce solution with authentication, catalog, cart, payments and an admin dashboard.",
			ShortDescription: "Full-stack e-commerce website with React and Node.js",
			Price:            2999,
			Category:         "web-dev",
			TechStack:        []string{"React", "Node.js", "MongoDB", "Express"},
			Difficulty:       "intermediate",
			Features:         []string{"User Authentication", "Product Catalog", "Shopping Cart", "Admin Dashboard"},
			DownloadLink:     "https://assets.zipmyproject.local/projects/ecommerce.zip",
		},
		{
			Title:            "Machine Learning Stock Price Predictor",
			Description:      "Stock price prediction using LSTM neural networks, with data preprocessing, model training and a web interface.",
			ShortDescription: "ML project for stock price prediction using LSTM",
			Price:            3499,
			Category:         "machine-learning",
			TechStack:        []string{"Python", "TensorFlow", "Pandas", "Flask"},
			Difficulty:       "advanced",
			Features:         []string{"LSTM Implementation", "Data Preprocessing Pipeline", "Interactive Dashboard"},
			DownloadLink:     "https://assets.zipmyproject.local/projects/stock-predictor.zip",
		},
	}
	for i := range projects {
		if err := projectRepo.Create(&projects[i]); err != nil {
			log.Printf("Error seeding project %s: %v", projects[i].Title, err)
		} else {
			log.Printf("Seeded project: %s (ID: %s)", projects[i].Title, projects[i].ID)
		}
	}
}
