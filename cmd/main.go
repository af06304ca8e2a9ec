package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"github.com/joho/godotenv"

	"pharmacore/internal/analytics"
	"pharmacore/internal/caching"
	"pharmacore/internal/handlers"
	"pharmacore/internal/jobs/background"
	"pharmacore/internal/middleware"
	"pharmacore/internal/repositories"
	"pharmacore/internal/services"
	"pharmacore/pkg/database"
)

const version = "1.0.0"

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := database.New(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret; tokens will not survive a restart")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if parsed, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = parsed
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	reportBucket := os.Getenv("REPORT_BUCKET")
	if reportBucket == "" {
		reportBucket = "pharmacy-reports"
	}

	reportStorage, err := services.NewReportStorage(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize report storage: %v", err)
	}
	if err := reportStorage.EnsureBucketExists(context.Background(), reportBucket); err != nil {
		log.Printf("WARNING: report bucket unavailable: %v", err)
	}

	// Create repositories
	medicineRepo := repositories.NewMedicineRepo(db.Pool)
	customerRepo := repositories.NewCustomerRepo(db.Pool)
	supplierRepo := repositories.NewSupplierRepo(db.Pool)
	employeeRepo := repositories.NewEmployeeRepo(db.Pool)
	orderRepo := repositories.NewOrderRepo(db.Pool)
	orderItemRepo := repositories.NewOrderItemRepo(db.Pool)
	prescriptionRepo := repositories.NewPrescriptionRepo(db.Pool)
	prescriptionItemRepo := repositories.NewPrescriptionItemRepo(db.Pool)
	saleRepo := repositories.NewSaleRepo(db.Pool)
	paymentRepo := repositories.NewPaymentRepo(db.Pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	medicineSvc := services.NewMedicineService(db, medicineRepo, orderItemRepo, cacheSvc)
	orderSvc := services.NewOrderService(db, orderRepo, orderItemRepo, medicineRepo, customerRepo, saleRepo, paymentRepo)
	prescriptionSvc := services.NewPrescriptionService(db, prescriptionRepo, prescriptionItemRepo, medicineRepo)
	customerSvc := services.NewCustomerService(db, customerRepo, orderRepo, orderItemRepo,
		prescriptionRepo, prescriptionItemRepo, saleRepo, paymentRepo)
	analyticsSvc := analytics.NewAnalyticsService(db.Pool, cacheSvc)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(employeeRepo, []byte(jwtSecret))
	medicineHandlers := handlers.NewMedicineHandlers(medicineSvc)
	customerHandlers := handlers.NewCustomerHandlers(customerSvc, orderSvc, paymentRepo)
	supplierHandlers := handlers.NewSupplierHandlers(supplierRepo)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	prescriptionHandlers := handlers.NewPrescriptionHandlers(prescriptionSvc)
	reportHandlers := handlers.NewReportHandlers(analyticsSvc)
	healthHandlers := handlers.NewHealthHandlers(db)

	// Background jobs
	jobScheduler, err := background.NewJobScheduler(analyticsSvc, medicineRepo, reportStorage, reportBucket)
	if err != nil {
		log.Fatalf("Failed to initialize job scheduler: %v", err)
	}
	jobScheduler.Start()
	defer func() {
		if err := jobScheduler.Stop(); err != nil {
			log.Printf("Job scheduler shutdown: %v", err)
		}
	}()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// API routes
	v1 := e.Group("/v1")

	// Authentication routes (no JWT required for signup/login)
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)

	// Protected routes (require JWT)
	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(middleware.JWTConfig([]byte(jwtSecret))))

	protected.GET("/me", authHandlers.Me)

	// Medicine routes
	protected.GET("/medicines", medicineHandlers.ListMedicines)
	protected.POST("/medicines", medicineHandlers.CreateMedicine)
	protected.GET("/medicines/low-stock", medicineHandlers.LowStockMedicines)
	protected.GET("/medicines/:id", medicineHandlers.GetMedicine)
	protected.PUT("/medicines/:id", medicineHandlers.UpdateMedicine)
	protected.DELETE("/medicines/:id", medicineHandlers.DeleteMedicine)

	// Customer routes
	protected.GET("/customers", customerHandlers.ListCustomers)
	protected.POST("/customers", customerHandlers.CreateCustomer)
	protected.GET("/customers/:id", customerHandlers.GetCustomer)
	protected.PUT("/customers/:id", customerHandlers.UpdateCustomer)
	protected.DELETE("/customers/:id", customerHandlers.DeleteCustomer)
	protected.GET("/customers/:id/orders", customerHandlers.ListCustomerOrders)
	protected.GET("/customers/:id/payments", customerHandlers.ListCustomerPayments)
	protected.POST("/customers/:id/loyalty", customerHandlers.AdjustLoyaltyPoints)

	// Supplier routes
	protected.GET("/suppliers", supplierHandlers.ListSuppliers)
	protected.POST("/suppliers", supplierHandlers.CreateSupplier)
	protected.GET("/suppliers/:id", supplierHandlers.GetSupplier)
	protected.PUT("/suppliers/:id", supplierHandlers.UpdateSupplier)
	protected.DELETE("/suppliers/:id", supplierHandlers.DeleteSupplier)

	// Order routes
	protected.GET("/orders", orderHandlers.ListOrders)
	protected.POST("/orders", orderHandlers.CreateOrder)
	protected.GET("/orders/:id", orderHandlers.GetOrder)
	protected.DELETE("/orders/:id", orderHandlers.DeleteOrder)

	// Prescription routes
	protected.GET("/prescriptions", prescriptionHandlers.ListPrescriptions)
	protected.POST("/prescriptions", prescriptionHandlers.CreatePrescription)
	protected.GET("/prescriptions/:id", prescriptionHandlers.GetPrescription)
	protected.PUT("/prescriptions/:id", prescriptionHandlers.UpdatePrescription)
	protected.DELETE("/prescriptions/:id", prescriptionHandlers.DeletePrescription)

	// Report routes
	protected.GET("/reports/top-selling", reportHandlers.TopSellingMedicines)
	protected.GET("/reports/revenue", reportHandlers.MonthlyRevenueTrend)
	protected.GET("/reports/employee-performance", reportHandlers.EmployeePerformance)
	protected.GET("/reports/restock", reportHandlers.RestockRecommendations)
	protected.GET("/reports/restock.csv", reportHandlers.RestockCSV)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Pharmacore server v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
