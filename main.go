package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/logging"
	"backend/internal/mailer"
	"backend/internal/middleware"
	"backend/internal/store"
	"backend/internal/workflow"
)

func main() {
	config.Load()

	if err := logging.InitLogger(config.AppEnv.Environment); err != nil {
		log.Fatal(err)
	}
	defer logging.SyncLogger()
	logger := logging.GetLogger()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		logger.Fatal("mongodb connection failed", zap.Error(err))
	}

	db := client.Database(config.AppEnv.DBName)
	logger.Info("mongodb connected", zap.String("database", db.Name()))

	if err := database.EnsureProductIndexes(db); err != nil {
		logger.Warn("product index bootstrap failed", zap.Error(err))
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		logger.Warn("user index bootstrap failed", zap.Error(err))
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		logger.Warn("order index bootstrap failed", zap.Error(err))
	}
	if err := database.EnsurePaymentIndexes(db); err != nil {
		logger.Warn("payment index bootstrap failed", zap.Error(err))
	}

	smtp := mailer.NewSMTP(mailer.SMTPConfig{
		Host:     config.AppEnv.SMTPHost,
		Port:     config.AppEnv.SMTPPort,
		Username: config.AppEnv.SMTPUsername,
		Password: config.AppEnv.SMTPPassword,
		From:     config.AppEnv.MailFrom,
		SiteName: config.AppEnv.SiteName,
	})

	svc := workflow.NewService(store.NewMongo(db), smtp)

	if config.AppEnv.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppEnv.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/auth/register", handlers.Register(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/login", handlers.Login(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.GET("/auth/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))
	r.POST("/auth/refresh", handlers.Refresh(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/logout", handlers.Logout(db))

	r.POST("/admin/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/payment-methods", handlers.GetPaymentMethods(db))
	r.POST("/orders", handlers.CreateOrder(svc, config.AppEnv.JWTSecret))
	r.GET("/orders", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMyOrders(db))
	r.GET("/orders/:id", handlers.GetOrder(db))
	r.POST("/payment/submit", handlers.SubmitPayment(svc))

	user := r.Group("/user")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.GET("/profile", handlers.GetProfile(db))
		user.PUT("/profile", handlers.UpdateProfile(db))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/orders", handlers.GetAllOrders(db))
		admin.GET("/orders/:id", handlers.GetAdminOrder(db))
		admin.PUT("/orders/:id/accept-payment", handlers.AcceptPayment(svc, db))
		admin.PUT("/orders/:id/reject-payment", handlers.RejectPayment(svc, db))
		admin.PUT("/orders/:id/status", handlers.OverrideOrderStatus(svc))
		admin.PUT("/orders/:id", handlers.UpdateOrder(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))
		admin.POST("/deliver-vpn", handlers.DeliverVPN(svc))

		admin.GET("/payments", handlers.GetAllPayments(db))
		admin.GET("/payments/:id", handlers.GetPayment(db))

		admin.GET("/products", handlers.GetAllProducts(db))
		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))

		admin.GET("/settings", handlers.GetSettings(db))
		admin.PUT("/settings", handlers.UpdateSettings(db))
		admin.POST("/settings/payment-methods", handlers.AddPaymentMethod(db))
		admin.PUT("/settings/payment-methods/:id", handlers.UpdatePaymentMethod(db))
		admin.PUT("/settings/payment-methods/:id/toggle", handlers.TogglePaymentMethod(db))
		admin.DELETE("/settings/payment-methods/:id", handlers.DeletePaymentMethod(db))

		admin.GET("/users", handlers.GetAllUsers(db))
		admin.PUT("/users/:id", handlers.UpdateUser(db))
		admin.DELETE("/users/:id", handlers.DeleteUser(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
