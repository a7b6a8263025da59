package main

import (
	"adhya/config"
	"adhya/database"
	authRoutes "adhya/routers/authRoutes"
	brokerRoutes "adhya/routers/brokerRoutes"
	customerRoutes "adhya/routers/customerRoutes"
	gstRoutes "adhya/routers/gstRoutes"
	itrRoutes "adhya/routers/itrRoutes"
	notificationRoutes "adhya/routers/notificationRoutes"
	policyRoutes "adhya/routers/policyRoutes"
	storageRoutes "adhya/routers/storageRoutes"
	"adhya/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	if err := utils.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	customerRoutes.SetupCustomerRoutes(app)
	policyRoutes.SetupPolicyRoutes(app)
	gstRoutes.SetupGSTRoutes(app)
	itrRoutes.SetupITRRoutes(app)
	brokerRoutes.SetupBrokerRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)
	storageRoutes.SetupStorageRoutes(app)

	utils.StartExpiryScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
