package storageRoutes

import (
	storageControllers "adhya/controllers/storage"
	"adhya/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupStorageRoutes(app *fiber.App) {
	storageGroup := app.Group("/api/storage", middleware.JWTMiddleware)

	storageGroup.Post("/presign-upload", storageControllers.PresignUpload)
}
