package notificationRoutes

import (
	notificationControllers "adhya/controllers/notification"
	"adhya/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/api/notifications", middleware.JWTMiddleware)

	notificationGroup.Get("/", notificationControllers.GetNotifications)
	notificationGroup.Get("/unsnoozed", notificationControllers.GetNotificationsWithoutSnoozed)
}
