package brokerRoutes

import (
	brokerControllers "adhya/controllers/broker"
	"adhya/middleware"
	brokerValidators "adhya/validators/broker"

	"github.com/gofiber/fiber/v2"
)

func SetupBrokerRoutes(app *fiber.App) {
	brokerGroup := app.Group("/api/brokers", middleware.JWTMiddleware)

	brokerGroup.Post("/", brokerValidators.Create(), brokerControllers.AddBroker)
	brokerGroup.Get("/", brokerControllers.GetAllBrokers)
	brokerGroup.Get("/active", brokerControllers.GetActiveBrokers)
	brokerGroup.Get("/summary", brokerControllers.GetBrokerSummary)

	brokerGroup.Get("/:id/work", brokerValidators.Work(), brokerControllers.GetBrokerWork)
	brokerGroup.Put("/:id", brokerValidators.Update(), brokerControllers.UpdateBroker)
	brokerGroup.Patch("/:id/disable", brokerControllers.DisableBroker)
	brokerGroup.Patch("/:id/enable", brokerControllers.EnableBroker)
}
