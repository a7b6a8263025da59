package policyRoutes

import (
	notificationControllers "adhya/controllers/notification"
	policyControllers "adhya/controllers/policy"
	"adhya/middleware"
	"adhya/validators"
	policyValidators "adhya/validators/policy"

	"github.com/gofiber/fiber/v2"
)

func SetupPolicyRoutes(app *fiber.App) {
	policyGroup := app.Group("/api/policy", middleware.JWTMiddleware)

	policyGroup.Post("/", policyValidators.Create(), policyControllers.AddPolicy)
	policyGroup.Get("/allPolicy", policyControllers.GetAllPolicies)
	policyGroup.Get("/customer/:customerId", policyControllers.GetPoliciesByCustomer)

	policyGroup.Get("/:id", policyControllers.GetSinglePolicy)
	policyGroup.Put("/:id", policyValidators.Update(), policyControllers.UpdatePolicy)
	policyGroup.Delete("/:id", policyControllers.DeletePolicy)
	policyGroup.Patch("/:id/archive", policyControllers.ArchivePolicy)
	policyGroup.Patch("/:id/acknowledge", policyValidators.Acknowledge(), notificationControllers.AcknowledgePolicyNotification)

	policyGroup.Post("/:id/documents", validators.Document(), policyControllers.AddDocument)
	policyGroup.Delete("/:policyId/documents/:documentId", policyControllers.DeleteDocument)
}
