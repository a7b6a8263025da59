package gstRoutes

import (
	gstControllers "adhya/controllers/gst"
	"adhya/middleware"
	"adhya/validators"
	gstValidators "adhya/validators/gst"

	"github.com/gofiber/fiber/v2"
)

func SetupGSTRoutes(app *fiber.App) {
	gstGroup := app.Group("/api/gst", middleware.JWTMiddleware)

	gstGroup.Post("/", gstValidators.Create(), gstControllers.AddGST)
	gstGroup.Get("/allGST", gstControllers.GetAllGST)
	gstGroup.Get("/customer/:customerId", gstControllers.GetGSTByCustomer)

	gstGroup.Get("/:id", gstControllers.GetSingleGST)
	gstGroup.Put("/:id", gstValidators.Update(), gstControllers.UpdateGST)
	gstGroup.Delete("/:id", gstControllers.DeleteGST)

	gstGroup.Post("/:id/documents", validators.Document(), gstControllers.AddDocument)
	gstGroup.Delete("/:gstId/documents/:documentId", gstControllers.DeleteDocument)
}
