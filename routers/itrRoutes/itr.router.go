package itrRoutes

import (
	itrControllers "adhya/controllers/itr"
	"adhya/middleware"
	"adhya/validators"
	itrValidators "adhya/validators/itr"

	"github.com/gofiber/fiber/v2"
)

func SetupITRRoutes(app *fiber.App) {
	itrGroup := app.Group("/api/itr", middleware.JWTMiddleware)

	itrGroup.Post("/", itrValidators.Create(), itrControllers.AddITR)
	itrGroup.Get("/allITR", itrControllers.GetAllITR)
	itrGroup.Get("/customer/:customerId", itrControllers.GetITRByCustomer)

	itrGroup.Get("/:id", itrControllers.GetSingleITR)
	itrGroup.Put("/:id", itrValidators.Update(), itrControllers.UpdateITR)
	itrGroup.Delete("/:id", itrControllers.DeleteITR)

	itrGroup.Post("/:id/documents", validators.Document(), itrControllers.AddDocument)
	itrGroup.Delete("/:itrId/documents/:documentId", itrControllers.DeleteDocument)
}
