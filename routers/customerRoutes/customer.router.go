package customerRoutes

import (
	customerControllers "adhya/controllers/customer"
	"adhya/middleware"
	"adhya/validators"
	customerValidators "adhya/validators/customer"

	"github.com/gofiber/fiber/v2"
)

func SetupCustomerRoutes(app *fiber.App) {
	customerGroup := app.Group("/api/customers", middleware.JWTMiddleware)

	customerGroup.Post("/", customerValidators.Create(), customerControllers.AddCustomer)
	customerGroup.Get("/", customerControllers.GetCustomers)
	customerGroup.Get("/trash", customerControllers.GetTrashCustomers)
	customerGroup.Get("/search", customerValidators.Search(), customerControllers.SearchCustomer)

	// Bulk routes are registered before the :id routes so fiber never
	// matches "bulk-trash" as an ID.
	customerGroup.Put("/bulk-trash", customerValidators.BulkIDs(), customerControllers.BulkSoftDelete)
	customerGroup.Put("/bulk-restore", customerValidators.BulkIDs(), customerControllers.BulkRestore)
	customerGroup.Post("/bulk-permanent", customerValidators.BulkIDs(), customerControllers.BulkPermanentDelete)

	customerGroup.Get("/:id", customerControllers.GetSingleCustomer)
	customerGroup.Put("/:id", customerValidators.Update(), customerControllers.UpdateCustomerDetails)
	customerGroup.Put("/:id/trash", customerControllers.SoftDeleteCustomer)
	customerGroup.Put("/:id/restore", customerControllers.RestoreCustomer)
	customerGroup.Delete("/:id/permanent", customerControllers.PermanentDeleteCustomer)

	customerGroup.Post("/:id/documents", validators.Document(), customerControllers.AddDocument)
	customerGroup.Delete("/:customerId/documents/:documentId", customerControllers.DeleteDocument)
}
