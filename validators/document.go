package validators

import (
	"adhya/middleware"

	"github.com/gofiber/fiber/v2"
)

// Document validates the attach-document body shared by the customer, policy,
// GST and ITR routes.
func Document() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Label        string `json:"label"`
			URL          string `json:"url" validate:"required,url"`
			PublicID     string `json:"publicId" validate:"required"`
			ResourceType string `json:"resourceType" validate:"required,oneof=image raw"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errs := CheckStruct(reqData); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		return c.Next()
	}
}
