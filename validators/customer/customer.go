package customerValidator

import (
	"adhya/middleware"
	"adhya/validators"

	"github.com/gofiber/fiber/v2"
)

// Create validator middleware
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name    string `json:"name" validate:"required,min=2"`
			Mobile  string `json:"mobile" validate:"omitempty,mobileIN"`
			Aadhar  string `json:"aadhar" validate:"omitempty,aadhar"`
			Address string `json:"address"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errs := validators.CheckStruct(reqData); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		return c.Next()
	}
}

// Update validator middleware. All fields optional; present ones must be valid.
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name    string `json:"name" validate:"omitempty,min=2"`
			Mobile  string `json:"mobile" validate:"omitempty,mobileIN"`
			Aadhar  string `json:"aadhar" validate:"omitempty,aadhar"`
			Address string `json:"address"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errs := validators.CheckStruct(reqData); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		return c.Next()
	}
}

// Search validator middleware
func Search() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		searchType := c.Query("type")
		switch searchType {
		case "name", "mobile", "aadhar", "address":
		default:
			errors["type"] = "Type must be one of name, mobile, aadhar, address!"
		}

		if c.Query("q") == "" {
			errors["q"] = "Search query is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// BulkIDs validates the {ids} body shared by the bulk trash/restore/delete routes.
func BulkIDs() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			IDs []uint `json:"ids"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.IDs) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No customer IDs provided", nil)
		}

		return c.Next()
	}
}
