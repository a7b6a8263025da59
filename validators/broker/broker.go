package brokerValidator

import (
	"adhya/middleware"
	"adhya/validators"

	"github.com/gofiber/fiber/v2"
)

// Create validator middleware
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name   string `json:"name" validate:"required,min=2"`
			Mobile string `json:"mobile" validate:"omitempty,mobileIN"`
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

// Update validator middleware
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name   string `json:"name" validate:"omitempty,min=2"`
			Mobile string `json:"mobile" validate:"omitempty,mobileIN"`
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

// Work validates the broker workload listing query.
func Work() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		switch c.Query("type", "policy") {
		case "policy", "itr", "gst":
		default:
			errors["type"] = "Type must be one of policy, itr, gst!"
		}

		for _, key := range []string{"from", "to"} {
			if v := c.Query(key); v != "" {
				if _, err := validators.ParseDate(v); err != nil {
					errors[key] = "Invalid date, use YYYY-MM-DD!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
