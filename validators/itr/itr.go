package itrValidator

import (
	"adhya/middleware"
	"adhya/validators"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Create validator middleware
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CustomerID     uint   `json:"customerId" validate:"required"`
			BrokerID       *uint  `json:"brokerId"`
			PANNumber      string `json:"panNumber" validate:"required,pan"`
			PortalPassword string `json:"portalPassword" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		// PAN is case-insensitive on input, stored uppercased
		reqData.PANNumber = strings.ToUpper(strings.TrimSpace(reqData.PANNumber))

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
			PANNumber      string `json:"panNumber" validate:"omitempty,pan"`
			PortalPassword string `json:"portalPassword"`
			BrokerID       *uint  `json:"brokerId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.PANNumber = strings.ToUpper(strings.TrimSpace(reqData.PANNumber))

		if errs := validators.CheckStruct(reqData); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		return c.Next()
	}
}
