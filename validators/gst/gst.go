package gstValidator

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
			CustomerID      uint   `json:"customerId" validate:"required"`
			BrokerID        *uint  `json:"brokerId"`
			GSTNumber       string `json:"gstNumber" validate:"required,gstin"`
			PortalID        string `json:"portalId" validate:"required"`
			PortalPassword  string `json:"portalPassword" validate:"required"`
			FilingFrequency string `json:"filingFrequency" validate:"required,oneof=MONTHLY QUARTERLY YEARLY"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		// GSTIN is case-insensitive on input, stored uppercased
		reqData.GSTNumber = strings.ToUpper(strings.TrimSpace(reqData.GSTNumber))

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
			GSTNumber       string `json:"gstNumber" validate:"omitempty,gstin"`
			PortalID        string `json:"portalId"`
			PortalPassword  string `json:"portalPassword"`
			FilingFrequency string `json:"filingFrequency" validate:"omitempty,oneof=MONTHLY QUARTERLY YEARLY"`
			BrokerID        *uint  `json:"brokerId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.GSTNumber = strings.ToUpper(strings.TrimSpace(reqData.GSTNumber))

		if errs := validators.CheckStruct(reqData); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		return c.Next()
	}
}
