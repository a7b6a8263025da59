package policyValidator

import (
	"adhya/middleware"
	"adhya/validators"

	"github.com/gofiber/fiber/v2"
)

// Create validator middleware. Dates are calendar days in YYYY-MM-DD form and
// the end date may not precede the start date.
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CustomerID      uint   `json:"customerId" validate:"required"`
			BrokerID        *uint  `json:"brokerId"`
			PolicyNumber    string `json:"policyNumber" validate:"required"`
			PolicyStartDate string `json:"policyStartDate" validate:"required"`
			PolicyEndDate   string `json:"policyEndDate" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errs := validators.CheckStruct(reqData)
		if errs == nil {
			errs = checkDateOrder(reqData.PolicyStartDate, reqData.PolicyEndDate)
		}
		if errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		return c.Next()
	}
}

// Update validator middleware. Dates optional, but both must parse and stay
// ordered when present.
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PolicyNumber    string `json:"policyNumber"`
			PolicyStartDate string `json:"policyStartDate"`
			PolicyEndDate   string `json:"policyEndDate"`
			BrokerID        *uint  `json:"brokerId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		for field, value := range map[string]string{
			"policyStartDate": reqData.PolicyStartDate,
			"policyEndDate":   reqData.PolicyEndDate,
		} {
			if value == "" {
				continue
			}
			if _, err := validators.ParseDate(value); err != nil {
				errors[field] = "Invalid date, use YYYY-MM-DD!"
			}
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		// Order against the stored dates is checked in the controller; only
		// a fully supplied pair can be checked here.
		if reqData.PolicyStartDate != "" && reqData.PolicyEndDate != "" {
			if errs := checkDateOrder(reqData.PolicyStartDate, reqData.PolicyEndDate); errs != nil {
				return middleware.ValidationErrorResponse(c, errs)
			}
		}

		return c.Next()
	}
}

// Acknowledge validates the snooze body for expiry notifications.
func Acknowledge() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Days int `json:"days" validate:"omitempty,min=1"`
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

func checkDateOrder(start, end string) map[string]string {
	errors := make(map[string]string)

	startDate, err := validators.ParseDate(start)
	if err != nil {
		errors["policyStartDate"] = "Invalid date, use YYYY-MM-DD!"
	}
	endDate, err := validators.ParseDate(end)
	if err != nil {
		errors["policyEndDate"] = "Invalid date, use YYYY-MM-DD!"
	}

	if len(errors) == 0 && endDate.Before(startDate) {
		errors["policyEndDate"] = "End date cannot be before start date!"
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}
