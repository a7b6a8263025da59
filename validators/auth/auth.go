package authValidator

import (
	"adhya/middleware"
	"adhya/validators"

	"github.com/gofiber/fiber/v2"
)

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required,min=8"`
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

// ChangePassword validator middleware
func ChangePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CurrentPassword string `json:"currentPassword" validate:"required"`
			NewPassword     string `json:"newPassword" validate:"required,min=8"`
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

// ForgotPassword validator middleware
func ForgotPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email string `json:"email" validate:"required,email"`
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

// ResetPassword validator middleware
func ResetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Token       string `json:"token" validate:"required"`
			NewPassword string `json:"newPassword" validate:"required,min=8"`
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

// RequestEmailChange validator middleware
func RequestEmailChange() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Password string `json:"password" validate:"required"`
			NewEmail string `json:"newEmail" validate:"required,email"`
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

// VerifyEmailChange validator middleware
func VerifyEmailChange() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			OTP string `json:"otp" validate:"required,otp"`
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
