package authRoutes

import (
	authControllers "adhya/controllers/auth"
	"adhya/middleware"
	authValidators "adhya/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/forgot-password", middleware.ForgotPasswordLimiter(), authValidators.ForgotPassword(), authControllers.ForgotPassword)
	authGroup.Post("/reset-password", authValidators.ResetPassword(), authControllers.ResetPassword)

	authGroup.Get("/me", middleware.JWTMiddleware, authControllers.GetOwner)
	authGroup.Put("/change-password", authValidators.ChangePassword(), middleware.JWTMiddleware, authControllers.ChangePassword)
	authGroup.Post("/change-email/request", authValidators.RequestEmailChange(), middleware.JWTMiddleware, authControllers.RequestEmailChange)
	authGroup.Post("/change-email/verify", authValidators.VerifyEmailChange(), middleware.JWTMiddleware, authControllers.VerifyEmailChange)
	authGroup.Post("/change-email/resend", middleware.JWTMiddleware, authControllers.ResendEmailChangeOTP)
}
