package authController

import (
	"adhya/config"
	"adhya/database"
	"adhya/middleware"
	"adhya/models"
	"adhya/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpValidity      = 10 * time.Minute
	resetValidity    = 15 * time.Minute
	resendCooldown   = 60 * time.Second
	resendCap        = 3
	resendFreshAfter = time.Hour
)

// currentUser loads the authenticated owner from the JWT context.
func currentUser(c *fiber.Ctx) (*models.User, bool) {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, false
	}

	var user models.User
	if err := database.Database.Db.First(&user, userId).Error; err != nil {
		return nil, false
	}
	return &user, true
}

func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"id":    user.ID,
		"email": user.Email,
		"token": token,
	})
}

func GetOwner(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Owner details.", fiber.Map{
		"email": user.Email,
	})
}

func ChangePassword(c *fiber.Ctx) error {
	reqData := new(struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.CurrentPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Current password is incorrect!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	user.Password = string(hashedPassword)
	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to change password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password changed successfully.", nil)
}

func ForgotPassword(c *fiber.Ctx) error {
	reqData := new(struct {
		Email string `json:"email"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	resetToken, err := utils.GenerateResetToken()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	expire := time.Now().Add(resetValidity)
	user.ResetPasswordToken = utils.HashToken(resetToken)
	user.ResetPasswordExpire = &expire
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	resetURL := config.AppConfig.FrontendURL + "/reset-password/" + resetToken
	if err := utils.SendResetPasswordEmail(user.Email, resetURL); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send reset email!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset link sent to your email.", nil)
}

func ResetPassword(c *fiber.Ctx) error {
	reqData := new(struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var user models.User
	err := database.Database.Db.
		Where("reset_password_token = ? AND reset_password_expire > ?", utils.HashToken(reqData.Token), time.Now()).
		First(&user).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired token!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	user.Password = string(hashedPassword)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = nil
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successful.", nil)
}

// RequestEmailChange starts the email-change flow: verifies the current
// password, rejects already-registered addresses and emails a 6-digit OTP to
// the candidate address.
func RequestEmailChange(c *fiber.Ctx) error {
	reqData := new(struct {
		Password string `json:"password"`
		NewEmail string `json:"newEmail"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Wrong Password", nil)
	}

	// Reject an address already used by any account
	var existing models.User
	if err := database.Database.Db.Where("email = ?", reqData.NewEmail).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	otp := utils.GenerateOTP()
	now := time.Now()
	expiresAt := now.Add(otpValidity)

	user.PendingEmail = reqData.NewEmail
	user.EmailChangeOTP = utils.HashToken(otp)
	user.EmailChangeOTPExpiresAt = &expiresAt
	user.EmailChangeOTPSentCount = 1
	user.EmailChangeOTPLastSentAt = &now

	if err := utils.SendEmailChangeOTP(reqData.NewEmail, otp); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP to email!", nil)
	}

	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent to the new email address.", nil)
}

// VerifyEmailChange completes the email-change flow on a correct, unexpired OTP.
func VerifyEmailChange(c *fiber.Ctx) error {
	reqData := new(struct {
		OTP string `json:"otp"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if user.PendingEmail == "" || user.EmailChangeOTP == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No pending email change!", nil)
	}

	if user.EmailChangeOTPExpiresAt == nil || user.EmailChangeOTPExpiresAt.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired OTP!", nil)
	}

	if utils.HashToken(reqData.OTP) != user.EmailChangeOTP {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired OTP!", nil)
	}

	user.Email = user.PendingEmail
	user.PendingEmail = ""
	user.EmailChangeOTP = ""
	user.EmailChangeOTPExpiresAt = nil
	user.EmailChangeOTPSentCount = 0
	user.EmailChangeOTPLastSentAt = nil

	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update email!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email updated successfully.", nil)
}

// ResendEmailChangeOTP regenerates the OTP, subject to a 60s cooldown and a
// cap of 3 sends. The counter starts a fresh cycle when the previous OTP is
// more than an hour old.
func ResendEmailChangeOTP(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if user.PendingEmail == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No pending email change!", nil)
	}

	now := time.Now()

	// A stale cycle resets the counter before the cap check
	if user.EmailChangeOTPLastSentAt != nil && now.Sub(*user.EmailChangeOTPLastSentAt) > resendFreshAfter {
		user.EmailChangeOTPSentCount = 0
	}

	if user.EmailChangeOTPSentCount >= resendCap {
		return middleware.JsonResponse(c, fiber.StatusTooManyRequests, false, "OTP resend limit reached. Try again later.", nil)
	}

	if user.EmailChangeOTPLastSentAt != nil && now.Sub(*user.EmailChangeOTPLastSentAt) < resendCooldown {
		return middleware.JsonResponse(c, fiber.StatusTooManyRequests, false, "Please wait before requesting another OTP.", nil)
	}

	otp := utils.GenerateOTP()
	expiresAt := now.Add(otpValidity)

	user.EmailChangeOTP = utils.HashToken(otp)
	user.EmailChangeOTPExpiresAt = &expiresAt
	user.EmailChangeOTPSentCount++
	user.EmailChangeOTPLastSentAt = &now

	if err := utils.SendEmailChangeOTP(user.PendingEmail, otp); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP to email!", nil)
	}

	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP resent successfully.", nil)
}
