package storageController

import (
	"adhya/middleware"
	"adhya/utils"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PresignUpload hands the client a short lived PUT URL so file bytes never
// pass through this server.
func PresignUpload(c *fiber.Ctx) error {
	reqData := new(struct {
		FileName string `json:"fileName"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	if strings.TrimSpace(reqData.FileName) == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File name is required!", nil)
	}

	if !utils.StorageEnabled() {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Storage is not configured!", nil)
	}

	uploadURL, publicURL, key, err := utils.PresignUpload(reqData.FileName)
	if err != nil {
		log.Printf("Error presigning upload: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to presign upload!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Upload URL generated.", fiber.Map{
		"uploadUrl": uploadURL,
		"url":       publicURL,
		"publicId":  key,
	})
}
