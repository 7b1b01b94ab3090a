package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terravista/estates/internal/storage"
	"github.com/terravista/estates/internal/utils"
	"gorm.io/gorm"
)

// UploadHandler handles standalone image uploads for the CMS editor.
type UploadHandler struct {
	DB      *gorm.DB
	Uploads *storage.Uploader
}

// entity path parameter to object-key prefix
var uploadPrefixes = map[string]string{
	"property": storage.PropertyImagePrefix,
	"blog":     storage.BlogImagePrefix,
}

// UploadImage handles POST /api/images/:entity
// @Summary Upload an image to object storage
// @Description Uploads a multipart 'file' part under the entity's key prefix and returns the public URL.
// @Tags Images
// @Accept mpfd
// @Produce json
// @Param entity path string true "Entity type" Enums(property, blog)
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /images/{entity} [post]
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	if _, err := getSession(c); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized)
	}

	prefix, ok := uploadPrefixes[c.Params("entity")]
	if !ok {
		return utils.ErrorResponse(c, "unknown entity type", fiber.StatusBadRequest)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, "file part is required", fiber.StatusBadRequest)
	}

	url, err := uploadAttachment(c, h.Uploads, prefix, fileHeader)
	if err != nil {
		return respondServiceError(c, err)
	}

	return utils.DataResponse(c, fiber.StatusCreated, fiber.Map{"url": url})
}
