// property.go
//
// Server-side data and lead-capture service for the Terravista estates site
// Copyright (c) 2026 Terravista Realty Advisors
//
// This file is part of estates.
// estates is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// estates is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with estates.
// If not, see <https://www.gnu.org/licenses/>.

package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terravista/estates/internal/models"
	"github.com/terravista/estates/internal/services"
	"github.com/terravista/estates/internal/storage"
	"github.com/terravista/estates/internal/types"
	"github.com/terravista/estates/internal/utils"
	"github.com/terravista/estates/internal/validation"
	"gorm.io/gorm"
)

// PropertyHandler handles property routes
type PropertyHandler struct {
	DB      *gorm.DB
	Uploads *storage.Uploader
}

// mutable fields accepted in partial property updates
var propertyUpdateFields = map[string]struct{}{
	"name": {}, "description": {}, "location": {}, "type": {}, "status": {},
	"valuation": {}, "investment_period": {}, "price_per_sqft": {},
	"total_area_sqft": {}, "bedrooms": {}, "bathrooms": {}, "parking_spaces": {},
	"min_investment": {}, "image_url": {}, "rera": {}, "published": {}, "featured": {},
}

// ListProperties handles GET /api/properties
// @Summary List published properties
// @Description List published properties with conjunctive filters, or free-text search when 'search' is present
// @Tags Properties
// @Produce json
// @Param location query string false "Exact location"
// @Param type query string false "Exact type"
// @Param status query string false "Exact status"
// @Param investment_period query string false "Exact investment period"
// @Param valuation query string false "Exact valuation"
// @Param min_price query int false "Inclusive lower bound on price per sqft"
// @Param max_price query int false "Inclusive upper bound on price per sqft"
// @Param featured query bool false "Featured flag"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param search query string false "Free-text search; overrides all filters except limit"
// @Success 200 {object} utils.ListResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /properties [get]
func (h *PropertyHandler) ListProperties(c *fiber.Ctx) error {
	// The search override is a distinct code path: all other filters
	// except limit are ignored.
	if term := c.Query("search"); term != "" {
		limit := 0
		if l := queryInt(c, "limit"); l != nil {
			limit = *l
		}
		properties, count, err := services.SearchProperties(h.DB, term, limit)
		if err != nil {
			return respondServiceError(c, err)
		}
		return utils.ListResponse(c, properties, count)
	}

	properties, count, err := services.GetProperties(h.DB, parsePropertyFilters(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.ListResponse(c, properties, count)
}

// GetProperty handles GET /api/properties/:id
// @Summary Get a published property
// @Tags Properties
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} models.Property
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /properties/{id} [get]
func (h *PropertyHandler) GetProperty(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest)
	}

	property, err := services.GetProperty(h.DB, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.DataResponse(c, fiber.StatusOK, property)
}

// ListUserProperties handles GET /api/user/properties
// @Summary List the caller's properties, published or not
// @Tags Properties
// @Produce json
// @Success 200 {object} utils.ListResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /user/properties [get]
func (h *PropertyHandler) ListUserProperties(c *fiber.Ctx) error {
	sess, err := getSession(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized)
	}

	properties, count, err := services.GetUserProperties(h.DB, sess)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.ListResponse(c, properties, count)
}

// CreateProperty handles POST /api/properties
// @Summary Create a property
// @Description Create a property from JSON or multipart form data. A multipart 'image' part is uploaded to object storage first; if the upload fails the property is not created.
// @Tags Properties
// @Accept json
// @Produce json
// @Success 201 {object} models.Property
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /properties [post]
func (h *PropertyHandler) CreateProperty(c *fiber.Ctx) error {
	sess, err := getSession(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized)
	}

	form, fileHeader, err := parsePropertyPayload(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest)
	}

	if fields := validation.Check(form); fields != nil {
		return utils.FieldErrorResponse(c, "Validation failed", fiber.StatusBadRequest, fields)
	}

	// Upload before create. A failed upload aborts the whole submit;
	// the entity must not be created without its image.
	imageURL := form.ImageURL
	if fileHeader != nil {
		url, err := uploadAttachment(c, h.Uploads, storage.PropertyImagePrefix, fileHeader)
		if err != nil {
			return respondServiceError(c, err)
		}
		imageURL = url
	}

	property := &models.Property{
		Name:             form.Name,
		Description:      form.Description,
		Location:         form.Location,
		Type:             form.Type,
		Status:           form.Status,
		Valuation:        form.Valuation,
		InvestmentPeriod: form.InvestmentPeriod,
		PricePerSqft:     form.PricePerSqft,
		TotalAreaSqft:    form.TotalAreaSqft,
		Bedrooms:         form.Bedrooms,
		Bathrooms:        form.Bathrooms,
		ParkingSpaces:    form.ParkingSpaces,
		MinInvestment:    form.MinInvestment,
		Rera:             form.Rera,
		Published:        form.Published,
		Featured:         form.Featured,
	}
	if imageURL != "" {
		property.ImageURL = &imageURL
	}

	created, err := services.CreateProperty(h.DB, sess, property)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, created)
}

// UpdateProperty handles PUT /api/properties/:id
// @Summary Update an owned property
// @Tags Properties
// @Accept json
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} models.Property
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /properties/{id} [put]
func (h *PropertyHandler) UpdateProperty(c *fiber.Ctx) error {
	sess, err := getSession(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest)
	}

	changes, err := parseChanges(c.Body(), propertyUpdateFields)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest)
	}

	property, err := services.UpdateProperty(h.DB, sess, id, changes)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.DataResponse(c, fiber.StatusOK, property)
}

// DeleteProperty handles DELETE /api/properties/:id
// @Summary Delete an owned property
// @Tags Properties
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /properties/{id} [delete]
func (h *PropertyHandler) DeleteProperty(c *fiber.Ctx) error {
	sess, err := getSession(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest)
	}

	if err := services.DeleteProperty(h.DB, sess, id); err != nil {
		return respondServiceError(c, err)
	}
	return utils.DeletedResponse(c, 1)
}

// AddGalleryImage handles POST /api/properties/:id/gallery
// @Summary Append an image to an owned property's gallery
// @Tags Properties
// @Accept mpfd
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} models.Property
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /properties/{id}/gallery [post]
func (h *PropertyHandler) AddGalleryImage(c *fiber.Ctx) error {
	sess, err := getSession(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, "file part is required", fiber.StatusBadRequest)
	}

	url, err := uploadAttachment(c, h.Uploads, storage.PropertyImagePrefix, fileHeader)
	if err != nil {
		return respondServiceError(c, err)
	}

	property, err := services.AddGalleryImage(h.DB, sess, id, url)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.DataResponse(c, fiber.StatusOK, property)
}

// parsePropertyPayload reads a property form from a JSON body or a
// multipart form (CMS submits with an image attach as multipart).
func parsePropertyPayload(c *fiber.Ctx) (*validation.PropertyForm, *multipart.FileHeader, error) {
	contentType := string(c.Request().Header.ContentType())
	if strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		form := &validation.PropertyForm{
			Name:             c.FormValue("name"),
			Description:      c.FormValue("description"),
			Location:         c.FormValue("location"),
			Type:             c.FormValue("type"),
			Status:           c.FormValue("status"),
			Valuation:        c.FormValue("valuation"),
			InvestmentPeriod: c.FormValue("investment_period"),
			PricePerSqft:     formUint(c, "price_per_sqft"),
			TotalAreaSqft:    formUint(c, "total_area_sqft"),
			Bedrooms:         formUint(c, "bedrooms"),
			Bathrooms:        formUint(c, "bathrooms"),
			ParkingSpaces:    formUint(c, "parking_spaces"),
			MinInvestment:    c.FormValue("min_investment"),
			ImageURL:         c.FormValue("image_url"),
			Rera:             formBool(c, "rera"),
			Published:        formBool(c, "published"),
			Featured:         formBool(c, "featured"),
		}
		fileHeader, err := c.FormFile("image")
		if err != nil {
			fileHeader = nil
		}
		return form, fileHeader, nil
	}

	form := &validation.PropertyForm{}
	if err := c.BodyParser(form); err != nil {
		return nil, nil, err
	}
	return form, nil, nil
}

// uploadAttachment streams a multipart file to object storage.
func uploadAttachment(c *fiber.Ctx, uploads *storage.Uploader, prefix string, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", types.NewUploadError(fmt.Sprintf("failed to read uploaded file: %v", err))
	}
	defer file.Close()

	return uploads.Upload(c.Context(), prefix, fileHeader.Filename, file)
}

// parseChanges decodes a partial-update JSON body and keeps only the
// whitelisted mutable fields.
func parseChanges(body []byte, allowed map[string]struct{}) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	changes := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		if _, ok := allowed[k]; ok {
			changes[k] = v
		}
	}
	return changes, nil
}

func formUint(c *fiber.Ctx, name string) uint {
	v, err := strconv.ParseUint(c.FormValue(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

func formBool(c *fiber.Ctx, name string) bool {
	v, err := strconv.ParseBool(c.FormValue(name))
	if err != nil {
		return false
	}
	return v
}
