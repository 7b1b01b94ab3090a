// lead.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/terravista/estates/internal/leadflow"
	"github.com/terravista/estates/internal/services"
	"github.com/terravista/estates/internal/types"
	"github.com/terravista/estates/internal/utils"
	"github.com/terravista/estates/internal/validation"
	"gorm.io/gorm"
)

// LeadHandler handles lead capture and admin lead reporting
type LeadHandler struct {
	DB *gorm.DB
}

// CreateLead handles POST /api/leads
// @Summary Submit a contact lead for a property
// @Description Anonymous endpoint. The target property must exist and be published; its display name is snapshotted onto the lead.
// @Tags Leads
// @Accept json
// @Produce json
// @Success 201 {object} models.Lead
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /leads [post]
func (h *LeadHandler) CreateLead(c *fiber.Ctx) error {
	var form validation.LeadForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest)
	}

	if form.PropertyID == 0 {
		return utils.FieldErrorResponse(c, "Validation failed", fiber.StatusBadRequest,
			map[string]string{"property_id": "is required"})
	}

	property, err := services.GetProperty(h.DB, form.PropertyID)
	if err != nil {
		return respondServiceError(c, err)
	}

	flow := leadflow.New(h.DB, nil)
	lead, err := flow.Submit(form, *property)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.DataResponse(c, fiber.StatusCreated, lead)
}

// ListLeads handles GET /api/leads
// @Summary List captured leads, newest first
// @Tags Leads
// @Produce json
// @Success 200 {object} utils.ListResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /leads [get]
func (h *LeadHandler) ListLeads(c *fiber.Ctx) error {
	sess, err := getSession(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized)
	}

	leads, count, err := services.GetLeads(h.DB, sess)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.ListResponse(c, leads, count)
}

// DeleteLeads handles DELETE /api/leads
// @Summary Delete processed leads
// @Description Accepts {"ids": [1, 2]} or a single id, as a number or a numeric string.
// @Tags Leads
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /leads [delete]
func (h *LeadHandler) DeleteLeads(c *fiber.Ctx) error {
	sess, err := getSession(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized)
	}

	var payload struct {
		IDs types.FlexList[types.FlexUint64] `json:"ids"`
	}
	if err := c.BodyParser(&payload); err != nil || len(payload.IDs) == 0 {
		return utils.ErrorResponse(c, "ids is required", fiber.StatusBadRequest)
	}

	ids := make([]uint64, 0, len(payload.IDs))
	for _, id := range payload.IDs.Slice() {
		ids = append(ids, id.Uint64())
	}

	affected, err := services.DeleteLeads(h.DB, sess, ids)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.DeletedResponse(c, affected)
}
