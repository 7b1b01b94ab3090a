// common.go
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
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terravista/estates/internal/services"
	"github.com/terravista/estates/internal/types"
	"github.com/terravista/estates/internal/utils"
)

// getSession extracts the caller's session from context (set by the auth
// middleware).
func getSession(c *fiber.Ctx) (*types.Session, error) {
	sess, ok := c.Locals("session").(*types.Session)
	if !ok || sess == nil {
		return nil, fmt.Errorf("session not found in context")
	}
	return sess, nil
}

// parseID parses a numeric path parameter.
func parseID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// queryInt returns a pointer to a query parameter parsed as int, or nil
// when absent or malformed.
func queryInt(c *fiber.Ctx, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// queryUint returns a pointer to a query parameter parsed as uint.
func queryUint(c *fiber.Ctx, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(v)
	return &u
}

// queryBool returns a pointer to a query parameter parsed as bool.
func queryBool(c *fiber.Ctx, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// parsePropertyFilters builds the service filter record from the query
// string. All fields are optional and conjunctive.
func parsePropertyFilters(c *fiber.Ctx) services.PropertyFilters {
	return services.PropertyFilters{
		Location:         c.Query("location"),
		Type:             c.Query("type"),
		Status:           c.Query("status"),
		InvestmentPeriod: c.Query("investment_period"),
		Valuation:        c.Query("valuation"),
		MinPrice:         queryUint(c, "min_price"),
		MaxPrice:         queryUint(c, "max_price"),
		Featured:         queryBool(c, "featured"),
		Limit:            queryInt(c, "limit"),
		Offset:           queryInt(c, "offset"),
	}
}

// respondServiceError renders a service-layer error in the failure
// envelope, preserving its status code and field details.
func respondServiceError(c *fiber.Ctx, err error) error {
	if ce, ok := err.(*types.CustomError); ok {
		if len(ce.Fields) > 0 {
			return utils.FieldErrorResponse(c, ce.Message, ce.Code, ce.Fields)
		}
		return utils.ErrorResponse(c, ce.Message, ce.Code)
	}
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError)
}
