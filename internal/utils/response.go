package utils

import (
	"github.com/gofiber/fiber/v2"
)

// ListResponse sends the read-endpoint envelope with a row count.
// Count is the total number of matching rows before the pagination
// window is applied, so clients can compute page counts.
func ListResponse(c *fiber.Ctx, data interface{}, count int64) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   count,
	})
}

// DataResponse sends a single-entity success envelope
func DataResponse(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// DeletedResponse sends a success envelope for delete operations
func DeletedResponse(c *fiber.Ctx, affectedRows int64) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"affectedRows": affectedRows,
	})
}

// ErrorResponse sends the failure envelope with a non-2xx status
func ErrorResponse(c *fiber.Ctx, message string, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// FieldErrorResponse sends the failure envelope with per-field messages
func FieldErrorResponse(c *fiber.Ctx, message string, status int, fields map[string]string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"fields":  fields,
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ListResponseStruct defines the schema for list responses
type ListResponseStruct struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Count   int64       `json:"count"`
}
