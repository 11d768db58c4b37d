package handler

import (
	"errors"
	"strconv"

	"go-shop-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helper to parse UUID path params
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

func pageParams(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return page, limit
}

func listMeta(page, limit int, total int64) fiber.Map {
	totalPages := (total + int64(limit) - 1) / int64(limit)
	return fiber.Map{
		"page":        page,
		"limit":       limit,
		"total":       total,
		"total_pages": totalPages,
	}
}

// statusForError maps service errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInsufficientStock):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrSKUExists),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrProductInUse):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}
