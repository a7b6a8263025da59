package utils

import (
	"math"

	"github.com/gofiber/fiber/v2"
)

// PageParams reads page/limit query values, clamping limit to maxLimit.
func PageParams(c *fiber.Ctx, defaultLimit, maxLimit int) (page, limit, offset int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	limit = c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset = (page - 1) * limit
	return page, limit, offset
}

// TotalPages returns the page count for a result set.
func TotalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}

// Pagination is the envelope attached to every paginated listing.
func Pagination(page, limit int, total int64) fiber.Map {
	return fiber.Map{
		"page":       page,
		"limit":      limit,
		"totalPages": TotalPages(total, limit),
		"totalItems": total,
	}
}
