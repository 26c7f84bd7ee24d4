// Package httpx carries small request-parsing helpers shared by the
// resource handlers.
package httpx

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || v == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid %s", name))
	}
	return uint(v), nil
}

// DateRangeQuery reads optional inclusive start_date/end_date query
// parameters in YYYY-MM-DD form.
func DateRangeQuery(c *fiber.Ctx) (start, end *time.Time, err error) {
	if s := c.Query("start_date"); s != "" {
		t, perr := time.Parse(dateLayout, s)
		if perr != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "start_date must be in YYYY-MM-DD format")
		}
		start = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, perr := time.Parse(dateLayout, s)
		if perr != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "end_date must be in YYYY-MM-DD format")
		}
		end = &t
	}
	return start, end, nil
}

// ApplyDateRange narrows a query to the inclusive [start, end] window on the
// given column.
func ApplyDateRange(q *gorm.DB, column string, start, end *time.Time) *gorm.DB {
	if start != nil {
		q = q.Where(column+" >= ?", *start)
	}
	if end != nil {
		q = q.Where(column+" <= ?", *end)
	}
	return q
}
