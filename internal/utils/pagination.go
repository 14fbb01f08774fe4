package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	// DefaultPageSize is the page size used when the client sends none.
	DefaultPageSize = 12
	// MaxPageSize caps the page_size query parameter.
	MaxPageSize = 100
)

// Pagination holds page-number pagination parameters.
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Offset   int   `json:"-"`
	Total    int64 `json:"total"`
	LastPage int   `json:"last_page"`
}

// GetPagination extracts page and page_size from the query parameters.
// Invalid values fall back to the defaults; page_size is capped at MaxPageSize.
func GetPagination(c *fiber.Ctx) Pagination {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(c.Query("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return Pagination{
		Page:     page,
		PageSize: size,
		Offset:   (page - 1) * size,
	}
}

// SetTotal records the total item count and derives the last page number.
func (p *Pagination) SetTotal(total int64) {
	p.Total = total
	p.LastPage = int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
}

type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

func NewPaginatedResponse(data interface{}, pagination Pagination) PaginatedResponse {
	return PaginatedResponse{
		Data:       data,
		Pagination: pagination,
	}
}
