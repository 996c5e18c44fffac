package shared

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page is the pagination envelope for all list endpoints.
type Page struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
}

// PageParams are the sanitized pagination inputs.
type PageParams struct {
	Page int
	Size int
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Size
}

// ParsePageParams reads page/size query parameters and clamps them to
// page >= 1 and 1 <= size <= maxSize. Unparseable values fall back to
// the defaults rather than failing the request.
func ParsePageParams(c *gin.Context, defaultSize, maxSize int) PageParams {
	page := 1
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			page = n
		}
	}

	size := defaultSize
	if v := c.Query("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			size = n
		}
	}
	if size > maxSize {
		size = maxSize
	}

	return PageParams{Page: page, Size: size}
}
