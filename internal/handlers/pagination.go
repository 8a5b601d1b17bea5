package handlers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"planline/internal/repository"
)

// PaginatedResponse is the envelope for every paginated API response.
type PaginatedResponse struct {
	Data        interface{} `json:"data"`
	TotalRows   int64       `json:"totalRows"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
	PageSize    int         `json:"pageSize"`
}

// pageFromContext reads "page" and "pageSize" query parameters. Bounds are
// enforced in the repository layer.
func pageFromContext(c *gin.Context) repository.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	return repository.Page{Number: page, Size: pageSize}.Normalize()
}

// paginated builds the standard envelope around fetched data.
func paginated(p repository.Page, data interface{}, totalRows int64) PaginatedResponse {
	p = p.Normalize()
	totalPages := 0
	if totalRows > 0 {
		totalPages = int(math.Ceil(float64(totalRows) / float64(p.Size)))
	}
	return PaginatedResponse{
		Data:        data,
		TotalRows:   totalRows,
		TotalPages:  totalPages,
		CurrentPage: p.Number,
		PageSize:    p.Size,
	}
}
