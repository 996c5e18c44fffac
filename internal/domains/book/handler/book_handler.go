package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/internal/shared"
	"bookshelf-backend/internal/shared/response"
	"bookshelf-backend/pkg/logger"
)

// Service is the business surface the book handler depends on.
type Service interface {
	Create(ctx context.Context, req *book.CreateBookRequest) (*book.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error)
	List(ctx context.Context, filter book.ListFilter, params shared.PageParams) (*shared.Page, error)
	Update(ctx context.Context, id uuid.UUID, req *book.UpdateBookRequest) (*book.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type BookHandler struct {
	service     Service
	defaultSize int
	maxSize     int
}

func NewBookHandler(service Service, defaultSize, maxSize int) *BookHandler {
	return &BookHandler{service: service, defaultSize: defaultSize, maxSize: maxSize}
}

// Create handles POST /books.
func (h *BookHandler) Create(c *gin.Context) {
	var req book.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// List handles GET /books with optional filters and sorting.
func (h *BookHandler) List(c *gin.Context) {
	filter := book.ListFilter{
		Title:     strings.TrimSpace(c.Query("title")),
		Author:    strings.TrimSpace(c.Query("author")),
		Genre:     strings.TrimSpace(c.Query("genre")),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	var err error
	if filter.YearFrom, err = optionalInt(c.Query("year_from")); err != nil {
		response.BadRequest(c, "year_from must be a number")
		return
	}
	if filter.YearTo, err = optionalInt(c.Query("year_to")); err != nil {
		response.BadRequest(c, "year_to must be a number")
		return
	}

	params := shared.ParsePageParams(c, h.defaultSize, h.maxSize)

	page, err := h.service.List(c.Request.Context(), filter, params)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, page)
}

// GetByID handles GET /books/:id.
func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// Update handles PUT /books/:id.
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	var req book.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Delete handles DELETE /books/:id.
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func optionalInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func renderError(c *gin.Context, err error) {
	status := book.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("book operation failed", err)
		response.InternalServerError(c)
		return
	}
	response.ErrorResponse(c, status, book.ToErrorCode(err), err.Error())
}
