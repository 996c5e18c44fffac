package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/internal/shared"
	"bookshelf-backend/internal/shared/response"
	"bookshelf-backend/pkg/logger"
)

// Service is the business surface the handler depends on.
type Service interface {
	Create(ctx context.Context, req *author.CreateAuthorRequest) (*author.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error)
	List(ctx context.Context, params shared.PageParams) (*shared.Page, error)
	Search(ctx context.Context, q string, params shared.PageParams) (*shared.Page, error)
	Update(ctx context.Context, id uuid.UUID, req *author.UpdateAuthorRequest) (*author.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AuthorHandler struct {
	service     Service
	defaultSize int
	maxSize     int
}

func NewAuthorHandler(service Service, defaultSize, maxSize int) *AuthorHandler {
	return &AuthorHandler{service: service, defaultSize: defaultSize, maxSize: maxSize}
}

// Create handles POST /authors.
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
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
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// List handles GET /authors.
func (h *AuthorHandler) List(c *gin.Context) {
	params := shared.ParsePageParams(c, h.defaultSize, h.maxSize)

	page, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, page)
}

// Search handles GET /authors/search?q=.
func (h *AuthorHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.BadRequest(c, "query parameter 'q' is required")
		return
	}

	params := shared.ParsePageParams(c, h.defaultSize, h.maxSize)

	page, err := h.service.Search(c.Request.Context(), q, params)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, page)
}

// GetByID handles GET /authors/:id.
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, a)
}

// Update handles PUT /authors/:id.
func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	var req author.UpdateAuthorRequest
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
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Delete handles DELETE /authors/:id. Books referencing the author are kept
// and detached.
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AuthorHandler) renderError(c *gin.Context, err error) {
	status := author.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("author operation failed", err)
		response.InternalServerError(c)
		return
	}
	response.ErrorResponse(c, status, author.ToErrorCode(err), err.Error())
}
