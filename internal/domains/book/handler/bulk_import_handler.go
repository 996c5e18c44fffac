package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/internal/shared/response"
)

// maxImportFileSize caps uploads at 10MB.
const maxImportFileSize = 10 << 20

// ImportService runs a bulk import from an uploaded file.
type ImportService interface {
	Import(ctx context.Context, filename, contentType string, data []byte) (*book.ImportReport, error)
}

type ImportHandler struct {
	service ImportService
}

func NewImportHandler(service ImportService) *ImportHandler {
	return &ImportHandler{service: service}
}

// Import handles POST /books/import. It expects a multipart form with a
// single "file" part containing JSON or CSV rows.
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "multipart field 'file' is required")
		return
	}
	if fileHeader.Size > maxImportFileSize {
		response.BadRequest(c, "import file is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "failed to read import file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportFileSize))
	if err != nil {
		response.BadRequest(c, "failed to read import file")
		return
	}

	report, err := h.service.Import(
		c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, report)
}
