package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/domains/book"
)

type fakeImportService struct {
	importFn func(ctx context.Context, filename, contentType string, data []byte) (*book.ImportReport, error)
}

func (f *fakeImportService) Import(ctx context.Context, filename, contentType string, data []byte) (*book.ImportReport, error) {
	return f.importFn(ctx, filename, contentType, data)
}

func importRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/books/import", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newImportRouter(svc ImportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/books/import", NewImportHandler(svc).Import)
	return r
}

func TestImportHandler_ReturnsReport(t *testing.T) {
	var gotFilename string
	var gotData []byte
	svc := &fakeImportService{
		importFn: func(_ context.Context, filename, _ string, data []byte) (*book.ImportReport, error) {
			gotFilename = filename
			gotData = data
			return &book.ImportReport{SuccessCount: 2, ErrorCount: 0, Errors: []string{}}, nil
		},
	}
	r := newImportRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, importRequest(t, "books.json", []byte(`[{"title":"A"},{"title":"B"}]`)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "books.json", gotFilename)
	assert.JSONEq(t, `[{"title":"A"},{"title":"B"}]`, string(gotData))
	assert.Contains(t, w.Body.String(), `"success_count":2`)
}

func TestImportHandler_MissingFile(t *testing.T) {
	r := newImportRouter(&fakeImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/books/import", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportHandler_UnsupportedType(t *testing.T) {
	svc := &fakeImportService{
		importFn: func(context.Context, string, string, []byte) (*book.ImportReport, error) {
			return nil, book.ErrUnsupportedFile
		},
	}
	r := newImportRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, importRequest(t, "books.xml", []byte(`<books/>`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
