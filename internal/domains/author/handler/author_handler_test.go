package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/internal/shared"
)

type fakeService struct {
	createFn func(ctx context.Context, req *author.CreateAuthorRequest) (*author.Author, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*author.Author, error)
	listFn   func(ctx context.Context, params shared.PageParams) (*shared.Page, error)
	searchFn func(ctx context.Context, q string, params shared.PageParams) (*shared.Page, error)
	updateFn func(ctx context.Context, id uuid.UUID, req *author.UpdateAuthorRequest) (*author.Author, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeService) Create(ctx context.Context, req *author.CreateAuthorRequest) (*author.Author, error) {
	return f.createFn(ctx, req)
}

func (f *fakeService) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	return f.getFn(ctx, id)
}

func (f *fakeService) List(ctx context.Context, params shared.PageParams) (*shared.Page, error) {
	return f.listFn(ctx, params)
}

func (f *fakeService) Search(ctx context.Context, q string, params shared.PageParams) (*shared.Page, error) {
	return f.searchFn(ctx, q, params)
}

func (f *fakeService) Update(ctx context.Context, id uuid.UUID, req *author.UpdateAuthorRequest) (*author.Author, error) {
	return f.updateFn(ctx, id, req)
}

func (f *fakeService) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteFn(ctx, id)
}

func newRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthorHandler(svc, 20, 100)

	r := gin.New()
	r.POST("/authors", h.Create)
	r.GET("/authors", h.List)
	r.GET("/authors/search", h.Search)
	r.GET("/authors/:id", h.GetByID)
	r.PUT("/authors/:id", h.Update)
	r.DELETE("/authors/:id", h.Delete)
	return r
}

func TestCreateAuthor_NormalizesAndReturns201(t *testing.T) {
	var got *author.CreateAuthorRequest
	svc := &fakeService{
		createFn: func(_ context.Context, req *author.CreateAuthorRequest) (*author.Author, error) {
			got = req
			return &author.Author{ID: uuid.New(), FirstName: req.FirstName, LastName: req.LastName}, nil
		},
	}
	r := newRouter(svc)

	body := bytes.NewBufferString(`{"first_name": "  jane ", "last_name": "doe"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/authors", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "Doe", got.LastName)
}

func TestCreateAuthor_ValidationFailure(t *testing.T) {
	r := newRouter(&fakeService{})

	body := bytes.NewBufferString(`{"first_name": "J4ne", "last_name": "Doe"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/authors", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateAuthor_DuplicateName(t *testing.T) {
	svc := &fakeService{
		createFn: func(context.Context, *author.CreateAuthorRequest) (*author.Author, error) {
			return nil, author.ErrDuplicateName
		},
	}
	r := newRouter(svc)

	body := bytes.NewBufferString(`{"first_name": "Jane", "last_name": "Doe"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/authors", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetAuthor_NotFound(t *testing.T) {
	svc := &fakeService{
		getFn: func(context.Context, uuid.UUID) (*author.Author, error) {
			return nil, author.ErrAuthorNotFound
		},
	}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/authors/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAuthor_InvalidID(t *testing.T) {
	r := newRouter(&fakeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/authors/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAuthors_PassesPagination(t *testing.T) {
	var got shared.PageParams
	svc := &fakeService{
		listFn: func(_ context.Context, params shared.PageParams) (*shared.Page, error) {
			got = params
			return &shared.Page{Items: []*author.Author{}, Total: 0, Page: params.Page, Size: params.Size}, nil
		},
	}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/authors?page=3&size=10", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, 10, got.Size)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Total int `json:"total"`
			Page  int `json:"page"`
			Size  int `json:"size"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Data.Page)
}

func TestSearchAuthors_RequiresQuery(t *testing.T) {
	r := newRouter(&fakeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/authors/search", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAuthor_Returns204(t *testing.T) {
	svc := &fakeService{
		deleteFn: func(context.Context, uuid.UUID) error { return nil },
	}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/authors/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}
