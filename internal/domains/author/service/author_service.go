package service

import (
	"context"

	"github.com/google/uuid"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/internal/shared"
)

// Repository is the persistence surface the service needs.
type Repository interface {
	Create(ctx context.Context, a *author.Author) (*author.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error)
	GetAll(ctx context.Context, limit, offset int) ([]*author.Author, int, error)
	Search(ctx context.Context, q string, limit, offset int) ([]*author.Author, int, error)
	Update(ctx context.Context, id uuid.UUID, req *author.UpdateAuthorRequest) (*author.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AuthorService struct {
	repo Repository
}

func NewAuthorService(repo Repository) *AuthorService {
	return &AuthorService{repo: repo}
}

func (s *AuthorService) Create(ctx context.Context, req *author.CreateAuthorRequest) (*author.Author, error) {
	a := &author.Author{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Biography: req.Biography,
	}
	return s.repo.Create(ctx, a)
}

func (s *AuthorService) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AuthorService) List(ctx context.Context, params shared.PageParams) (*shared.Page, error) {
	authors, total, err := s.repo.GetAll(ctx, params.Size, params.Offset())
	if err != nil {
		return nil, err
	}
	return &shared.Page{Items: authors, Total: total, Page: params.Page, Size: params.Size}, nil
}

func (s *AuthorService) Search(ctx context.Context, q string, params shared.PageParams) (*shared.Page, error) {
	authors, total, err := s.repo.Search(ctx, q, params.Size, params.Offset())
	if err != nil {
		return nil, err
	}
	return &shared.Page{Items: authors, Total: total, Page: params.Page, Size: params.Size}, nil
}

func (s *AuthorService) Update(ctx context.Context, id uuid.UUID, req *author.UpdateAuthorRequest) (*author.Author, error) {
	return s.repo.Update(ctx, id, req)
}

func (s *AuthorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
