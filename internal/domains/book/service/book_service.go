package service

import (
	"context"

	"github.com/google/uuid"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/internal/shared"
)

// BookRepository is the persistence surface for books.
type BookRepository interface {
	Create(ctx context.Context, b *book.Book) (*book.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error)
	List(ctx context.Context, filter book.ListFilter, limit, offset int) ([]*book.Book, int, error)
	Update(ctx context.Context, id uuid.UUID, req *book.UpdateBookRequest) (*book.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthorRepository is the slice of the author store book operations need.
type AuthorRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error)
	GetByExactName(ctx context.Context, firstName, lastName string) (*author.Author, error)
	SearchFirst(ctx context.Context, q string) (*author.Author, error)
	Create(ctx context.Context, a *author.Author) (*author.Author, error)
}

type BookService struct {
	books   BookRepository
	authors AuthorRepository
}

func NewBookService(books BookRepository, authors AuthorRepository) *BookService {
	return &BookService{books: books, authors: authors}
}

// Create validates the author reference before inserting so a stale id
// surfaces as NotFound instead of a foreign key failure.
func (s *BookService) Create(ctx context.Context, req *book.CreateBookRequest) (*book.Book, error) {
	if req.AuthorID != nil {
		if _, err := s.authors.GetByID(ctx, *req.AuthorID); err != nil {
			return nil, err
		}
	}

	b := &book.Book{
		Title:         req.Title,
		Content:       req.Content,
		Description:   req.Description,
		PublishedYear: req.PublishedYear,
		Genre:         req.Genre,
		AuthorID:      req.AuthorID,
	}
	return s.books.Create(ctx, b)
}

func (s *BookService) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	return s.books.GetByID(ctx, id)
}

func (s *BookService) List(ctx context.Context, filter book.ListFilter, params shared.PageParams) (*shared.Page, error) {
	books, total, err := s.books.List(ctx, filter, params.Size, params.Offset())
	if err != nil {
		return nil, err
	}
	return &shared.Page{Items: books, Total: total, Page: params.Page, Size: params.Size}, nil
}

func (s *BookService) Update(ctx context.Context, id uuid.UUID, req *book.UpdateBookRequest) (*book.Book, error) {
	if req.AuthorID != nil {
		if _, err := s.authors.GetByID(ctx, *req.AuthorID); err != nil {
			return nil, err
		}
	}
	return s.books.Update(ctx, id, req)
}

func (s *BookService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.books.Delete(ctx, id)
}
