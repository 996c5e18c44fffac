package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/internal/shared"
)

func TestBookService_CreateValidatesAuthor(t *testing.T) {
	books := &fakeBookRepo{}
	authors := &fakeAuthorRepo{}
	s := NewBookService(books, authors)

	stale := uuid.New()
	_, err := s.Create(context.Background(), &book.CreateBookRequest{
		Title:         "Orphaned",
		Content:       "a book pointing at a missing author",
		PublishedYear: 2000,
		Genre:         "Fiction",
		AuthorID:      &stale,
	})
	require.ErrorIs(t, err, author.ErrAuthorNotFound)
	assert.Empty(t, books.created)
}

func TestBookService_CreateWithExistingAuthor(t *testing.T) {
	existing := &author.Author{ID: uuid.New(), FirstName: "Jane", LastName: "Doe"}
	books := &fakeBookRepo{}
	authors := &fakeAuthorRepo{authors: []*author.Author{existing}}
	s := NewBookService(books, authors)

	created, err := s.Create(context.Background(), &book.CreateBookRequest{
		Title:         "Attributed",
		Content:       "a book with a real author reference",
		PublishedYear: 2000,
		Genre:         "Fiction",
		AuthorID:      &existing.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created.AuthorID)
	assert.Equal(t, existing.ID, *created.AuthorID)
}

func TestBookService_CreateWithoutAuthor(t *testing.T) {
	books := &fakeBookRepo{}
	s := NewBookService(books, &fakeAuthorRepo{})

	created, err := s.Create(context.Background(), &book.CreateBookRequest{
		Title:         "Anonymous",
		Content:       "a book with no author at all",
		PublishedYear: 2000,
		Genre:         "Mystery",
	})
	require.NoError(t, err)
	assert.Nil(t, created.AuthorID)
}

func TestBookService_ListWrapsPage(t *testing.T) {
	s := NewBookService(&fakeBookRepo{}, &fakeAuthorRepo{})

	page, err := s.List(context.Background(), book.ListFilter{}, shared.PageParams{Page: 2, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, 0, page.Total)
}

func TestBookService_UpdateValidatesAuthor(t *testing.T) {
	s := NewBookService(&fakeBookRepo{}, &fakeAuthorRepo{})

	stale := uuid.New()
	_, err := s.Update(context.Background(), uuid.New(), &book.UpdateBookRequest{AuthorID: &stale})
	require.ErrorIs(t, err, author.ErrAuthorNotFound)
}
