package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/daastan/internal/client/api"
	"github.com/dmitrijs2005/daastan/internal/client/models"
)

const (
	pathBooks      = "/books"
	pathAuthors    = "/authors"
	pathCategories = "/categories"
)

// bookQuery encodes only the filters that are set.
func bookQuery(f models.BookFilter) url.Values {
	q := url.Values{}
	if f.CategoryID != "" {
		q.Set("category_id", f.CategoryID)
	}
	if f.AuthorID != "" {
		q.Set("author_id", f.AuthorID)
	}
	if f.MinPrice != nil {
		q.Set("min_price", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		q.Set("max_price", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	return q
}

func (s *Storefront) ListBooks(ctx context.Context, f models.BookFilter) ([]models.Book, error) {
	return call[[]models.Book](ctx, s, http.MethodGet, pathBooks, nil, false, api.WithQuery(bookQuery(f)))
}

func (s *Storefront) GetBook(ctx context.Context, id string) (*models.Book, error) {
	p, err := resource(pathBooks, id)
	if err != nil {
		return nil, err
	}
	b, err := call[models.Book](ctx, s, http.MethodGet, p, nil, false)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Storefront) ListReviews(ctx context.Context, bookID string) ([]models.Review, error) {
	p, err := resource(pathBooks, bookID, "reviews")
	if err != nil {
		return nil, err
	}
	return call[[]models.Review](ctx, s, http.MethodGet, p, nil, false)
}

func (s *Storefront) ListAuthors(ctx context.Context) ([]models.Author, error) {
	return call[[]models.Author](ctx, s, http.MethodGet, pathAuthors, nil, false)
}

func (s *Storefront) ListCategories(ctx context.Context) ([]models.Category, error) {
	return call[[]models.Category](ctx, s, http.MethodGet, pathCategories, nil, false)
}
