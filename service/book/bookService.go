package booksvc

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Washington-NKE/Bookvault/model"
)

var ErrNotFound = errors.New("book not found")

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, b *model.Book) (bool, error)
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id string) (*model.Book, error)
}

type Service interface {
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) error
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id string) (*model.Book, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	if b.Title == "" || b.Author == "" || b.TotalCopies < 0 {
		return nil, errors.New("invalid payload")
	}
	b.ID = uuid.NewString()
	b.AvailableCopies = b.TotalCopies
	if err := s.r.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, b *model.Book) error {
	if b.Title == "" || b.Author == "" || b.TotalCopies < 0 {
		return errors.New("invalid payload")
	}
	ok, err := s.r.Update(ctx, b)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]model.Book, error) { return s.r.List(ctx) }

func (s *service) Detail(ctx context.Context, id string) (*model.Book, error) {
	return s.r.Detail(ctx, id)
}
