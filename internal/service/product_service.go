package service

import (
	"context"
	"fmt"

	"teslo-shop/internal/domain"
	"teslo-shop/internal/repository"

	"github.com/google/uuid"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// CreateProductInput holds the fields accepted when creating a product
type CreateProductInput struct {
	Title       string
	Price       float64
	Description string
	Slug        string
	Stock       int
	Sizes       []string
	Gender      string
	Tags        []string
	Images      []string
}

// UpdateProductInput is a partial update. Nil fields are left unchanged and a
// non-nil Images replaces the whole image set.
type UpdateProductInput struct {
	Title       *string
	Price       *float64
	Description *string
	Slug        *string
	Stock       *int
	Sizes       *[]string
	Gender      *string
	Tags        *[]string
	Images      *[]string
}

// ProductService defines catalog operations
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput, owner *domain.User) (*domain.ProductView, error)
	List(ctx context.Context, limit, offset int) ([]domain.ProductView, error)
	FindOne(ctx context.Context, term string) (*domain.Product, error)
	FindOnePlain(ctx context.Context, term string) (*domain.ProductView, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput, actor *domain.User) (*domain.ProductView, error)
	Remove(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
}

type productService struct {
	products repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

// Create stores a product with its images, owned by owner
func (s *productService) Create(ctx context.Context, input CreateProductInput, owner *domain.User) (*domain.ProductView, error) {
	if owner == nil {
		return nil, domain.ErrUnauthenticated
	}

	product := &domain.Product{
		ID:          uuid.New(),
		Title:       input.Title,
		Price:       input.Price,
		Description: input.Description,
		Slug:        input.Slug,
		Stock:       input.Stock,
		Sizes:       input.Sizes,
		Gender:      input.Gender,
		Tags:        input.Tags,
		UserID:      owner.ID,
		User:        owner,
	}
	product.EnsureSlug()
	product.SetImages(input.Images)

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	view := product.View()
	return &view, nil
}

// List returns a page of products. A non-positive limit means the default page size.
func (s *productService) List(ctx context.Context, limit, offset int) ([]domain.ProductView, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.products.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	views := make([]domain.ProductView, len(products))
	for i, p := range products {
		views[i] = p.View()
	}
	return views, nil
}

// FindOne looks a product up by id, title or slug
func (s *productService) FindOne(ctx context.Context, term string) (*domain.Product, error) {
	return s.products.FindByTerm(ctx, term)
}

func (s *productService) FindOnePlain(ctx context.Context, term string) (*domain.ProductView, error) {
	product, err := s.FindOne(ctx, term)
	if err != nil {
		return nil, err
	}
	view := product.View()
	return &view, nil
}

// Update merges input onto the stored product and saves it in one transaction.
// The product is always reassigned to actor.
func (s *productService) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput, actor *domain.User) (*domain.ProductView, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyPatch(product, input)
	product.EnsureSlug()
	product.UserID = actor.ID
	product.User = actor

	replaceImages := input.Images != nil
	if replaceImages {
		product.SetImages(*input.Images)
	}

	if err := s.products.Update(ctx, product, replaceImages); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.FindOnePlain(ctx, id.String())
}

// Remove deletes a product and, through the foreign key, its images
func (s *productService) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

func (s *productService) DeleteAll(ctx context.Context) (int64, error) {
	return s.products.DeleteAll(ctx)
}

func applyPatch(p *domain.Product, in UpdateProductInput) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Slug != nil {
		p.Slug = *in.Slug
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Sizes != nil {
		p.Sizes = *in.Sizes
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.Tags != nil {
		p.Tags = *in.Tags
	}
}
