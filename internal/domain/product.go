package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog item owned by a user
type Product struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Price       float64        `json:"price" db:"price"`
	Description string         `json:"description" db:"description"`
	Slug        string         `json:"slug" db:"slug"`
	Stock       int            `json:"stock" db:"stock"`
	Sizes       []string       `json:"sizes" db:"sizes"`
	Gender      string         `json:"gender" db:"gender"`
	Tags        []string       `json:"tags" db:"tags"`
	UserID      uuid.UUID      `json:"-" db:"user_id"`
	User        *User          `json:"user,omitempty"`
	Images      []ProductImage `json:"images"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// ProductImage is an image owned by exactly one product
type ProductImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	URL       string    `json:"url" db:"url"`
	ProductID uuid.UUID `json:"-" db:"product_id"`
}

// ImageURLs returns the urls of the product images in order.
func (p *Product) ImageURLs() []string {
	urls := make([]string, len(p.Images))
	for i, img := range p.Images {
		urls[i] = img.URL
	}
	return urls
}

// SetImages replaces the image set with one image per url.
func (p *Product) SetImages(urls []string) {
	p.Images = make([]ProductImage, len(urls))
	for i, u := range urls {
		p.Images[i] = ProductImage{ID: uuid.New(), URL: u, ProductID: p.ID}
	}
}

// ProductView is the flattened representation returned to API clients
type ProductView struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	Stock       int       `json:"stock"`
	Sizes       []string  `json:"sizes"`
	Gender      string    `json:"gender"`
	Tags        []string  `json:"tags"`
	Images      []string  `json:"images"`
	User        *User     `json:"user,omitempty"`
}

// View flattens the product images to their urls and strips the owner's credentials.
func (p *Product) View() ProductView {
	return ProductView{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Slug:        p.Slug,
		Stock:       p.Stock,
		Sizes:       nonNil(p.Sizes),
		Gender:      p.Gender,
		Tags:        nonNil(p.Tags),
		Images:      p.ImageURLs(),
		User:        p.User.Public(),
	}
}

// NormalizeSlug lowercases s, replaces spaces with underscores and drops apostrophes.
// Applying it to an already normalized slug returns the slug unchanged.
func NormalizeSlug(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, "'", "")
}

// EnsureSlug normalizes the slug, deriving it from the title when it is empty.
func (p *Product) EnsureSlug() {
	p.Slug = NormalizeSlug(p.Slug)
	if p.Slug == "" {
		p.Slug = NormalizeSlug(p.Title)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
