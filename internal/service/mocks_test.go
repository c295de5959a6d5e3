package service

import (
	"context"
	"sort"

	"teslo-shop/internal/domain"

	"github.com/google/uuid"
)

// Mock repositories for testing
type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	user.Email = domain.NormalizeEmail(user.Email)
	if _, exists := m.users[user.Email]; exists {
		return domain.ErrDuplicateKey
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	m.users[user.Email] = &stored
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string, includePasswordHash bool) (*domain.User, error) {
	user, exists := m.users[domain.NormalizeEmail(email)]
	if !exists {
		return nil, domain.ErrNotFound
	}
	out := *user
	if !includePasswordHash {
		out.PasswordHash = ""
	}
	return &out, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			out := *user
			out.PasswordHash = ""
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepository) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(m.users))
	m.users = make(map[string]*domain.User)
	return n, nil
}

type mockProductRepository struct {
	products   map[uuid.UUID]*domain.Product
	updateErr  error
	lastLimit  int
	lastOffset int
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
	}
}

func cloneProduct(p *domain.Product) *domain.Product {
	out := *p
	out.Images = append([]domain.ProductImage(nil), p.Images...)
	return &out
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	for _, p := range m.products {
		if p.Title == product.Title || p.Slug == product.Slug {
			return domain.ErrDuplicateKey
		}
	}
	m.products[product.ID] = cloneProduct(product)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneProduct(p), nil
}

func (m *mockProductRepository) FindByTerm(ctx context.Context, term string) (*domain.Product, error) {
	if id, err := uuid.Parse(term); err == nil && len(term) == 36 {
		return m.FindByID(ctx, id)
	}
	for _, p := range m.products {
		if p.Slug == term || p.Title == term {
			return cloneProduct(p), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockProductRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	m.lastLimit, m.lastOffset = limit, offset
	all := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		all = append(all, cloneProduct(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.String() < all[j].ID.String() })
	if offset >= len(all) {
		return []*domain.Product{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product, replaceImages bool) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	existing, ok := m.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := cloneProduct(product)
	if !replaceImages {
		updated.Images = existing.Images
	}
	m.products[product.ID] = updated
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(m.products))
	m.products = make(map[uuid.UUID]*domain.Product)
	return n, nil
}
