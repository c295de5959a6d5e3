package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"teslo-shop/internal/domain"
	"teslo-shop/internal/middleware"
	"teslo-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAuthService resolves tokens of the form "token-<role>" to fixed users
type fakeAuthService struct {
	users       map[string]*domain.User
	registerErr error
	loginErr    error
	lastEmail   string
}

func newFakeAuthService() *fakeAuthService {
	users := map[string]*domain.User{}
	for _, role := range []domain.Role{domain.RoleUser, domain.RoleAdmin, domain.RoleSeller} {
		users["token-"+strings.ToLower(role.String())] = &domain.User{
			ID:       uuid.New(),
			FullName: "Test " + role.String(),
			Email:    strings.ToLower(role.String()) + "@google.com",
			Role:     role,
			IsActive: true,
		}
	}
	return &fakeAuthService{users: users}
}

func (f *fakeAuthService) user(role domain.Role) *domain.User {
	return f.users["token-"+strings.ToLower(role.String())]
}

func (f *fakeAuthService) Register(ctx context.Context, fullName, email, password string) (*service.AuthResult, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.lastEmail = email
	return &service.AuthResult{
		User:  &domain.User{ID: uuid.New(), FullName: fullName, Email: domain.NormalizeEmail(email), Role: domain.RoleUser, IsActive: true, PasswordHash: "hash"},
		Token: "token-user",
	}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &service.AuthResult{User: f.user(domain.RoleUser), Token: "token-user"}, nil
}

func (f *fakeAuthService) CheckStatus(ctx context.Context, principal *domain.User) (*service.AuthResult, error) {
	return &service.AuthResult{User: principal, Token: "token-" + strings.ToLower(principal.Role.String())}, nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	user, ok := f.users[token]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return user, nil
}

// fakeProductService records the arguments it receives
type fakeProductService struct {
	mu         sync.Mutex
	products   map[uuid.UUID]domain.ProductView
	lastCreate service.CreateProductInput
	lastUpdate service.UpdateProductInput
	lastActor  *domain.User
	lastLimit  int
	lastOffset int
	err        error
}

func newFakeProductService() *fakeProductService {
	return &fakeProductService{products: map[uuid.UUID]domain.ProductView{}}
}

func (f *fakeProductService) Create(ctx context.Context, in service.CreateProductInput, owner *domain.User) (*domain.ProductView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.lastCreate, f.lastActor = in, owner
	view := domain.ProductView{ID: uuid.New(), Title: in.Title, Slug: in.Slug, Images: in.Images, User: owner.Public()}
	f.products[view.ID] = view
	return &view, nil
}

func (f *fakeProductService) List(ctx context.Context, limit, offset int) ([]domain.ProductView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit, f.lastOffset = limit, offset
	out := []domain.ProductView{}
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductService) FindOne(ctx context.Context, term string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeProductService) FindOnePlain(ctx context.Context, term string) (*domain.ProductView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID.String() == term || p.Slug == term {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductService) Update(ctx context.Context, id uuid.UUID, in service.UpdateProductInput, actor *domain.User) (*domain.ProductView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUpdate, f.lastActor = in, actor
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	p.User = actor.Public()
	f.products[id] = p
	return &p, nil
}

func (f *fakeProductService) Remove(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductService) DeleteAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := int64(len(f.products))
	f.products = map[uuid.UUID]domain.ProductView{}
	return n, nil
}

// memoryStore is an in-memory ImageStore
type memoryStore struct {
	mu    sync.Mutex
	files map[string][]byte
	types map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: map[string][]byte{}, types: map[string]string{}}
}

func (s *memoryStore) Save(ctx context.Context, name, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = data
	s.types[name] = contentType
	return nil
}

func (s *memoryStore) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), s.types[name], nil
}

type fixture struct {
	router   chi.Router
	auth     *fakeAuthService
	products *fakeProductService
	store    *memoryStore
}

func newFixture() *fixture {
	logger := zap.NewNop()
	f := &fixture{
		router:   chi.NewRouter(),
		auth:     newFakeAuthService(),
		products: newFakeProductService(),
		store:    newMemoryStore(),
	}

	authMiddleware := middleware.AuthMiddleware(f.auth, logger)
	passThrough := func(next http.Handler) http.Handler { return next }

	NewAuthHandler(f.auth, logger).RegisterRoutes(f.router, authMiddleware, passThrough)
	NewProductHandler(f.products, logger).RegisterRoutes(f.router, authMiddleware)
	NewFilesHandler(f.store, "http://localhost:3000/api/", 1<<20, logger).RegisterRoutes(f.router, authMiddleware)
	return f
}

func (f *fixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
