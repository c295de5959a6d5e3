package transport

import (
	"net/http"
	"strconv"
	"testing"

	"teslo-shop/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":  title,
		"price":  25,
		"sizes":  []string{"S", "M"},
		"gender": "men",
		"images": []string{"a.jpg", "b.jpg"},
	}
}

func (f *fixture) seedProduct(t *testing.T, title string) domain.ProductView {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/products", "token-user", validProduct(title))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var view domain.ProductView
	decodeJSON(t, w, &view)
	return view
}

func TestCreateProduct_RequiresAuthentication(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/api/products", "", validProduct("Shirt"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, f.products.products)
}

func TestCreateProduct_PassesPrincipalAsOwner(t *testing.T) {
	f := newFixture()

	view := f.seedProduct(t, "Shirt")

	assert.Equal(t, f.auth.user(domain.RoleUser).ID, f.products.lastActor.ID)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, f.products.lastCreate.Images)
	require.NotNil(t, view.User)
	assert.Equal(t, f.auth.user(domain.RoleUser).ID, view.User.ID)
}

func TestCreateProduct_Validation(t *testing.T) {
	f := newFixture()

	tests := map[string]map[string]interface{}{
		"missing title":  {"sizes": []string{"S"}, "gender": "men"},
		"negative price": {"title": "x", "price": -1, "sizes": []string{"S"}, "gender": "men"},
		"bad gender":     {"title": "x", "sizes": []string{"S"}, "gender": "robot"},
		"missing sizes":  {"title": "x", "gender": "men"},
		"empty image":    {"title": "x", "sizes": []string{"S"}, "gender": "men", "images": []string{""}},
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/api/products", "token-admin", body).Code)
		})
	}
}

// Feature: teslo-catalog, Property 61: Pagination query parameters reach the service
func TestProperty_ListPassesPagination(t *testing.T) {
	f := newFixture()

	properties := gopter.NewProperties(nil)

	properties.Property("limit and offset are forwarded unchanged", prop.ForAll(
		func(limit, offset int) bool {
			path := "/api/products?limit=" + strconv.Itoa(limit) + "&offset=" + strconv.Itoa(offset)
			w := f.do(t, http.MethodGet, path, "", nil)
			return w.Code == http.StatusOK && f.products.lastLimit == limit && f.products.lastOffset == offset
		},
		gen.IntRange(1, 100),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestList_Defaults(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodGet, "/api/products", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, f.products.lastLimit)
	assert.Equal(t, 0, f.products.lastOffset)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestList_InvalidQuery(t *testing.T) {
	f := newFixture()

	for _, q := range []string{"limit=0", "limit=abc", "offset=-1"} {
		t.Run(q, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/products?"+q, "", nil).Code)
		})
	}
}

func TestFindOne(t *testing.T) {
	f := newFixture()
	view := f.seedProduct(t, "Shirt")

	w := f.do(t, http.MethodGet, "/api/products/"+view.ID.String(), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/products/missing_slug", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProduct(t *testing.T) {
	f := newFixture()
	view := f.seedProduct(t, "Shirt")

	t.Run("requires a uuid", func(t *testing.T) {
		w := f.do(t, http.MethodPatch, "/api/products/not-a-uuid", "token-user", map[string]interface{}{"title": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		w := f.do(t, http.MethodPatch, "/api/products/"+view.ID.String(), "", map[string]interface{}{"title": "x"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("absent arrays stay nil and explicit arrays are forwarded", func(t *testing.T) {
		w := f.do(t, http.MethodPatch, "/api/products/"+view.ID.String(), "token-seller", map[string]interface{}{
			"title":  "Renamed",
			"images": []string{},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		in := f.products.lastUpdate
		require.NotNil(t, in.Title)
		assert.Equal(t, "Renamed", *in.Title)
		assert.Nil(t, in.Sizes)
		assert.Nil(t, in.Tags)
		require.NotNil(t, in.Images)
		assert.Empty(t, *in.Images)
	})

	t.Run("actor becomes owner", func(t *testing.T) {
		w := f.do(t, http.MethodPatch, "/api/products/"+view.ID.String(), "token-admin", map[string]interface{}{"stock": 3})
		require.Equal(t, http.StatusOK, w.Code)

		var updated domain.ProductView
		decodeJSON(t, w, &updated)
		assert.Equal(t, f.auth.user(domain.RoleAdmin).ID, updated.User.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := f.do(t, http.MethodPatch, "/api/products/"+uuid.NewString(), "token-admin", map[string]interface{}{"stock": 3})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// Feature: teslo-catalog, Property 62: Only ADMIN can delete products
func TestProperty_DeleteProductRequiresAdmin(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("non admins get 403 and the product survives", prop.ForAll(
		func(token string) bool {
			f := newFixture()
			view := f.seedProduct(t, "Shirt")

			w := f.do(t, http.MethodDelete, "/api/products/"+view.ID.String(), token, nil)
			_, exists := f.products.products[view.ID]

			if token == "token-admin" {
				return w.Code == http.StatusNoContent && !exists
			}
			return w.Code == http.StatusForbidden && exists
		},
		gen.OneConstOf("token-user", "token-seller", "token-admin"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestDeleteProduct_NotFound(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodDelete, "/api/products/"+uuid.NewString(), "token-admin", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
