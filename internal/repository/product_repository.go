package repository

import (
	"context"
	"database/sql"

	"teslo-shop/internal/database"
	"teslo-shop/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

// ProductRepository defines the interface for product data access.
// Products and their images are always written in a single transaction.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindByTerm(ctx context.Context, term string) (*domain.Product, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product, replaceImages bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
}

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB, logger *zap.Logger) ProductRepository {
	return &productRepository{db: db, logger: logger}
}

const selectProduct = `
	SELECT p.id, p.title, p.price, p.description, p.slug, p.stock, p.sizes, p.gender, p.tags,
	       p.user_id, p.created_at, p.updated_at,
	       u.id, u.full_name, u.email, u.is_active, u.role, u.created_at, u.updated_at
	FROM products p
	JOIN users u ON u.id = p.user_id
`

// Create inserts the product row and one image row per url
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	return database.RunInTx(ctx, r.db, r.logger, func(ctx context.Context, tx *sql.Tx) error {
		query := `
			INSERT INTO products (id, title, price, description, slug, stock, sizes, gender, tags, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING created_at, updated_at
		`

		err := tx.QueryRowContext(ctx, query,
			product.ID,
			product.Title,
			product.Price,
			product.Description,
			product.Slug,
			product.Stock,
			textArray(product.Sizes),
			product.Gender,
			textArray(product.Tags),
			product.UserID,
		).Scan(&product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return mapError(err, "product")
		}

		return insertImages(ctx, tx, product)
	})
}

// FindByID retrieves a product with its owner and images
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return r.findOne(ctx, selectProduct+`WHERE p.id = $1`, id)
}

// FindByTerm resolves term as an id when it is a dashed UUID, otherwise as a
// case-insensitive title or an exact lowercase slug.
func (r *productRepository) FindByTerm(ctx context.Context, term string) (*domain.Product, error) {
	if id, ok := parseCanonicalUUID(term); ok {
		return r.FindByID(ctx, id)
	}

	query := selectProduct + `
		WHERE UPPER(p.title) = UPPER($1) OR p.slug = LOWER($1)
		ORDER BY p.id
		LIMIT 1
	`
	return r.findOne(ctx, query, term)
}

// List retrieves a page of products ordered by id
func (r *productRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	query := selectProduct + `
		ORDER BY p.id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, mapError(err, "product")
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, mapError(err, "product")
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "product")
	}

	if err := loadImages(ctx, r.db, products); err != nil {
		return nil, err
	}

	return products, nil
}

// Update saves the product row and, when replaceImages is set, swaps the whole image
// set. Either every change is committed or none is.
func (r *productRepository) Update(ctx context.Context, product *domain.Product, replaceImages bool) error {
	return database.RunInTx(ctx, r.db, r.logger, func(ctx context.Context, tx *sql.Tx) error {
		if replaceImages {
			if _, err := tx.ExecContext(ctx, `DELETE FROM product_images WHERE product_id = $1`, product.ID); err != nil {
				return mapError(err, "product image")
			}
			if err := insertImages(ctx, tx, product); err != nil {
				return err
			}
		}

		query := `
			UPDATE products
			SET title = $2, price = $3, description = $4, slug = $5, stock = $6,
			    sizes = $7, gender = $8, tags = $9, user_id = $10
			WHERE id = $1
		`

		result, err := tx.ExecContext(ctx, query,
			product.ID,
			product.Title,
			product.Price,
			product.Description,
			product.Slug,
			product.Stock,
			textArray(product.Sizes),
			product.Gender,
			textArray(product.Tags),
			product.UserID,
		)
		if err != nil {
			return mapError(err, "product")
		}

		return checkRowsAffected(result, "product")
	})
}

// Delete removes a product. Its images are removed by the ON DELETE CASCADE constraint.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "product")
	}
	return checkRowsAffected(result, "product")
}

// DeleteAll removes every product and, by cascade, every image
func (r *productRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products`)
	if err != nil {
		return 0, mapError(err, "product")
	}
	return result.RowsAffected()
}

func (r *productRepository) findOne(ctx context.Context, query string, arg any) (*domain.Product, error) {
	product, err := scanProduct(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return nil, mapError(err, "product")
	}

	if err := loadImages(ctx, r.db, []*domain.Product{product}); err != nil {
		return nil, err
	}
	return product, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	m := pgtype.NewMap()
	product := &domain.Product{User: &domain.User{}}
	owner := product.User

	err := row.Scan(
		&product.ID,
		&product.Title,
		&product.Price,
		&product.Description,
		&product.Slug,
		&product.Stock,
		m.SQLScanner(&product.Sizes),
		&product.Gender,
		m.SQLScanner(&product.Tags),
		&product.UserID,
		&product.CreatedAt,
		&product.UpdatedAt,
		&owner.ID,
		&owner.FullName,
		&owner.Email,
		&owner.IsActive,
		&owner.Role,
		&owner.CreatedAt,
		&owner.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Images = []domain.ProductImage{}
	return product, nil
}

func insertImages(ctx context.Context, tx *sql.Tx, product *domain.Product) error {
	for i := range product.Images {
		img := &product.Images[i]
		if img.ID == uuid.Nil {
			img.ID = uuid.New()
		}
		img.ProductID = product.ID

		_, err := tx.ExecContext(ctx,
			`INSERT INTO product_images (id, url, position, product_id) VALUES ($1, $2, $3, $4)`,
			img.ID, img.URL, i, product.ID,
		)
		if err != nil {
			return mapError(err, "product image")
		}
	}
	return nil
}

func loadImages(ctx context.Context, q database.DBTX, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Product, len(products))
	ids := make([]string, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		ids = append(ids, p.ID.String())
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, url, product_id
		FROM product_images
		WHERE product_id = ANY($1::uuid[])
		ORDER BY product_id, position
	`, ids)
	if err != nil {
		return mapError(err, "product image")
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.ID, &img.URL, &img.ProductID); err != nil {
			return mapError(err, "product image")
		}
		if p, ok := byID[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	if err := rows.Err(); err != nil {
		return mapError(err, "product image")
	}
	return nil
}

// parseCanonicalUUID accepts only the 36 character dashed form. uuid.Parse
// also takes undashed, braced and urn forms, which are valid slugs here.
func parseCanonicalUUID(term string) (uuid.UUID, bool) {
	if len(term) != 36 {
		return uuid.UUID{}, false
	}
	id, err := uuid.Parse(term)
	return id, err == nil
}

// textArray keeps nil slices from being written as NULL
func textArray(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

