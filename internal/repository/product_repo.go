package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"catalog_service/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

var productColumns = map[string]string{
	"id":    "p.id",
	"name":  "p.name",
	"price": "p.price",
	"date":  "p.date",
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresProductRepository) FindPaged(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Product], error) {
	return r.Search(ctx, domain.ProductFilter{}, req)
}

func (r *postgresProductRepository) Search(ctx context.Context, filter domain.ProductFilter, req domain.PageRequest) (domain.Page[domain.Product], error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.CategoryID != 0 {
		args = append(args, filter.CategoryID)
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = p.id AND pc.category_id = $%d)", len(args)))
	}
	if filter.Name != "" {
		args = append(args, containsPattern(filter.Name))
		where = append(where, fmt.Sprintf(`p.name ILIKE $%d ESCAPE '\'`, len(args)))
	}
	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var (
		total    int64
		products = []domain.Product{}
	)
	err := withTx(ctx, r.db, readOnly, r.log, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM products p`+whereClause, args...).Scan(&total); err != nil {
			return fmt.Errorf("could not count products: %w", err)
		}

		query := `SELECT p.id, p.name, p.description, p.price, p.img_url, p.date FROM products p` +
			whereClause +
			` ORDER BY ` + orderClause(req, productColumns, "p.id") +
			fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		rows, err := tx.QueryContext(ctx, query, append(args, req.Size, req.Offset())...)
		if err != nil {
			return fmt.Errorf("could not list products: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			product, err := scanProduct(rows)
			if err != nil {
				return err
			}
			products = append(products, *product)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating products: %w", err)
		}

		return r.attachCategories(ctx, tx, products)
	})
	if err != nil {
		r.log.Errorf("Repository: Failed to list products (page %d, size %d): %v", req.Page, req.Size, err)
		return domain.Page[domain.Product]{}, err
	}

	r.log.Debugf("Repository: Retrieved %d products (page %d, size %d)", len(products), req.Page, req.Size)
	return domain.NewPage(products, req, total), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImgURL, &p.Date); err != nil {
		return nil, err
	}
	p.Date = p.Date.UTC()
	p.Categories = []domain.Category{}
	return &p, nil
}

// attachCategories loads the categories of every product in one query, in join order.
func (r *postgresProductRepository) attachCategories(ctx context.Context, q queryer, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(products))
	index := make(map[int64]int, len(products))
	for i, p := range products {
		ids = append(ids, p.ID)
		index[p.ID] = i
	}

	rows, err := q.QueryContext(ctx, `
        SELECT pc.product_id, c.id, c.name
        FROM product_categories pc
        JOIN categories c ON c.id = pc.category_id
        WHERE pc.product_id = ANY($1)
        ORDER BY pc.product_id, pc.position`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("could not load product categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID int64
			category  domain.Category
		)
		if err := rows.Scan(&productID, &category.ID, &category.Name); err != nil {
			return fmt.Errorf("error scanning product category row: %w", err)
		}
		i := index[productID]
		products[i].Categories = append(products[i].Categories, category)
	}
	return rows.Err()
}

func (r *postgresProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product *domain.Product
	err := withTx(ctx, r.db, readOnly, r.log, func(tx *sql.Tx) error {
		var err error
		product, err = r.findByID(ctx, tx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.log.Warnf("Repository: Product with ID %d not found", id)
		} else {
			r.log.Errorf("Repository: Failed to get product by ID %d: %v", id, err)
		}
		return nil, err
	}
	return product, nil
}

func (r *postgresProductRepository) findByID(ctx context.Context, q queryer, id int64) (*domain.Product, error) {
	row := q.QueryRowContext(ctx, `
        SELECT p.id, p.name, p.description, p.price, p.img_url, p.date
        FROM products p
        WHERE p.id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("product", id)
		}
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}

	products := []domain.Product{*product}
	if err := r.attachCategories(ctx, q, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

// Save writes the product row and replaces its category links in one transaction.
func (r *postgresProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	var saved *domain.Product
	err := withTx(ctx, r.db, nil, r.log, func(tx *sql.Tx) error {
		id := product.ID
		if id == 0 {
			err := tx.QueryRowContext(ctx, `
                INSERT INTO products (name, description, price, img_url, date)
                VALUES ($1, $2, $3, $4, $5)
                RETURNING id`,
				product.Name, product.Description, product.Price, product.ImgURL, product.Date,
			).Scan(&id)
			if err != nil {
				return classify(err, "create product")
			}
		} else {
			err := tx.QueryRowContext(ctx, `
                UPDATE products
                SET name = $1, description = $2, price = $3, img_url = $4, date = $5
                WHERE id = $6
                RETURNING id`,
				product.Name, product.Description, product.Price, product.ImgURL, product.Date, product.ID,
			).Scan(&id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return domain.NewNotFoundError("product", product.ID)
				}
				return classify(err, "update product")
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM product_categories WHERE product_id = $1`, id); err != nil {
				return fmt.Errorf("could not clear product categories: %w", err)
			}
		}

		if err := r.linkCategories(ctx, tx, id, product.CategoryIDs()); err != nil {
			return err
		}

		var err error
		saved, err = r.findByID(ctx, tx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.log.Warnf("Repository: Failed to save product '%s': %v", product.Name, err)
		} else {
			r.log.Errorf("Repository: Failed to save product '%s': %v", product.Name, err)
		}
		return nil, err
	}

	r.log.Infof("Repository: Product saved successfully with ID: %d, Name: %s", saved.ID, saved.Name)
	return saved, nil
}

func (r *postgresProductRepository) linkCategories(ctx context.Context, tx *sql.Tx, productID int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO product_categories (product_id, category_id, position)
        VALUES ($1, $2, $3)`)
	if err != nil {
		return fmt.Errorf("could not prepare product category statement: %w", err)
	}
	defer stmt.Close()

	for position, categoryID := range categoryIDs {
		if _, err := stmt.ExecContext(ctx, productID, categoryID, position); err != nil {
			if pqCode(err) == pqForeignKeyViolation {
				return domain.NewNotFoundError("category", categoryID)
			}
			return classify(err, fmt.Sprintf("link category %d", categoryID))
		}
	}
	return nil
}

func (r *postgresProductRepository) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Repository: Failed to delete product ID %d: %v", id, err)
		return classify(err, "delete product")
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Repository: Failed to get rows affected after deleting product ID %d: %v", id, err)
		return fmt.Errorf("could not confirm product deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent product ID %d", id)
		return domain.NewNotFoundError("product", id)
	}
	r.log.Infof("Repository: Product deleted successfully with ID: %d", id)
	return nil
}
