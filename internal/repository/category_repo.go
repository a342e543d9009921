package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
)

var categoryColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

type postgresCategoryRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCategoryRepository(db *sql.DB, logger *logrus.Logger) domain.CategoryRepository {
	return &postgresCategoryRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresCategoryRepository) FindPaged(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Category], error) {
	var (
		total      int64
		categories = []domain.Category{}
	)

	err := withTx(ctx, r.db, readOnly, r.log, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
			return fmt.Errorf("could not count categories: %w", err)
		}

		query := `SELECT id, name FROM categories ORDER BY ` + orderClause(req, categoryColumns, "id") + ` LIMIT $1 OFFSET $2`
		rows, err := tx.QueryContext(ctx, query, req.Size, req.Offset())
		if err != nil {
			return fmt.Errorf("could not list categories: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var category domain.Category
			if err := rows.Scan(&category.ID, &category.Name); err != nil {
				return fmt.Errorf("error scanning category row: %w", err)
			}
			categories = append(categories, category)
		}
		return rows.Err()
	})
	if err != nil {
		r.log.Errorf("Repository: Failed to list categories (page %d, size %d): %v", req.Page, req.Size, err)
		return domain.Page[domain.Category]{}, err
	}

	r.log.Debugf("Repository: Retrieved %d categories (page %d, size %d)", len(categories), req.Page, req.Size)
	return domain.NewPage(categories, req, total), nil
}

func (r *postgresCategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `SELECT id, name FROM categories WHERE id = $1`
	category := &domain.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Category with ID %d not found", id)
			return nil, domain.NewNotFoundError("category", id)
		}
		r.log.Errorf("Repository: Failed to get category by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get category by id: %w", err)
	}
	return category, nil
}

func (r *postgresCategoryRepository) Save(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	saved := *category
	var err error
	if category.ID == 0 {
		err = r.db.QueryRowContext(ctx, `INSERT INTO categories (name) VALUES ($1) RETURNING id`, category.Name).Scan(&saved.ID)
	} else {
		err = r.db.QueryRowContext(ctx, `UPDATE categories SET name = $1 WHERE id = $2 RETURNING id`, category.Name, category.ID).Scan(&saved.ID)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Category with ID %d not found for update", category.ID)
			return nil, domain.NewNotFoundError("category", category.ID)
		}
		r.log.Errorf("Repository: Failed to save category '%s': %v", category.Name, err)
		return nil, classify(err, "save category")
	}

	r.log.Infof("Repository: Category saved successfully with ID: %d, Name: %s", saved.ID, saved.Name)
	return &saved, nil
}

func (r *postgresCategoryRepository) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Repository: Failed to delete category ID %d: %v", id, err)
		return classify(err, "delete category")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Repository: Failed to get rows affected after deleting category ID %d: %v", id, err)
		return fmt.Errorf("could not confirm category deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent category ID %d", id)
		return domain.NewNotFoundError("category", id)
	}

	r.log.Infof("Repository: Category deleted successfully with ID: %d", id)
	return nil
}
