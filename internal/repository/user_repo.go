package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
)

var userColumns = map[string]string{
	"id":        "id",
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
}

type postgresUserRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresUserRepository(db *sql.DB, logger *logrus.Logger) domain.UserRepository {
	return &postgresUserRepository{
		db:  db,
		log: logger,
	}
}

const userSelect = `SELECT id, first_name, last_name, email, password_hash FROM users`

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	if err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *postgresUserRepository) FindPaged(ctx context.Context, req domain.PageRequest) (domain.Page[domain.User], error) {
	var (
		total int64
		users = []domain.User{}
	)
	err := withTx(ctx, r.db, readOnly, r.log, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
			return fmt.Errorf("could not count users: %w", err)
		}

		rows, err := tx.QueryContext(ctx, userSelect+` ORDER BY `+orderClause(req, userColumns, "id")+` LIMIT $1 OFFSET $2`,
			req.Size, req.Offset())
		if err != nil {
			return fmt.Errorf("could not list users: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			user, err := scanUser(rows)
			if err != nil {
				return fmt.Errorf("error scanning user row: %w", err)
			}
			users = append(users, *user)
		}
		return rows.Err()
	})
	if err != nil {
		r.log.Errorf("Repository: Failed to list users: %v", err)
		return domain.Page[domain.User]{}, err
	}
	return domain.NewPage(users, req, total), nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, userSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: User with ID %d not found", id)
			return nil, domain.NewNotFoundError("user", id)
		}
		r.log.Errorf("Repository: Failed to get user by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, userSelect+` WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Debugf("Repository: User with email %s not found", email)
			return nil, fmt.Errorf("user with email %s: %w", email, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: Failed to get user by email %s: %v", email, err)
		return nil, fmt.Errorf("could not get user by email: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	var (
		saved *domain.User
		err   error
	)
	if user.ID == 0 {
		saved, err = scanUser(r.db.QueryRowContext(ctx, `
            INSERT INTO users (first_name, last_name, email, password_hash)
            VALUES ($1, $2, $3, $4)
            RETURNING id, first_name, last_name, email, password_hash`,
			user.FirstName, user.LastName, user.Email, user.PasswordHash))
	} else {
		saved, err = scanUser(r.db.QueryRowContext(ctx, `
            UPDATE users
            SET first_name = $1, last_name = $2, email = $3,
                password_hash = COALESCE(NULLIF($4, ''), password_hash)
            WHERE id = $5
            RETURNING id, first_name, last_name, email, password_hash`,
			user.FirstName, user.LastName, user.Email, user.PasswordHash, user.ID))
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: User with ID %d not found for update", user.ID)
			return nil, domain.NewNotFoundError("user", user.ID)
		}
		if pqCode(err) == pqUniqueViolation {
			r.log.Warnf("Repository: Attempted to save user with duplicate email: %s", user.Email)
		} else {
			r.log.Errorf("Repository: Failed to save user '%s': %v", user.Email, err)
		}
		return nil, classify(err, "save user")
	}

	r.log.Infof("Repository: User saved successfully with ID: %d, Email: %s", saved.ID, saved.Email)
	return saved, nil
}

func (r *postgresUserRepository) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Repository: Failed to delete user ID %d: %v", id, err)
		return classify(err, "delete user")
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not confirm user deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent user ID %d", id)
		return domain.NewNotFoundError("user", id)
	}
	r.log.Infof("Repository: User deleted successfully with ID: %d", id)
	return nil
}
