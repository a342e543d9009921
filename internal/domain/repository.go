package domain

import "context"

// Repository is the persistence contract shared by every entity type.
//
// Save inserts when the entity has no ID and overwrites every column otherwise.
// Overwriting a row that does not exist fails with an error matching ErrNotFound,
// so callers can update without reading first. DeleteByID reports ErrNotFound
// for a missing row and ErrIntegrityViolation when a reference blocks removal.
type Repository[T any] interface {
	FindPaged(ctx context.Context, req PageRequest) (Page[T], error)
	FindByID(ctx context.Context, id int64) (*T, error)
	Save(ctx context.Context, entity *T) (*T, error)
	DeleteByID(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	Repository[Category]
}

// ProductFilter narrows a product search. Zero values match everything.
type ProductFilter struct {
	CategoryID int64
	Name       string
}

type ProductRepository interface {
	Repository[Product]
	Search(ctx context.Context, filter ProductFilter, req PageRequest) (Page[Product], error)
}

// UserRepository keeps the stored password hash when Save receives an empty one.
type UserRepository interface {
	Repository[User]
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// Sortable properties per entity, as accepted in the orderBy query parameter.
var (
	CategorySortProperties = []string{"id", "name"}
	ProductSortProperties  = []string{"id", "name", "price", "date"}
	UserSortProperties     = []string{"id", "firstName", "lastName", "email"}
)
