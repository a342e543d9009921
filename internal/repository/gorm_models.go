package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog_service/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type categoryRecord struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:255;not null"`
}

func (categoryRecord) TableName() string { return "categories" }

func (r categoryRecord) toDomain() domain.Category {
	return domain.Category{ID: r.ID, Name: r.Name}
}

type productRecord struct {
	ID          int64           `gorm:"primaryKey"`
	Name        string          `gorm:"size:255;not null;index"`
	Description string          `gorm:"type:text;not null;default:''"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	ImgURL      string          `gorm:"size:1024;not null;default:''"`
	Date        time.Time       `gorm:"not null"`
}

func (productRecord) TableName() string { return "products" }

func (r productRecord) toDomain() domain.Product {
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImgURL:      r.ImgURL,
		Date:        r.Date.UTC(),
		Categories:  []domain.Category{},
	}
}

type productCategoryRecord struct {
	ProductID  int64          `gorm:"primaryKey"`
	CategoryID int64          `gorm:"primaryKey;index"`
	Position   int            `gorm:"not null;default:0"`
	Product    productRecord  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Category   categoryRecord `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

func (productCategoryRecord) TableName() string { return "product_categories" }

type userRecord struct {
	ID           int64  `gorm:"primaryKey"`
	FirstName    string `gorm:"size:100;not null"`
	LastName     string `gorm:"size:100;not null;default:''"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
}

func (userRecord) TableName() string { return "users" }

func (r userRecord) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
	}
}

// AutoMigrateGorm creates or updates the catalog tables for the gorm store.
func AutoMigrateGorm(db *gorm.DB) error {
	return db.AutoMigrate(&categoryRecord{}, &productRecord{}, &productCategoryRecord{}, &userRecord{})
}

func gormPage(req domain.PageRequest, columns map[string]string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(orderClause(req, columns, "id")).Offset(req.Offset()).Limit(req.Size)
	}
}

// gormClassify maps constraint failures to ErrIntegrityViolation. The driver
// message is checked too since not every sqlite error is translated by gorm.
func gormClassify(err error, action string) error {
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "constraint failed"):
		return fmt.Errorf("could not %s: %w: %v", action, domain.ErrIntegrityViolation, err)
	default:
		return fmt.Errorf("could not %s: %w", action, err)
	}
}
