package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var gormProductColumns = map[string]string{
	"id":    "id",
	"name":  "name",
	"price": "price",
	"date":  "date",
}

type gormCategoryRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewGormCategoryRepository(db *gorm.DB, logger *logrus.Logger) domain.CategoryRepository {
	return &gormCategoryRepository{db: db, log: logger}
}

func (r *gormCategoryRepository) FindPaged(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Category], error) {
	var (
		total   int64
		records []categoryRecord
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&categoryRecord{}).Count(&total).Error; err != nil {
			return fmt.Errorf("could not count categories: %w", err)
		}
		if err := tx.Scopes(gormPage(req, categoryColumns)).Find(&records).Error; err != nil {
			return fmt.Errorf("could not list categories: %w", err)
		}
		return nil
	})
	if err != nil {
		r.log.Errorf("Repository: Failed to list categories: %v", err)
		return domain.Page[domain.Category]{}, err
	}

	categories := make([]domain.Category, 0, len(records))
	for _, rec := range records {
		categories = append(categories, rec.toDomain())
	}
	return domain.NewPage(categories, req, total), nil
}

func (r *gormCategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	var rec categoryRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warnf("Repository: Category with ID %d not found", id)
			return nil, domain.NewNotFoundError("category", id)
		}
		r.log.Errorf("Repository: Failed to get category by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get category by id: %w", err)
	}
	category := rec.toDomain()
	return &category, nil
}

func (r *gormCategoryRepository) Save(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	db := r.db.WithContext(ctx)
	rec := categoryRecord{ID: category.ID, Name: category.Name}

	if rec.ID == 0 {
		if err := db.Create(&rec).Error; err != nil {
			r.log.Errorf("Repository: Failed to create category '%s': %v", category.Name, err)
			return nil, gormClassify(err, "create category")
		}
	} else {
		res := db.Model(&categoryRecord{}).Where("id = ?", rec.ID).Updates(map[string]interface{}{"name": rec.Name})
		if res.Error != nil {
			r.log.Errorf("Repository: Failed to update category ID %d: %v", rec.ID, res.Error)
			return nil, gormClassify(res.Error, "update category")
		}
		if res.RowsAffected == 0 {
			r.log.Warnf("Repository: Category with ID %d not found for update", rec.ID)
			return nil, domain.NewNotFoundError("category", rec.ID)
		}
	}

	r.log.Infof("Repository: Category saved successfully with ID: %d, Name: %s", rec.ID, rec.Name)
	saved := rec.toDomain()
	return &saved, nil
}

func (r *gormCategoryRepository) DeleteByID(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&categoryRecord{}, id)
	if res.Error != nil {
		r.log.Errorf("Repository: Failed to delete category ID %d: %v", id, res.Error)
		return gormClassify(res.Error, "delete category")
	}
	if res.RowsAffected == 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent category ID %d", id)
		return domain.NewNotFoundError("category", id)
	}
	r.log.Infof("Repository: Category deleted successfully with ID: %d", id)
	return nil
}

type gormProductRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewGormProductRepository(db *gorm.DB, logger *logrus.Logger) domain.ProductRepository {
	return &gormProductRepository{db: db, log: logger}
}

func (r *gormProductRepository) FindPaged(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Product], error) {
	return r.Search(ctx, domain.ProductFilter{}, req)
}

func (r *gormProductRepository) Search(ctx context.Context, filter domain.ProductFilter, req domain.PageRequest) (domain.Page[domain.Product], error) {
	var (
		total    int64
		products = []domain.Product{}
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&productRecord{})
		if filter.CategoryID != 0 {
			query = query.Where(
				"EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = products.id AND pc.category_id = ?)",
				filter.CategoryID)
		}
		if filter.Name != "" {
			query = query.Where(`name LIKE ? ESCAPE '\'`, containsPattern(filter.Name))
		}
		query = query.Session(&gorm.Session{})

		if err := query.Count(&total).Error; err != nil {
			return fmt.Errorf("could not count products: %w", err)
		}
		var records []productRecord
		if err := query.Scopes(gormPage(req, gormProductColumns)).Find(&records).Error; err != nil {
			return fmt.Errorf("could not list products: %w", err)
		}
		for _, rec := range records {
			products = append(products, rec.toDomain())
		}
		return r.attachCategories(tx, products)
	})
	if err != nil {
		r.log.Errorf("Repository: Failed to list products (page %d, size %d): %v", req.Page, req.Size, err)
		return domain.Page[domain.Product]{}, err
	}

	r.log.Debugf("Repository: Retrieved %d products (page %d, size %d)", len(products), req.Page, req.Size)
	return domain.NewPage(products, req, total), nil
}

type productCategoryRow struct {
	ProductID int64
	ID        int64
	Name      string
}

func (r *gormProductRepository) attachCategories(tx *gorm.DB, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(products))
	index := make(map[int64]int, len(products))
	for i, p := range products {
		ids = append(ids, p.ID)
		index[p.ID] = i
	}

	var rows []productCategoryRow
	err := tx.Table("product_categories AS pc").
		Select("pc.product_id, c.id, c.name").
		Joins("JOIN categories c ON c.id = pc.category_id").
		Where("pc.product_id IN ?", ids).
		Order("pc.product_id, pc.position").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("could not load product categories: %w", err)
	}

	for _, row := range rows {
		i := index[row.ProductID]
		products[i].Categories = append(products[i].Categories, domain.Category{ID: row.ID, Name: row.Name})
	}
	return nil
}

func (r *gormProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product *domain.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		product, err = r.findByID(tx, id)
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

func (r *gormProductRepository) findByID(tx *gorm.DB, id int64) (*domain.Product, error) {
	var rec productRecord
	if err := tx.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("product", id)
		}
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}
	products := []domain.Product{rec.toDomain()}
	if err := r.attachCategories(tx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *gormProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	var saved *domain.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := productRecord{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
			ImgURL:      product.ImgURL,
			Date:        product.Date.UTC(),
		}

		if rec.ID == 0 {
			if err := tx.Create(&rec).Error; err != nil {
				return gormClassify(err, "create product")
			}
		} else {
			res := tx.Model(&productRecord{}).Where("id = ?", rec.ID).Updates(map[string]interface{}{
				"name":        rec.Name,
				"description": rec.Description,
				"price":       rec.Price,
				"img_url":     rec.ImgURL,
				"date":        rec.Date,
			})
			if res.Error != nil {
				return gormClassify(res.Error, "update product")
			}
			if res.RowsAffected == 0 {
				return domain.NewNotFoundError("product", rec.ID)
			}
			if err := tx.Where("product_id = ?", rec.ID).Delete(&productCategoryRecord{}).Error; err != nil {
				return fmt.Errorf("could not clear product categories: %w", err)
			}
		}

		for position, categoryID := range product.CategoryIDs() {
			link := productCategoryRecord{ProductID: rec.ID, CategoryID: categoryID, Position: position}
			if err := tx.Omit(clause.Associations).Create(&link).Error; err != nil {
				if errors.Is(gormClassify(err, ""), domain.ErrIntegrityViolation) {
					return domain.NewNotFoundError("category", categoryID)
				}
				return fmt.Errorf("could not link category %d: %w", categoryID, err)
			}
		}

		var err error
		saved, err = r.findByID(tx, rec.ID)
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

func (r *gormProductRepository) DeleteByID(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&productRecord{}, id)
	if res.Error != nil {
		r.log.Errorf("Repository: Failed to delete product ID %d: %v", id, res.Error)
		return gormClassify(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent product ID %d", id)
		return domain.NewNotFoundError("product", id)
	}
	r.log.Infof("Repository: Product deleted successfully with ID: %d", id)
	return nil
}

type gormUserRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewGormUserRepository(db *gorm.DB, logger *logrus.Logger) domain.UserRepository {
	return &gormUserRepository{db: db, log: logger}
}

func (r *gormUserRepository) FindPaged(ctx context.Context, req domain.PageRequest) (domain.Page[domain.User], error) {
	var (
		total   int64
		records []userRecord
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userRecord{}).Count(&total).Error; err != nil {
			return fmt.Errorf("could not count users: %w", err)
		}
		if err := tx.Scopes(gormPage(req, userColumns)).Find(&records).Error; err != nil {
			return fmt.Errorf("could not list users: %w", err)
		}
		return nil
	})
	if err != nil {
		r.log.Errorf("Repository: Failed to list users: %v", err)
		return domain.Page[domain.User]{}, err
	}

	users := make([]domain.User, 0, len(records))
	for _, rec := range records {
		users = append(users, rec.toDomain())
	}
	return domain.NewPage(users, req, total), nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warnf("Repository: User with ID %d not found", id)
			return nil, domain.NewNotFoundError("user", id)
		}
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}
	user := rec.toDomain()
	return &user, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get user by email: %w", err)
	}
	user := rec.toDomain()
	return &user, nil
}

func (r *gormUserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	var saved userRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if user.ID == 0 {
			saved = userRecord{
				FirstName:    user.FirstName,
				LastName:     user.LastName,
				Email:        user.Email,
				PasswordHash: user.PasswordHash,
			}
			if err := tx.Create(&saved).Error; err != nil {
				return gormClassify(err, "create user")
			}
			return nil
		}

		updates := map[string]interface{}{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
		}
		if user.PasswordHash != "" {
			updates["password_hash"] = user.PasswordHash
		}
		res := tx.Model(&userRecord{}).Where("id = ?", user.ID).Updates(updates)
		if res.Error != nil {
			return gormClassify(res.Error, "update user")
		}
		if res.RowsAffected == 0 {
			return domain.NewNotFoundError("user", user.ID)
		}
		return tx.First(&saved, user.ID).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrIntegrityViolation) {
			r.log.Warnf("Repository: Failed to save user '%s': %v", user.Email, err)
		} else {
			r.log.Errorf("Repository: Failed to save user '%s': %v", user.Email, err)
		}
		return nil, err
	}

	r.log.Infof("Repository: User saved successfully with ID: %d, Email: %s", saved.ID, saved.Email)
	result := saved.toDomain()
	return &result, nil
}

func (r *gormUserRepository) DeleteByID(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&userRecord{}, id)
	if res.Error != nil {
		r.log.Errorf("Repository: Failed to delete user ID %d: %v", id, res.Error)
		return gormClassify(res.Error, "delete user")
	}
	if res.RowsAffected == 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent user ID %d", id)
		return domain.NewNotFoundError("user", id)
	}
	r.log.Infof("Repository: User deleted successfully with ID: %d", id)
	return nil
}
