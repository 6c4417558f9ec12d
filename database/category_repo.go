package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/devportfolio/portfolio-backend/models"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns all categories with their projects
func (r *CategoryRepo) FindAll(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	err := r.db.WithContext(ctx).Preload("Projects", orderByID).Order("id").Find(&categories).Error
	return categories, err
}

// FindByID returns a category by its ID
func (r *CategoryRepo) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Preload("Projects", orderByID).First(&category, id).Error
	if err != nil {
		return nil, translateWriteError("category", err)
	}
	return &category, nil
}

// Add inserts a new category into the database
func (r *CategoryRepo) Add(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	category := in.Row()
	if err := r.db.WithContext(ctx).Omit("Projects").Create(&category).Error; err != nil {
		return nil, translateWriteError("category", err)
	}
	return &category, nil
}

// Update rewrites the category's fields and returns the stored row
func (r *CategoryRepo) Update(ctx context.Context, id uint, in models.CategoryInput) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateRow(tx, &models.Category{}, id, in.Changes()); err != nil {
			return err
		}
		return tx.First(&category, id).Error
	})
	if err != nil {
		return nil, translateWriteError("category", err)
	}
	return &category, nil
}

// Delete removes a category from the database by id
func (r *CategoryRepo) Delete(ctx context.Context, id uint) error {
	return deleteRow(ctx, r.db, &models.Category{}, "category", id)
}
