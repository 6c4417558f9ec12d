package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/devportfolio/portfolio-backend/errs"
	"github.com/devportfolio/portfolio-backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindAll returns all users with their projects
func (r *UserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	err := r.db.WithContext(ctx).Preload("Projects", orderByID).Order("id").Find(&users).Error
	return users, err
}

// FindByID returns a user by its ID with its projects
func (r *UserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Projects", orderByID).First(&user, id).Error
	if err != nil {
		return nil, translateWriteError("user", err)
	}
	return &user, nil
}

// Add inserts a new user into the database
func (r *UserRepo) Add(ctx context.Context, in models.UserInput) (*models.User, error) {
	user := in.Row()
	if err := r.db.WithContext(ctx).Omit("Projects").Create(&user).Error; err != nil {
		return nil, translateWriteError("user", err)
	}
	return &user, nil
}

// Update rewrites the user's fields and returns the stored row
func (r *UserRepo) Update(ctx context.Context, id uint, in models.UserInput) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateRow(tx, &models.User{}, id, in.Changes()); err != nil {
			return err
		}
		return tx.First(&user, id).Error
	})
	if err != nil {
		return nil, translateWriteError("user", err)
	}
	return &user, nil
}

// Delete removes a user from the database by id
func (r *UserRepo) Delete(ctx context.Context, id uint) error {
	return deleteRow(ctx, r.db, &models.User{}, "user", id)
}

// orderByID keeps preloaded relations in insertion order.
func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// updateRow writes changes to the row with the given id. A missing row is
// reported as gorm.ErrRecordNotFound so callers can translate it.
func updateRow(tx *gorm.DB, model any, id uint, changes map[string]any) error {
	res := tx.Model(model).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func deleteRow(ctx context.Context, db *gorm.DB, model any, entity string, id uint) error {
	res := db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return translateDeleteError(entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound(entity)
	}
	return nil
}
