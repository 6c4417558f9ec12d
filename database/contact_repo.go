package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/devportfolio/portfolio-backend/models"
)

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db}
}

// FindAll returns all contacts
func (r *ContactRepo) FindAll(ctx context.Context) ([]models.Contact, error) {
	contacts := make([]models.Contact, 0)
	err := r.db.WithContext(ctx).Order("id").Find(&contacts).Error
	return contacts, err
}

// FindByID returns a contact by its ID
func (r *ContactRepo) FindByID(ctx context.Context, id uint) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).First(&contact, id).Error
	if err != nil {
		return nil, translateWriteError("contact", err)
	}
	return &contact, nil
}

// Add inserts a new contact into the database
func (r *ContactRepo) Add(ctx context.Context, in models.ContactInput) (*models.Contact, error) {
	contact := in.Row()
	if err := r.db.WithContext(ctx).Create(&contact).Error; err != nil {
		return nil, translateWriteError("contact", err)
	}
	return &contact, nil
}

// Update rewrites the contact's fields and returns the stored row
func (r *ContactRepo) Update(ctx context.Context, id uint, in models.ContactInput) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateRow(tx, &models.Contact{}, id, in.Changes()); err != nil {
			return err
		}
		return tx.First(&contact, id).Error
	})
	if err != nil {
		return nil, translateWriteError("contact", err)
	}
	return &contact, nil
}

// Delete removes a contact from the database by id
func (r *ContactRepo) Delete(ctx context.Context, id uint) error {
	return deleteRow(ctx, r.db, &models.Contact{}, "contact", id)
}
