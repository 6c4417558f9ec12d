package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/devportfolio/portfolio-backend/models"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindAll returns all skills with their projects
func (r *SkillRepo) FindAll(ctx context.Context) ([]models.Skill, error) {
	skills := make([]models.Skill, 0)
	err := r.db.WithContext(ctx).Preload("Projects", orderByID).Order("id").Find(&skills).Error
	return skills, err
}

// FindByID returns a skill by its ID
func (r *SkillRepo) FindByID(ctx context.Context, id uint) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.WithContext(ctx).Preload("Projects", orderByID).First(&skill, id).Error
	if err != nil {
		return nil, translateWriteError("skill", err)
	}
	return &skill, nil
}

// Add inserts a new skill into the database
func (r *SkillRepo) Add(ctx context.Context, in models.SkillInput) (*models.Skill, error) {
	skill := in.Row()
	if err := r.db.WithContext(ctx).Omit("Projects").Create(&skill).Error; err != nil {
		return nil, translateWriteError("skill", err)
	}
	return &skill, nil
}

// Update rewrites the skill's fields and returns the stored row
func (r *SkillRepo) Update(ctx context.Context, id uint, in models.SkillInput) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateRow(tx, &models.Skill{}, id, in.Changes()); err != nil {
			return err
		}
		return tx.First(&skill, id).Error
	})
	if err != nil {
		return nil, translateWriteError("skill", err)
	}
	return &skill, nil
}

// Delete removes a skill from the database by id
func (r *SkillRepo) Delete(ctx context.Context, id uint) error {
	return deleteRow(ctx, r.db, &models.Skill{}, "skill", id)
}
