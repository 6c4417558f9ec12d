package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/devportfolio/portfolio-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

func preloadProjectRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Category").Preload("Skills", orderByID)
}

// FindAll returns all projects with their user, category and skills
func (r *ProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	projects := make([]models.Project, 0)
	err := preloadProjectRelations(r.db.WithContext(ctx)).Order("id").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID with its user, category and skills
func (r *ProjectRepo) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := preloadProjectRelations(r.db.WithContext(ctx)).First(&project, id).Error
	if err != nil {
		return nil, translateWriteError("project", err)
	}
	return &project, nil
}

// Add inserts a project and links it to its user, category and skills in a
// single transaction. A reference to a missing row rolls everything back.
// The returned project does not carry its relations.
func (r *ProjectRepo) Add(ctx context.Context, in models.ProjectInput) (*models.Project, error) {
	project := in.Row()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User", "Category", "Skills").Create(&project).Error; err != nil {
			return err
		}
		if in.SkillIDs != nil {
			return replaceSkills(tx, project.ID, in.SkillIDs)
		}
		return nil
	})
	if err != nil {
		return nil, translateWriteError("project", err)
	}
	return &project, nil
}

// Update rewrites the project's literal fields, connects the user and
// category when given and replaces the skill set when a list is given.
func (r *ProjectRepo) Update(ctx context.Context, id uint, in models.ProjectInput) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		changes := in.Changes()
		if in.UserID != 0 {
			changes["user_id"] = in.UserID
		}
		if err := updateRow(tx, &models.Project{}, id, changes); err != nil {
			return err
		}
		if categoryID := in.LinkedCategory(); categoryID != nil {
			if err := linkCategory(tx, id, *categoryID); err != nil {
				return err
			}
		}
		if in.SkillIDs != nil {
			if err := replaceSkills(tx, id, in.SkillIDs); err != nil {
				return err
			}
		}
		return tx.First(&project, id).Error
	})
	if err != nil {
		return nil, translateWriteError("project", err)
	}
	return &project, nil
}

// Delete removes a project by id. Its skill links go with it, the user,
// category and skills stay.
func (r *ProjectRepo) Delete(ctx context.Context, id uint) error {
	return deleteRow(ctx, r.db, &models.Project{}, "project", id)
}

// LinkCategory connects the project to an existing category, replacing any
// previous category.
func (r *ProjectRepo) LinkCategory(ctx context.Context, projectID, categoryID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return linkCategory(tx, projectID, categoryID)
	})
	return translateWriteError("project", err)
}

// ReplaceSkills makes skillIDs the complete skill set of the project.
// Skills not listed are unlinked, an empty list unlinks all of them.
func (r *ProjectRepo) ReplaceSkills(ctx context.Context, projectID uint, skillIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Project{}, projectID).Error; err != nil {
			return err
		}
		return replaceSkills(tx, projectID, skillIDs)
	})
	return translateWriteError("project", err)
}

func linkCategory(tx *gorm.DB, projectID, categoryID uint) error {
	return updateRow(tx, &models.Project{}, projectID, map[string]any{"category_id": categoryID})
}

func replaceSkills(tx *gorm.DB, projectID uint, skillIDs []uint) error {
	if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectSkill{}).Error; err != nil {
		return err
	}

	seen := make(map[uint]struct{}, len(skillIDs))
	links := make([]models.ProjectSkill, 0, len(skillIDs))
	for _, skillID := range skillIDs {
		if _, dup := seen[skillID]; dup {
			continue
		}
		seen[skillID] = struct{}{}
		links = append(links, models.ProjectSkill{ProjectID: projectID, SkillID: skillID})
	}
	if len(links) == 0 {
		return nil
	}
	return tx.Create(&links).Error
}
