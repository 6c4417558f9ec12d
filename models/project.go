package models

import "gorm.io/datatypes"

// Project is a portfolio entry. It always belongs to a User, optionally to a
// Category, and links to any number of Skills through project_skills.
type Project struct {
	ID            uint            `json:"id" db:"id" gorm:"primaryKey"`
	Title         string          `json:"title" db:"title" gorm:"type:text;not null"`
	Description   *string         `json:"description" db:"description" gorm:"type:text"`
	RepositoryURL *string         `json:"repository_url" db:"repository_url" gorm:"column:repository_url;type:text"`
	DemoURL       *string         `json:"demo_url" db:"demo_url" gorm:"column:demo_url;type:text"`
	ImageURL      *string         `json:"image_url" db:"image_url" gorm:"column:image_url;type:text"`
	StartDate     *datatypes.Date `json:"start_date" db:"start_date" gorm:"column:start_date;type:date"`
	EndDate       *datatypes.Date `json:"end_date" db:"end_date" gorm:"column:end_date;type:date"`
	UserID        uint            `json:"userId" db:"user_id" gorm:"column:user_id;not null;index:idx_projects_user_id"`
	CategoryID    *uint           `json:"categoryId" db:"category_id" gorm:"column:category_id;index:idx_projects_category_id"`

	User     *User     `json:"user" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:RESTRICT"`
	Category *Category `json:"category" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:RESTRICT"`
	Skills   []Skill   `json:"skills" gorm:"many2many:project_skills;constraint:OnDelete:CASCADE"`
}

// ProjectSkill is a row of the project_skills join table.
type ProjectSkill struct {
	ProjectID uint `db:"project_id" gorm:"primaryKey;column:project_id"`
	SkillID   uint `db:"skill_id" gorm:"primaryKey;column:skill_id"`
}

func (ProjectSkill) TableName() string {
	return "project_skills"
}
